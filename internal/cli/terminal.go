package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
	"github.com/botaxxx/dashboard/internal/core/service"
	"github.com/botaxxx/dashboard/internal/infrastructure/backend"
	"github.com/botaxxx/dashboard/internal/infrastructure/tokenstore"
	"github.com/botaxxx/dashboard/pkg/logger"
)

// terminal is the client context of one shell user against one backend
// origin. Its credential lives in the session file under that origin.
type terminal struct {
	public  *backend.PublicClient
	api     *backend.Client
	store   ports.TokenStore
	session *service.Session
}

// terminalNavigator tells the user what a forced navigation means, since a
// terminal has no page to load.
type terminalNavigator struct {
	w io.Writer
}

func (n terminalNavigator) Redirect(_ context.Context, path string) {
	if path == domain.PathLogin {
		fmt.Fprintln(n.w, "Session expired. Run `dashboard login` to sign in again.")
		return
	}
	fmt.Fprintf(n.w, "Navigate to %s\n", path)
}

func (o *rootOptions) terminal(cmd *cobra.Command) (*terminal, error) {
	scope, err := originOf(o.apiURL)
	if err != nil {
		return nil, err
	}

	store := tokenstore.NewFileProvider(o.tokenFile).For(scope)
	factory := backend.NewFactory(o.apiURL, o.cfg.Backend.Timeout, logger.For("backend"))
	api := factory.For(store, terminalNavigator{w: cmd.ErrOrStderr()})

	return &terminal{
		public:  factory.Public(),
		api:     api,
		store:   store,
		session: service.NewSession(store, api, logger.Get()),
	}, nil
}

// originOf reduces a base URL to scheme://host, the scope of its credential.
func originOf(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid backend URL %q", raw)
	}
	return strings.ToLower(u.Scheme + "://" + u.Host), nil
}

func printIdentity(w io.Writer, id *domain.Identity) {
	status := "active"
	if !id.IsActive {
		status = "suspended"
	}
	fmt.Fprintf(w, "%s <%s>\n", id.Name, id.Email)
	fmt.Fprintf(w, "  id:     %d\n", id.ID)
	fmt.Fprintf(w, "  role:   %s\n", id.Role)
	fmt.Fprintf(w, "  status: %s\n", status)
}
