package domain

import (
	"context"
	"strings"
)

const (
	PathHome          = "/"
	PathLogin         = "/login"
	PathRegister      = "/register"
	PathOAuthCallback = "/auth/google/callback"
	PathAlerts        = "/alerts"
)

// Outcome is the terminal decision of a route guard.
type Outcome string

const (
	// OutcomeWait means identity resolution is still running; render a neutral
	// placeholder, never the target and never a redirect.
	OutcomeWait     Outcome = "wait"
	OutcomeRender   Outcome = "render"
	OutcomeRedirect Outcome = "redirect"
	OutcomeBlock    Outcome = "block"
)

// Intent is the result of evaluating a navigation. Hosts interpret it; guards
// never navigate themselves.
type Intent struct {
	Outcome Outcome
	// Target is set for OutcomeRedirect.
	Target string
	// Reason is set for OutcomeBlock and carries the operator message.
	Reason string
}

func Wait() Intent                  { return Intent{Outcome: OutcomeWait} }
func Allow() Intent                 { return Intent{Outcome: OutcomeRender} }
func RedirectTo(path string) Intent { return Intent{Outcome: OutcomeRedirect, Target: path} }
func Block(reason string) Intent    { return Intent{Outcome: OutcomeBlock, Reason: reason} }

func (i Intent) String() string {
	switch i.Outcome {
	case OutcomeRedirect:
		return "redirect:" + i.Target
	case OutcomeBlock:
		return "block"
	default:
		return string(i.Outcome)
	}
}

// CleanPath normalises a view path for comparisons: no query, no trailing slash.
func CleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return PathHome
	}
	return p
}

// IsAuthEntryPoint reports whether path is the login or register view. A 401
// received while on one of these is a normal form error, not a forced logout.
func IsAuthEntryPoint(path string) bool {
	p := CleanPath(path)
	return p == PathLogin || p == PathRegister
}

type viewKey struct{}

// WithView records the view the current client context is showing.
func WithView(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, viewKey{}, CleanPath(path))
}

// ViewFromContext returns the current view, or "" when none was recorded.
func ViewFromContext(ctx context.Context) string {
	v, _ := ctx.Value(viewKey{}).(string)
	return v
}
