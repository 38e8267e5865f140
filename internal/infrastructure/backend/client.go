package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// APIError is a non-2xx backend response that was not handled globally.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return e.Detail
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// decodeAPIError reads the server message from {"detail": ...} or
// {"error": ...}. Validation errors carry a list of {msg}; the first is used.
func decodeAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Detail = strings.TrimSpace(string(body))
		return apiErr
	}

	var s string
	var list []struct {
		Msg string `json:"msg"`
	}
	switch {
	case len(payload.Detail) > 0 && json.Unmarshal(payload.Detail, &s) == nil:
		apiErr.Detail = s
	case len(payload.Detail) > 0 && json.Unmarshal(payload.Detail, &list) == nil && len(list) > 0:
		apiErr.Detail = list[0].Msg
	case payload.Error != "":
		apiErr.Detail = payload.Error
	case len(payload.Detail) > 0:
		apiErr.Detail = string(payload.Detail)
	}
	return apiErr
}

// PublicClient reaches unauthenticated endpoints. It never attaches a bearer
// and never reacts to 401.
type PublicClient struct {
	baseURL string
	http    *http.Client
}

func NewPublicClient(baseURL string, httpClient *http.Client) *PublicClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PublicClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

var _ ports.MaintenanceSource = (*PublicClient)(nil)

// MaintenanceStatus reads GET /maintenance.
func (p *PublicClient) MaintenanceStatus(ctx context.Context) (domain.MaintenanceState, error) {
	var out domain.MaintenanceState
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/maintenance", nil)
	if err != nil {
		return out, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("get maintenance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return out, decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode maintenance: %w", err)
	}
	return out, nil
}

// GoogleAuthURL is where the login view sends the browser for Google OAuth.
func (p *PublicClient) GoogleAuthURL() string {
	return p.baseURL + "/auth/google"
}

// BaseURL returns the backend origin.
func (p *PublicClient) BaseURL() string { return p.baseURL }

// Client is the typed backend API for one client context.
type Client struct {
	*PublicClient
	gw *Gateway
}

var _ ports.AuthAPI = (*Client)(nil)

// NewClient binds typed calls to a gateway.
func NewClient(public *PublicClient, gw *Gateway) *Client {
	return &Client{PublicClient: public, gw: gw}
}

// Login calls POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (domain.TokenResponse, error) {
	var out domain.TokenResponse
	err := c.call(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// Register calls POST /auth/register. The response body is ignored.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.call(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
}

// Me calls GET /users/me.
func (c *Client) Me(ctx context.Context) (*domain.Identity, error) {
	var out domain.Identity
	if err := c.call(ctx, http.MethodGet, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Fetch returns the raw JSON of a GET. Finance views render it as received.
func (c *Client) Fetch(ctx context.Context, path string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── Admin ─────────────────────────────────────────────────────────────────────

type UserList struct {
	Users []domain.Identity `json:"users"`
	Total int64             `json:"total"`
	Skip  int               `json:"skip"`
	Limit int               `json:"limit"`
}

type SuspendResult struct {
	Message string          `json:"message"`
	User    domain.Identity `json:"user"`
}

type BroadcastResult struct {
	Message    string `json:"message"`
	UsersCount int    `json:"users_count"`
	Content    string `json:"content"`
}

func (c *Client) AdminStats(ctx context.Context) (domain.AccountStats, error) {
	var out domain.AccountStats
	err := c.call(ctx, http.MethodGet, "/admin/stats", nil, &out)
	return out, err
}

// ListUsers calls GET /admin/users. An empty search is omitted.
func (c *Client) ListUsers(ctx context.Context, skip, limit int, search string) (UserList, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	if search != "" {
		q.Set("search", search)
	}
	var out UserList
	err := c.call(ctx, http.MethodGet, "/admin/users?"+q.Encode(), nil, &out)
	return out, err
}

func (c *Client) UpdateUserRole(ctx context.Context, id int64, role domain.Role) (domain.Identity, error) {
	var out domain.Identity
	err := c.call(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d/role", id), map[string]domain.Role{"role": role}, &out)
	return out, err
}

func (c *Client) SuspendUser(ctx context.Context, id int64, suspend bool) (SuspendResult, error) {
	var out SuspendResult
	err := c.call(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%d/suspend", id), map[string]bool{"suspend": suspend}, &out)
	return out, err
}

func (c *Client) AdminMaintenance(ctx context.Context) (domain.MaintenanceState, error) {
	var out domain.MaintenanceState
	err := c.call(ctx, http.MethodGet, "/admin/maintenance", nil, &out)
	return out, err
}

func (c *Client) SetMaintenance(ctx context.Context, enabled bool, message string) (domain.MaintenanceState, error) {
	body := struct {
		Enabled bool   `json:"enabled"`
		Message string `json:"message,omitempty"`
	}{enabled, message}
	var out domain.MaintenanceState
	err := c.call(ctx, http.MethodPut, "/admin/maintenance", body, &out)
	return out, err
}

func (c *Client) Broadcast(ctx context.Context, title, message string) (BroadcastResult, error) {
	body := struct {
		Message string `json:"message"`
		Title   string `json:"title,omitempty"`
	}{message, title}
	var out BroadcastResult
	err := c.call(ctx, http.MethodPost, "/admin/broadcast", body, &out)
	return out, err
}

// UserDetail calls GET /admin/users/{id}.
func (c *Client) UserDetail(ctx context.Context, id int64) (domain.Identity, error) {
	var out domain.Identity
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/admin/users/%d", id), nil, &out)
	return out, err
}

type DeleteUserResult struct {
	Message       string `json:"message"`
	DeletedUserID int64  `json:"deleted_user_id"`
}

func (c *Client) DeleteUser(ctx context.Context, id int64) (DeleteUserResult, error) {
	var out DeleteUserResult
	err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, &out)
	return out, err
}

type SendAlertResult struct {
	Message   string `json:"message"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// SendAlert calls POST /admin/send-alert for a single user.
func (c *Client) SendAlert(ctx context.Context, userID int64, title, message string) (SendAlertResult, error) {
	body := struct {
		UserID  int64  `json:"user_id"`
		Message string `json:"message"`
		Title   string `json:"title,omitempty"`
	}{userID, message, title}
	var out SendAlertResult
	err := c.call(ctx, http.MethodPost, "/admin/send-alert", body, &out)
	return out, err
}

// ── Banks ─────────────────────────────────────────────────────────────────────

type BankResult struct {
	Message  string      `json:"message"`
	Bank     domain.Bank `json:"bank"`
	LogoPath string      `json:"logo_path,omitempty"`
}

type DeleteBankResult struct {
	Message       string `json:"message"`
	DeletedBankID int64  `json:"deleted_bank_id"`
}

func (c *Client) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	var out struct {
		Banks []domain.Bank `json:"banks"`
	}
	err := c.call(ctx, http.MethodGet, "/admin/banks", nil, &out)
	return out.Banks, err
}

func (c *Client) CreateBank(ctx context.Context, bank domain.Bank) (BankResult, error) {
	var out BankResult
	err := c.call(ctx, http.MethodPost, "/admin/banks", bank, &out)
	return out, err
}

func (c *Client) UpdateBankSettings(ctx context.Context, id int64, settings domain.BankSettings) (BankResult, error) {
	var out BankResult
	err := c.call(ctx, http.MethodPut, fmt.Sprintf("/admin/banks/%d", id), settings, &out)
	return out, err
}

// UpdateBankLogo uploads the logo as the multipart field logo_file.
func (c *Client) UpdateBankLogo(ctx context.Context, id int64, filename string, logo io.Reader) (BankResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("logo_file", filename)
	if err != nil {
		return BankResult{}, fmt.Errorf("encode logo: %w", err)
	}
	if _, err := io.Copy(part, logo); err != nil {
		return BankResult{}, fmt.Errorf("encode logo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return BankResult{}, fmt.Errorf("encode logo: %w", err)
	}

	var out BankResult
	err = c.send(ctx, http.MethodPut, fmt.Sprintf("/admin/banks/%d/logo", id), &buf, mw.FormDataContentType(), &out)
	return out, err
}

func (c *Client) DeleteBank(ctx context.Context, id int64) (DeleteBankResult, error) {
	var out DeleteBankResult
	err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/admin/banks/%d", id), nil, &out)
	return out, err
}

// BankLogoURL is the public address of an uploaded logo.
func (p *PublicClient) BankLogoURL(filename string) string {
	return p.baseURL + "/banks/" + url.PathEscape(filename)
}

// ── Alerts ────────────────────────────────────────────────────────────────────

// Alerts calls GET /users/me/alerts.
func (c *Client) Alerts(ctx context.Context, skip, limit int, unreadOnly bool) (domain.AlertInbox, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	if unreadOnly {
		q.Set("unread_only", "true")
	}
	var out domain.AlertInbox
	err := c.call(ctx, http.MethodGet, "/users/me/alerts?"+q.Encode(), nil, &out)
	return out, err
}

func (c *Client) MarkAlertRead(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/users/me/alerts/%d/read", id), nil, nil)
}

func (c *Client) MarkAllAlertsRead(ctx context.Context) error {
	return c.call(ctx, http.MethodPut, "/users/me/alerts/read-all", nil, nil)
}

// call sends a JSON request through the gateway and decodes a 2xx body into
// out when out is non-nil.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, body, contentType, out)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.gw.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Factory builds per-context clients sharing one connection pool.
type Factory struct {
	public *PublicClient
	http   *http.Client
	log    zerolog.Logger
}

// NewFactory returns a Factory for baseURL with a per-request timeout.
func NewFactory(baseURL string, timeout time.Duration, log zerolog.Logger) *Factory {
	hc := &http.Client{Timeout: timeout}
	return &Factory{
		public: NewPublicClient(baseURL, hc),
		http:   hc,
		log:    log,
	}
}

// Public returns the unauthenticated client.
func (f *Factory) Public() *PublicClient { return f.public }

// For returns a client whose gateway reads store and navigates with nav.
func (f *Factory) For(store ports.TokenStore, nav ports.Navigator) *Client {
	return NewClient(f.public, NewGateway(f.http, store, nav, f.log))
}
