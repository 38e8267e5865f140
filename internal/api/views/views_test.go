package views

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"maragu.dev/gomponents"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

func renderString(t *testing.T, n gomponents.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestOAuthErrorMessage(t *testing.T) {
	cases := map[string]string{
		"":                     "",
		"oauth_cancelled":      "Google login was cancelled",
		"no_code":              "Google login failed: No authorization code received",
		"oauth_not_configured": "Google OAuth is not configured. Please contact administrator.",
		"oauth_failed":         "Google login failed. Please try again or use email/password.",
		"something_else":       "Google login failed",
	}
	for code, want := range cases {
		if got := OAuthErrorMessage(code); got != want {
			t.Fatalf("%q: expected %q, got %q", code, want, got)
		}
	}
}

func TestMaintenanceRefreshesItself(t *testing.T) {
	html := renderString(t, Maintenance("Back at 10", 30))

	if !strings.Contains(html, "Back at 10") {
		t.Fatalf("message missing: %s", html)
	}
	if !strings.Contains(html, `http-equiv="refresh" content="30"`) {
		t.Fatalf("refresh missing: %s", html)
	}
}

func TestShellListsNavigation(t *testing.T) {
	p := Page{
		Title:    "Savings",
		Active:   "/savings",
		Identity: &domain.Identity{Name: "Rina", Role: domain.RoleAdmin},
		Nav:      []NavItem{{Title: "Overview", Href: "/"}, {Title: "Savings", Href: "/savings"}},
	}
	html := renderString(t, Shell(p))

	if !strings.Contains(html, `<a href="/savings" class="active">Savings</a>`) {
		t.Fatalf("active link missing: %s", html)
	}
	if !strings.Contains(html, "Signed in as Rina (admin)") {
		t.Fatalf("identity missing: %s", html)
	}
}

func TestDataIndentsJSON(t *testing.T) {
	html := renderString(t, DataPage(Page{Title: "Loans"}, json.RawMessage(`{"a":1}`)))

	if !strings.Contains(html, "{\n  &#34;a&#34;: 1\n}") {
		t.Fatalf("unexpected body: %s", html)
	}
}

func TestUsersHidesActionsForSelf(t *testing.T) {
	html := renderString(t, Users(Page{Title: "Users"}, UserListing{
		Users: []domain.Identity{
			{ID: 1, Name: "Admin", Email: "a@x.io", Role: domain.RoleAdmin, IsActive: true},
			{ID: 2, Name: "Rina", Email: "r@x.io", Role: domain.RoleUser, IsActive: false},
		},
		Total: 2,
		Limit: 20,
		Self:  1,
	}))

	if strings.Contains(html, "/admin/users/1/role") {
		t.Fatalf("self row must not offer actions: %s", html)
	}
	if !strings.Contains(html, "/admin/users/2/suspend") || !strings.Contains(html, "Unsuspend") {
		t.Fatalf("expected unsuspend action for user 2: %s", html)
	}
}

func TestBanksShowsLogoAndUploadForm(t *testing.T) {
	html := renderString(t, Banks(Page{Title: "Bank Management"}, []BankRow{
		{Bank: domain.Bank{ID: 4, Name: "BCA", Code: "bca", IsActive: true}, LogoURL: "http://api.test/banks/bca.png"},
		{Bank: domain.Bank{ID: 5, Name: "CIMB", Code: "cimb"}},
	}, "", ""))

	if !strings.Contains(html, `src="http://api.test/banks/bca.png"`) {
		t.Fatalf("logo missing: %s", html)
	}
	if !strings.Contains(html, `action="/admin/banks/4/logo" enctype="multipart/form-data"`) {
		t.Fatalf("upload form missing: %s", html)
	}
	if !strings.Contains(html, "inactive") {
		t.Fatalf("inactive bank not marked: %s", html)
	}
}

func TestAlertsMarksUnreadAndPages(t *testing.T) {
	l := AlertListing{
		AlertInbox: domain.AlertInbox{
			Alerts: []domain.Alert{
				{ID: 9, Title: "Loan", Message: "Due tomorrow"},
				{ID: 8, Message: "Welcome", IsRead: true},
			},
			Total:       12,
			UnreadCount: 1,
		},
		Limit: 2,
	}
	html := renderString(t, Alerts(Page{Title: "Alerts", Refresh: 30}, l))

	if !strings.Contains(html, `action="/alerts/9/read"`) || strings.Contains(html, `action="/alerts/8/read"`) {
		t.Fatalf("mark-read buttons wrong: %s", html)
	}
	if !strings.Contains(html, `href="/alerts?skip=2&amp;limit=2"`) {
		t.Fatalf("pager missing: %s", html)
	}
	if !strings.Contains(html, `http-equiv="refresh" content="30"`) {
		t.Fatalf("refresh missing: %s", html)
	}
}

func TestUserDetailHidesDestructiveFormsForSelf(t *testing.T) {
	u := domain.Identity{ID: 1, Name: "Root", Email: "root@x.io", Role: domain.RoleAdmin, IsActive: true}

	html := renderString(t, UserDetail(Page{Title: "Root"}, u, true, "", ""))
	if strings.Contains(html, "/admin/users/1/delete") || strings.Contains(html, "/admin/users/1/alert") {
		t.Fatalf("self must not get delete or alert forms: %s", html)
	}

	u.ID = 2
	html = renderString(t, UserDetail(Page{Title: "Rina"}, u, false, "Alert sent", ""))
	if !strings.Contains(html, `action="/admin/users/2/delete"`) || !strings.Contains(html, "Alert sent") {
		t.Fatalf("detail page incomplete: %s", html)
	}
}
