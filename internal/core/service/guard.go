package service

import (
	"github.com/botaxxx/dashboard/internal/core/domain"
)

// GuardInput is everything a guard decision depends on.
type GuardInput struct {
	Identity    *domain.Identity
	Loading     bool
	Maintenance domain.MaintenanceState
}

// InputFrom combines a session snapshot with the current maintenance state.
func InputFrom(s SessionState, m domain.MaintenanceState) GuardInput {
	return GuardInput{Identity: s.Identity, Loading: s.Loading, Maintenance: m}
}

// PrivateGuard gates views that need a signed-in user. It never renders the
// target or redirects while loading.
func PrivateGuard(in GuardInput) domain.Intent {
	if in.Loading {
		return domain.Wait()
	}
	if in.Identity == nil {
		return domain.RedirectTo(domain.PathLogin)
	}
	return MaintenanceGuard(in)
}

// AdminGuard gates admin views. Admins are not subject to maintenance.
func AdminGuard(in GuardInput) domain.Intent {
	if in.Loading {
		return domain.Wait()
	}
	if in.Identity == nil {
		return domain.RedirectTo(domain.PathLogin)
	}
	if !in.Identity.IsAdmin() {
		return domain.RedirectTo(domain.PathHome)
	}
	return domain.Allow()
}

// MaintenanceGuard replaces the target with the maintenance notice for
// non-admins while maintenance is active.
func MaintenanceGuard(in GuardInput) domain.Intent {
	if in.Maintenance.Blocks(in.Identity) {
		return domain.Block(in.Maintenance.Notice())
	}
	return domain.Allow()
}

// Access selects the guard applied to a route.
type Access int

const (
	AccessPublic Access = iota
	AccessPrivate
	AccessAdmin
	// AccessGated is public but closed while maintenance is active.
	AccessGated
)

func (a Access) String() string {
	switch a {
	case AccessPrivate:
		return "private"
	case AccessAdmin:
		return "admin"
	case AccessGated:
		return "gated"
	default:
		return "public"
	}
}

// Route is one entry of the navigation table.
type Route struct {
	Path   string
	Title  string
	Access Access
	// Resource is the backend path the view renders, if any.
	Resource string
}

// Routes is the dashboard navigation table.
var Routes = []Route{
	{Path: "/", Title: "Overview", Access: AccessPrivate, Resource: "/overview"},
	{Path: "/savings", Title: "Savings", Access: AccessPrivate, Resource: "/savings"},
	{Path: "/loans", Title: "Loans", Access: AccessPrivate, Resource: "/loans"},
	{Path: "/targets", Title: "Targets", Access: AccessPrivate, Resource: "/targets"},
	{Path: "/banks", Title: "Bank Accounts", Access: AccessPrivate, Resource: "/bank-accounts"},
	{Path: "/profile", Title: "Profile", Access: AccessPrivate, Resource: "/users/me"},
	{Path: "/settings", Title: "Settings", Access: AccessPrivate},
	{Path: domain.PathAlerts, Title: "Alerts", Access: AccessPrivate, Resource: "/users/me/alerts"},

	{Path: "/admin", Title: "Admin Dashboard", Access: AccessAdmin, Resource: "/admin/stats"},
	{Path: "/admin/users", Title: "User Management", Access: AccessAdmin, Resource: "/admin/users"},
	{Path: "/admin/maintenance", Title: "Maintenance Mode", Access: AccessAdmin, Resource: "/admin/maintenance"},
	{Path: "/admin/broadcast", Title: "Broadcast Alert", Access: AccessAdmin},
	{Path: "/admin/banks", Title: "Bank Management", Access: AccessAdmin, Resource: "/admin/banks"},

	{Path: domain.PathLogin, Title: "Login", Access: AccessPublic},
	{Path: domain.PathRegister, Title: "Register", Access: AccessGated},
	{Path: domain.PathOAuthCallback, Title: "Completing login", Access: AccessPublic},
}

// ConsultsMaintenance reports whether the guard for r reads the maintenance
// flag. Admin routes never do.
func (r Route) ConsultsMaintenance() bool {
	return r.Access == AccessPrivate || r.Access == AccessGated
}

// LookupRoute finds the route for path, ignoring query and trailing slash.
func LookupRoute(path string) (Route, bool) {
	p := domain.CleanPath(path)
	for _, r := range Routes {
		if r.Path == p {
			return r, true
		}
	}
	return Route{}, false
}

// Evaluate applies the route's guard.
func Evaluate(r Route, in GuardInput) domain.Intent {
	switch r.Access {
	case AccessAdmin:
		return AdminGuard(in)
	case AccessPrivate:
		return PrivateGuard(in)
	case AccessGated:
		return MaintenanceGuard(GuardInput{Maintenance: in.Maintenance})
	default:
		return domain.Allow()
	}
}
