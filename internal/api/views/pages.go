package views

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// DataPage renders a backend resource as received. Business rules stay on the
// server, so the dashboard only formats the JSON.
func DataPage(p Page, raw json.RawMessage) Node {
	if len(raw) == 0 {
		return Shell(p, P(Class("muted"), Text("Nothing to show yet.")))
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	return Shell(p, Pre(Code(Text(buf.String()))))
}

// Stats renders the admin summary counters.
func Stats(p Page, s domain.AccountStats) Node {
	row := func(label string, v int64) Node {
		return Tr(Th(Text(label)), Td(Text(strconv.FormatInt(v, 10))))
	}
	return Shell(p,
		Table(TBody(
			row("Total users", s.TotalUsers),
			row("Active users", s.ActiveUsers),
			row("Suspended users", s.SuspendedUsers),
			row("Admins", s.AdminUsers),
		)),
	)
}

// UserListing is the data behind the user management page.
type UserListing struct {
	Users  []domain.Identity
	Total  int64
	Skip   int
	Limit  int
	Search string
	Self   int64
}

// Users renders the user management table with role and suspend actions.
func Users(p Page, l UserListing) Node {
	rows := make([]Node, 0, len(l.Users))
	for _, u := range l.Users {
		rows = append(rows, userRow(u, u.ID == l.Self))
	}

	var pager []Node
	if l.Skip > 0 {
		pager = append(pager, A(Href(usersHref(max(l.Skip-l.Limit, 0), l.Limit, l.Search)), Text("Previous")))
	}
	if int64(l.Skip+l.Limit) < l.Total {
		pager = append(pager, A(Href(usersHref(l.Skip+l.Limit, l.Limit, l.Search)), Text("Next")))
	}

	return Shell(p,
		Form(
			Method("get"),
			Action("/admin/users"),
			Input(Type("search"), Name("search"), Value(l.Search), Placeholder("Search name or email")),
			Input(Type("hidden"), Name("limit"), Value(strconv.Itoa(l.Limit))),
			Button(Type("submit"), Text("Search")),
		),
		P(Class("muted"), Textf("%d users", l.Total)),
		Table(
			THead(Tr(Th(Text("ID")), Th(Text("Name")), Th(Text("Email")), Th(Text("Role")), Th(Text("Status")), Th(Text("Actions")))),
			TBody(Group(rows)),
		),
		P(Group(pager)),
	)
}

func userRow(u domain.Identity, self bool) Node {
	return Tr(
		Td(Text(strconv.FormatInt(u.ID, 10))),
		Td(A(Href(fmt.Sprintf("/admin/users/%d", u.ID)), Text(u.Name))),
		Td(Text(u.Email)),
		Td(Text(string(u.Role))),
		Td(Text(accountStatus(u))),
		Td(Group(userActions(u, self))),
	)
}

func accountStatus(u domain.Identity) string {
	if !u.IsActive {
		return "suspended"
	}
	return "active"
}

// userActions are the role and suspend toggles. Admins get none for their
// own account.
func userActions(u domain.Identity, self bool) []Node {
	if self {
		return []Node{Span(Class("muted"), Text("you"))}
	}
	nextRole := domain.RoleAdmin
	if u.Role == domain.RoleAdmin {
		nextRole = domain.RoleUser
	}
	suspendLabel := "Suspend"
	if !u.IsActive {
		suspendLabel = "Unsuspend"
	}
	return []Node{
		Form(
			Method("post"),
			Action(fmt.Sprintf("/admin/users/%d/role", u.ID)),
			Input(Type("hidden"), Name("role"), Value(string(nextRole))),
			Button(Type("submit"), Text("Make "+string(nextRole))),
		),
		Form(
			Method("post"),
			Action(fmt.Sprintf("/admin/users/%d/suspend", u.ID)),
			Input(Type("hidden"), Name("suspend"), Value(strconv.FormatBool(u.IsActive))),
			Button(Type("submit"), Text(suspendLabel)),
		),
	}
}

// UserDetail renders one account with the alert and delete forms.
func UserDetail(p Page, u domain.Identity, self bool, flash, errMsg string) Node {
	row := func(label, v string) Node {
		return Tr(Th(Text(label)), Td(Text(v)))
	}
	return Shell(p,
		formError(errMsg),
		If(flash != "", P(Class("notice"), Text(flash))),
		Table(TBody(
			row("ID", strconv.FormatInt(u.ID, 10)),
			row("Name", u.Name),
			row("Email", u.Email),
			row("Role", string(u.Role)),
			row("Status", accountStatus(u)),
		)),
		P(Group(userActions(u, self))),
		If(!self, Group([]Node{
			H2(Text("Send alert")),
			Form(
				Class("stack"),
				Method("post"),
				Action(fmt.Sprintf("/admin/users/%d/alert", u.ID)),
				Label(For("title"), Text("Title")),
				Input(ID("title"), Type("text"), Name("title")),
				Label(For("message"), Text("Message")),
				Textarea(ID("message"), Name("message"), Required()),
				Button(Type("submit"), Text("Send")),
			),
			H2(Text("Delete account")),
			Form(
				Method("post"),
				Action(fmt.Sprintf("/admin/users/%d/delete", u.ID)),
				Button(Type("submit"), Text("Delete "+u.Email)),
			),
		})),
		P(A(Href("/admin/users"), Text("Back to users"))),
	)
}

func usersHref(skip, limit int, search string) string {
	href := fmt.Sprintf("/admin/users?skip=%d&limit=%d", skip, limit)
	if search != "" {
		href += "&search=" + url.QueryEscape(search)
	}
	return href
}

// MaintenanceAdmin renders the maintenance switch.
func MaintenanceAdmin(p Page, st domain.MaintenanceState, flash string) Node {
	current := "Maintenance mode is OFF"
	if st.IsMaintenance {
		current = "Maintenance mode is ON: " + st.Notice()
	}
	return Shell(p,
		If(flash != "", P(Class("notice"), Text(flash))),
		P(Text(current)),
		Form(
			Class("stack"),
			Method("post"),
			Action("/admin/maintenance"),
			Label(For("message"), Text("Message")),
			Textarea(ID("message"), Name("message"), Placeholder(domain.DefaultMaintenanceMessage), Text(st.Message)),
			Label(
				Input(Type("checkbox"), Name("enabled"), Value("true"), If(st.IsMaintenance, Checked())),
				Text(" Enabled"),
			),
			Button(Type("submit"), Text("Save")),
		),
	)
}

// Broadcast renders the alert form and the result of the last send.
func Broadcast(p Page, result, errMsg string) Node {
	return Shell(p,
		formError(errMsg),
		If(result != "", P(Class("notice"), Text(result))),
		Form(
			Class("stack"),
			Method("post"),
			Action("/admin/broadcast"),
			Label(For("title"), Text("Title")),
			Input(ID("title"), Type("text"), Name("title")),
			Label(For("message"), Text("Message")),
			Textarea(ID("message"), Name("message"), Required()),
			Button(Type("submit"), Text("Send to all users")),
		),
	)
}
