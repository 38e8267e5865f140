package views

import (
	"fmt"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// AlertListing is one page of the signed-in user's inbox.
type AlertListing struct {
	domain.AlertInbox
	Skip       int
	Limit      int
	UnreadOnly bool
}

// Alerts renders the inbox. Unread alerts carry a mark-read button.
func Alerts(p Page, l AlertListing) Node {
	items := make([]Node, 0, len(l.Alerts))
	for _, a := range l.Alerts {
		items = append(items, alertItem(a))
	}

	filter := A(Href(alertsHref(0, l.Limit, true)), Text("Unread only"))
	if l.UnreadOnly {
		filter = A(Href(alertsHref(0, l.Limit, false)), Text("Show all"))
	}

	var pager []Node
	if l.Skip > 0 {
		pager = append(pager, A(Href(alertsHref(max(l.Skip-l.Limit, 0), l.Limit, l.UnreadOnly)), Text("Newer")))
	}
	if int64(l.Skip+l.Limit) < l.Total {
		pager = append(pager, A(Href(alertsHref(l.Skip+l.Limit, l.Limit, l.UnreadOnly)), Text("Older")))
	}

	return Shell(p,
		P(Class("muted"), Textf("%d unread", l.UnreadCount), Text(" · "), filter),
		If(l.UnreadCount > 0, Form(
			Method("post"),
			Action("/alerts/read-all"),
			Button(Type("submit"), Text("Mark all as read")),
		)),
		If(len(items) == 0, P(Class("muted"), Text("No alerts."))),
		Ul(Group(items)),
		P(Group(pager)),
	)
}

func alertItem(a domain.Alert) Node {
	return Li(
		If(!a.IsRead, Class("unread")),
		If(a.Title != "", Group([]Node{Text(a.Title), Text(": ")})),
		Text(a.Message),
		Text(" "),
		Span(Class("muted"), Text(a.CreatedAt.Format("2006-01-02 15:04"))),
		If(!a.IsRead, Form(
			Method("post"),
			Action(fmt.Sprintf("/alerts/%d/read", a.ID)),
			Button(Type("submit"), Text("Mark read")),
		)),
	)
}

func alertsHref(skip, limit int, unreadOnly bool) string {
	href := fmt.Sprintf("/alerts?skip=%d&limit=%d", skip, limit)
	if unreadOnly {
		href += "&unread_only=true"
	}
	return href
}
