// Package views renders the dashboard pages with gomponents.
package views

import (
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

const stylesheet = `
body{font-family:Inter,system-ui,sans-serif;margin:0;background:#0f172a;color:#e2e8f0}
a{color:#60a5fa}
.layout{max-width:1100px;margin:0 auto;padding:24px}
.topbar{display:flex;justify-content:space-between;align-items:center;gap:16px}
.nav{display:flex;flex-wrap:wrap;gap:12px;margin:16px 0;padding-bottom:12px;border-bottom:1px solid #334155}
.nav a.active{font-weight:700;text-decoration:none}
.muted{color:#94a3b8}
.error{color:#f87171}
.notice{color:#facc15}
.card{background:#1e293b;border:1px solid #334155;border-radius:12px;padding:24px}
.center{min-height:100vh;display:flex;align-items:center;justify-content:center}
form.stack{display:flex;flex-direction:column;gap:8px;max-width:360px}
table{border-collapse:collapse;width:100%}
th,td{text-align:left;padding:6px 8px;border-bottom:1px solid #334155}
pre{background:#020617;padding:16px;border-radius:8px;overflow:auto}
.unread{font-weight:700}
.swatch{display:inline-block;width:14px;height:14px;border-radius:3px;vertical-align:middle}
`

// NavItem is one entry of the dashboard navigation.
type NavItem struct {
	Title string
	Href  string
}

// Page carries what every signed-in page shares.
type Page struct {
	Title    string
	Active   string
	Identity *domain.Identity
	Nav      []NavItem
	// Refresh reloads the page after this many seconds when positive.
	Refresh int
}

// document is the HTML skeleton. A positive refresh reloads the page after
// that many seconds.
func document(title string, refresh int, body ...Node) Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(title+" | BOTAXXX")),
				StyleEl(Raw(stylesheet)),
				If(refresh > 0, Meta(Attr("http-equiv", "refresh"), Content(strconv.Itoa(refresh)))),
			),
			Body(Group(body)),
		),
	)
}

// Shell wraps body in the signed-in layout.
func Shell(p Page, body ...Node) Node {
	links := make([]Node, 0, len(p.Nav))
	for _, item := range p.Nav {
		links = append(links, A(Href(item.Href), If(item.Href == p.Active, Class("active")), Text(item.Title)))
	}

	who := "unknown"
	if p.Identity != nil {
		who = p.Identity.Name
		if p.Identity.IsAdmin() {
			who += " (admin)"
		}
	}

	return document(p.Title, p.Refresh,
		Main(
			Class("layout"),
			Div(
				Class("topbar"),
				Strong(Text("BOTAXXX Dashboard")),
				Div(
					Span(Class("muted"), Text("Signed in as "+who)),
					Form(
						Method("post"),
						Action("/logout"),
						Button(Type("submit"), Text("Sign out")),
					),
				),
			),
			Nav(Class("nav"), Group(links)),
			H1(Text(p.Title)),
			Group(body),
		),
	)
}

// Error renders a standalone error page.
func Error(status int, message string) Node {
	return document("Error", 0,
		Main(
			Class("layout"),
			H1(Textf("Error %d", status)),
			P(Class("error"), Text(message)),
			P(A(Href(domain.PathHome), Text("Back to overview"))),
		),
	)
}
