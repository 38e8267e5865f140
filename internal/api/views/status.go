package views

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Maintenance replaces a protected view while maintenance is active. The
// page reloads itself on the poll interval so it lifts without user action.
func Maintenance(message string, refreshSeconds int) Node {
	return document("Maintenance", max(refreshSeconds, 1),
		Main(
			Class("center"),
			Div(
				Class("card"),
				H1(Text("Under Maintenance")),
				P(Class("notice"), Text(message)),
				P(Class("muted"), Text("This page checks again automatically.")),
			),
		),
	)
}

// LoadingPage is the neutral placeholder shown while identity resolution runs.
func LoadingPage() Node {
	return document("Loading", 1,
		Main(Class("center"), P(Class("muted"), Text("Loading..."))),
	)
}
