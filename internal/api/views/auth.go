package views

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

var oauthErrors = map[string]string{
	"oauth_cancelled":      "Google login was cancelled",
	"no_code":              "Google login failed: No authorization code received",
	"oauth_not_configured": "Google OAuth is not configured. Please contact administrator.",
	"oauth_failed":         "Google login failed. Please try again or use email/password.",
}

// OAuthErrorMessage maps the ?error= code the OAuth flow returns to the
// message shown above the login form.
func OAuthErrorMessage(code string) string {
	if code == "" {
		return ""
	}
	if msg, ok := oauthErrors[code]; ok {
		return msg
	}
	return "Google login failed"
}

func formError(msg string) Node {
	return If(msg != "", P(Class("error"), Text(msg)))
}

// Login renders the sign-in form.
func Login(email, errMsg, googleURL string) Node {
	return document("Login", 0,
		Main(
			Class("center"),
			Div(
				Class("card"),
				H1(Text("Welcome back")),
				P(Class("muted"), Text("Sign in to continue to your dashboard")),
				formError(errMsg),
				Form(
					Class("stack"),
					Method("post"),
					Action(domain.PathLogin),
					Label(For("email"), Text("Email")),
					Input(ID("email"), Type("email"), Name("email"), Value(email), Required()),
					Label(For("password"), Text("Password")),
					Input(ID("password"), Type("password"), Name("password"), Required()),
					Button(Type("submit"), Text("Sign in")),
				),
				P(A(Href(googleURL), Text("Continue with Google"))),
				P(Class("muted"), Text("No account yet? "), A(Href(domain.PathRegister), Text("Register"))),
			),
		),
	)
}

// Register renders the sign-up form.
func Register(name, email, errMsg string) Node {
	return document("Register", 0,
		Main(
			Class("center"),
			Div(
				Class("card"),
				H1(Text("Create an account")),
				formError(errMsg),
				Form(
					Class("stack"),
					Method("post"),
					Action(domain.PathRegister),
					Label(For("name"), Text("Name")),
					Input(ID("name"), Type("text"), Name("name"), Value(name), Required()),
					Label(For("email"), Text("Email")),
					Input(ID("email"), Type("email"), Name("email"), Value(email), Required()),
					Label(For("password"), Text("Password")),
					Input(ID("password"), Type("password"), Name("password"), Required()),
					Button(Type("submit"), Text("Register")),
				),
				P(Class("muted"), Text("Already registered? "), A(Href(domain.PathLogin), Text("Sign in"))),
			),
		),
	)
}
