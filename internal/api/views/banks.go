package views

import (
	"fmt"
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// BankRow is a bank plus the public address of its logo, if it has one.
type BankRow struct {
	domain.Bank
	LogoURL string
}

// Banks renders the bank master data with the branding forms.
func Banks(p Page, banks []BankRow, flash, errMsg string) Node {
	rows := make([]Node, 0, len(banks))
	for _, b := range banks {
		rows = append(rows, bankRow(b))
	}
	return Shell(p,
		formError(errMsg),
		If(flash != "", P(Class("notice"), Text(flash))),
		If(len(banks) == 0, P(Class("muted"), Text("No banks yet."))),
		If(len(banks) > 0, Table(
			THead(Tr(Th(Text("Logo")), Th(Text("Bank")), Th(Text("Country")), Th(Text("Status")), Th(Text("Branding")), Th(Text("Actions")))),
			TBody(Group(rows)),
		)),
		H2(Text("Add bank")),
		Form(
			Class("stack"),
			Method("post"),
			Action("/admin/banks"),
			Label(For("name"), Text("Name")),
			Input(ID("name"), Type("text"), Name("name"), Required()),
			Label(For("code"), Text("Code")),
			Input(ID("code"), Type("text"), Name("code"), Required()),
			Label(For("country"), Text("Country")),
			Input(ID("country"), Type("text"), Name("country"), Placeholder(domain.DefaultBankCountry), MaxLength("2")),
			Label(For("brand_color"), Text("Brand color")),
			Input(ID("brand_color"), Type("text"), Name("brand_color"), Placeholder("#0066cc")),
			Button(Type("submit"), Text("Create bank")),
		),
	)
}

func bankRow(b BankRow) Node {
	status := "active"
	if !b.IsActive {
		status = "inactive"
	}
	logo := Node(Span(Class("muted"), Text("none")))
	if b.LogoURL != "" {
		logo = Img(Src(b.LogoURL), Alt(b.Name+" logo"), Height("32"))
	}
	base := fmt.Sprintf("/admin/banks/%d", b.ID)

	return Tr(
		Td(logo),
		Td(Strong(Text(b.Name)), Br(), Span(Class("muted"), Text(b.Code))),
		Td(Text(b.Country)),
		Td(Text(status)),
		Td(
			If(b.BrandColor != "", Span(Class("swatch"), Style("background:"+b.BrandColor))),
			Form(
				Method("post"),
				Action(base),
				Input(Type("text"), Name("brand_color"), Value(b.BrandColor), Placeholder("brand color")),
				Input(Type("text"), Name("logo_background"), Value(b.LogoBackground), Placeholder("logo background")),
				Input(Type("number"), Name("logo_size_width"), Value(strconv.Itoa(b.LogoWidth)), Min("0")),
				Input(Type("number"), Name("logo_size_height"), Value(strconv.Itoa(b.LogoHeight)), Min("0")),
				Label(Input(Type("checkbox"), Name("is_active"), Value("true"), If(b.IsActive, Checked())), Text(" Active")),
				Button(Type("submit"), Text("Save")),
			),
		),
		Td(
			Form(
				Method("post"),
				Action(base+"/logo"),
				EncType("multipart/form-data"),
				Input(Type("file"), Name("logo_file"), Accept(".png,.jpg,.jpeg,.svg"), Required()),
				Button(Type("submit"), Text("Upload logo")),
			),
			Form(
				Method("post"),
				Action(base+"/delete"),
				Button(Type("submit"), Text("Delete")),
			),
		),
	)
}
