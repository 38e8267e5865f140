package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/api/middleware"
	"github.com/botaxxx/dashboard/internal/api/views"
	"github.com/botaxxx/dashboard/internal/core/domain"
)

// BankPageHandler serves bank master data management for admins.
type BankPageHandler struct{}

func NewBankPageHandler() *BankPageHandler {
	return &BankPageHandler{}
}

type createBankForm struct {
	Name       string `form:"name" validate:"required,max=100"`
	Code       string `form:"code" validate:"required,alphanum,max=20"`
	Country    string `form:"country" validate:"omitempty,len=2"`
	BrandColor string `form:"brand_color" validate:"omitempty,hexcolor"`
}

type bankSettingsForm struct {
	BrandColor     string `form:"brand_color" validate:"omitempty,hexcolor"`
	LogoBackground string `form:"logo_background" validate:"omitempty,hexcolor"`
	LogoWidth      int    `form:"logo_size_width" validate:"min=0,max=1000"`
	LogoHeight     int    `form:"logo_size_height" validate:"min=0,max=1000"`
	IsActive       bool   `form:"is_active"`
}

// List handles GET /admin/banks.
func (h *BankPageHandler) List(c echo.Context) error {
	return h.render(c, http.StatusOK, "", "")
}

// Create handles POST /admin/banks.
func (h *BankPageHandler) Create(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}

	var f createBankForm
	if err := c.Bind(&f); err != nil {
		return h.render(c, http.StatusBadRequest, "", "invalid form")
	}
	if err := c.Validate(&f); err != nil {
		return h.render(c, http.StatusUnprocessableEntity, "", err.Error())
	}

	res, err := cc.API.CreateBank(c.Request().Context(), domain.Bank{
		Name:       f.Name,
		Code:       f.Code,
		Country:    f.Country,
		BrandColor: f.BrandColor,
	})
	if err != nil {
		status, msg := formFailure(err, "could not create the bank")
		return h.render(c, status, "", msg)
	}
	return h.render(c, http.StatusOK, fmt.Sprintf("%s: %s", res.Message, res.Bank.Name), "")
}

// Update handles POST /admin/banks/:id. Every field of the form is sent, so
// an unchecked box deactivates the bank.
func (h *BankPageHandler) Update(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	id, err := bankID(c)
	if err != nil {
		return err
	}

	var f bankSettingsForm
	if err := c.Bind(&f); err != nil {
		return h.render(c, http.StatusBadRequest, "", "invalid form")
	}
	if err := c.Validate(&f); err != nil {
		return h.render(c, http.StatusUnprocessableEntity, "", err.Error())
	}

	res, err := cc.API.UpdateBankSettings(c.Request().Context(), id, domain.BankSettings{
		BrandColor:     &f.BrandColor,
		LogoBackground: &f.LogoBackground,
		LogoWidth:      &f.LogoWidth,
		LogoHeight:     &f.LogoHeight,
		IsActive:       &f.IsActive,
	})
	if err != nil {
		status, msg := formFailure(err, "could not update the bank")
		return h.render(c, status, "", msg)
	}
	return h.render(c, http.StatusOK, res.Message, "")
}

// UploadLogo handles POST /admin/banks/:id/logo and streams the file on to
// the backend, which checks type and size.
func (h *BankPageHandler) UploadLogo(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	id, err := bankID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("logo_file")
	if err != nil {
		return h.render(c, http.StatusUnprocessableEntity, "", "choose a logo file")
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := cc.API.UpdateBankLogo(c.Request().Context(), id, fh.Filename, file)
	if err != nil {
		status, msg := formFailure(err, "could not upload the logo")
		return h.render(c, status, "", msg)
	}
	return h.render(c, http.StatusOK, res.Message, "")
}

// Delete handles POST /admin/banks/:id/delete.
func (h *BankPageHandler) Delete(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	id, err := bankID(c)
	if err != nil {
		return err
	}
	if _, err := cc.API.DeleteBank(c.Request().Context(), id); err != nil {
		status, msg := formFailure(err, "could not delete the bank")
		return h.render(c, status, "", msg)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/banks")
}

func (h *BankPageHandler) render(c echo.Context, status int, flash, errMsg string) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	banks, err := cc.API.ListBanks(c.Request().Context())
	if err != nil {
		return err
	}
	return views.Render(c, status, views.Banks(pageFor(c, route("/admin/banks")), bankRows(cc, banks), flash, errMsg))
}

func bankRows(cc *middleware.ClientContext, banks []domain.Bank) []views.BankRow {
	rows := make([]views.BankRow, 0, len(banks))
	for _, b := range banks {
		row := views.BankRow{Bank: b}
		if b.LogoFilename != "" {
			row.LogoURL = cc.API.BankLogoURL(b.LogoFilename)
		}
		rows = append(rows, row)
	}
	return rows
}

func bankID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid bank id")
	}
	return id, nil
}
