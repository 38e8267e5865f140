package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/devapi/service"
)

type BankHandler struct {
	banks *service.BankService
}

func NewBankHandler(banks *service.BankService) *BankHandler {
	return &BankHandler{banks: banks}
}

type createBankRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Code           string `json:"code" validate:"required,alphanum,max=20"`
	Country        string `json:"country" validate:"omitempty,len=2"`
	BrandColor     string `json:"brand_color" validate:"omitempty,hexcolor"`
	LogoBackground string `json:"logo_background" validate:"omitempty,hexcolor"`
	LogoWidth      int    `json:"logo_size_width" validate:"min=0,max=1000"`
	LogoHeight     int    `json:"logo_size_height" validate:"min=0,max=1000"`
}

type bankSettingsRequest struct {
	BrandColor     *string `json:"brand_color" validate:"omitempty,hexcolor"`
	LogoBackground *string `json:"logo_background" validate:"omitempty,hexcolor"`
	LogoWidth      *int    `json:"logo_size_width" validate:"omitempty,min=0,max=1000"`
	LogoHeight     *int    `json:"logo_size_height" validate:"omitempty,min=0,max=1000"`
	IsActive       *bool   `json:"is_active"`
}

// List handles GET /admin/banks.
func (h *BankHandler) List(c echo.Context) error {
	banks, err := h.banks.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"banks": banks})
}

// Create handles POST /admin/banks.
func (h *BankHandler) Create(c echo.Context) error {
	var req createBankRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}

	bank, err := h.banks.Create(c.Request().Context(), domain.Bank{
		Name:           req.Name,
		Code:           req.Code,
		Country:        req.Country,
		BrandColor:     req.BrandColor,
		LogoBackground: req.LogoBackground,
		LogoWidth:      req.LogoWidth,
		LogoHeight:     req.LogoHeight,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "Bank created successfully", "bank": bank})
}

// Update handles PUT /admin/banks/:id.
func (h *BankHandler) Update(c echo.Context) error {
	id, err := bankID(c)
	if err != nil {
		return err
	}
	var req bankSettingsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}

	bank, err := h.banks.Update(c.Request().Context(), id, domain.BankSettings{
		BrandColor:     req.BrandColor,
		LogoBackground: req.LogoBackground,
		LogoWidth:      req.LogoWidth,
		LogoHeight:     req.LogoHeight,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Bank settings updated successfully", "bank": bank})
}

// UpdateLogo handles PUT /admin/banks/:id/logo with a multipart logo_file.
func (h *BankHandler) UpdateLogo(c echo.Context) error {
	id, err := bankID(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("logo_file")
	if err != nil {
		return fail(c, http.StatusUnprocessableEntity, "logo_file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, service.MaxLogoBytes+1))
	if err != nil {
		return err
	}

	bank, err := h.banks.UpdateLogo(c.Request().Context(), id, fh.Filename, data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":   "Logo updated successfully",
		"bank":      bank,
		"logo_path": "/banks/" + bank.LogoFilename,
	})
}

// Logo handles GET /banks/:filename.
func (h *BankHandler) Logo(c echo.Context) error {
	data, err := h.banks.Logo(c.Request().Context(), c.Param("filename"))
	if errors.Is(err, domain.ErrBankNotFound) {
		return fail(c, http.StatusNotFound, "Logo not found")
	}
	if err != nil {
		return err
	}
	ctype := mime.TypeByExtension(filepath.Ext(c.Param("filename")))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	return c.Blob(http.StatusOK, ctype, data)
}

// Delete handles DELETE /admin/banks/:id.
func (h *BankHandler) Delete(c echo.Context) error {
	id, err := bankID(c)
	if err != nil {
		return err
	}
	if err := h.banks.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Bank deleted successfully", "deleted_bank_id": id})
}

func bankID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "bank id must be a positive integer")
	}
	return id, nil
}
