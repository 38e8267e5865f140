package domain

// Bank is master data for the banks users can hold accounts at. The branding
// fields drive how the bank's cards look in the dashboard.
type Bank struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	LogoFilename   string `json:"logo_filename,omitempty"`
	BrandColor     string `json:"brand_color,omitempty"`
	LogoBackground string `json:"logo_background,omitempty"`
	LogoWidth      int    `json:"logo_size_width,omitempty"`
	LogoHeight     int    `json:"logo_size_height,omitempty"`
	Country        string `json:"country"`
	IsActive       bool   `json:"is_active"`
}

// DefaultBankCountry is used when a bank is created without a country.
const DefaultBankCountry = "ID"

// BankSettings is a partial branding update. Nil fields are left unchanged.
type BankSettings struct {
	BrandColor     *string `json:"brand_color,omitempty"`
	LogoBackground *string `json:"logo_background,omitempty"`
	LogoWidth      *int    `json:"logo_size_width,omitempty"`
	LogoHeight     *int    `json:"logo_size_height,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

// Apply writes the set fields of s onto b.
func (s BankSettings) Apply(b *Bank) {
	if s.BrandColor != nil {
		b.BrandColor = *s.BrandColor
	}
	if s.LogoBackground != nil {
		b.LogoBackground = *s.LogoBackground
	}
	if s.LogoWidth != nil {
		b.LogoWidth = *s.LogoWidth
	}
	if s.LogoHeight != nil {
		b.LogoHeight = *s.LogoHeight
	}
	if s.IsActive != nil {
		b.IsActive = *s.IsActive
	}
}
