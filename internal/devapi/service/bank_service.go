package service

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// MaxLogoBytes bounds an uploaded bank logo.
const MaxLogoBytes = 2 << 20

var logoExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".svg": true}

// BankService manages bank master data and branding.
type BankService struct {
	repo ports.BankRepository
}

func NewBankService(repo ports.BankRepository) *BankService {
	return &BankService{repo: repo}
}

func (s *BankService) List(ctx context.Context) ([]domain.Bank, error) {
	return s.repo.List(ctx)
}

// Create normalises the code to lower case and defaults the country. New
// banks start active.
func (s *BankService) Create(ctx context.Context, bank domain.Bank) (domain.Bank, error) {
	bank.Name = strings.TrimSpace(bank.Name)
	bank.Code = strings.ToLower(strings.TrimSpace(bank.Code))
	if bank.Country == "" {
		bank.Country = domain.DefaultBankCountry
	}
	bank.IsActive = true
	bank.LogoFilename = ""
	return s.repo.Create(ctx, bank)
}

func (s *BankService) Update(ctx context.Context, id int64, settings domain.BankSettings) (domain.Bank, error) {
	return s.repo.Update(ctx, id, settings)
}

// UpdateLogo stores the upload as <code><ext>. Only PNG, JPG, JPEG and SVG
// files are accepted.
func (s *BankService) UpdateLogo(ctx context.Context, id int64, filename string, data []byte) (domain.Bank, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !logoExtensions[ext] || len(data) == 0 || len(data) > MaxLogoBytes {
		return domain.Bank{}, domain.ErrInvalidLogo
	}
	bank, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Bank{}, err
	}
	return s.repo.SetLogo(ctx, id, bank.Code+ext, data)
}

func (s *BankService) Logo(ctx context.Context, filename string) ([]byte, error) {
	return s.repo.Logo(ctx, filename)
}

func (s *BankService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
