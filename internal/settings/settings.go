// Package settings holds the process-wide application settings and company
// profile, stored as two well-known documents in the settings collection.
// The exchange rate lives here; callers read it and pass it into commits by
// value, so an in-flight commit is never affected by a concurrent rate edit.
package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ddanez/GestorPro/internal/docstore"
)

const (
	appSettingsID = "app_settings"
	companyInfoID = "company_info"
)

// DefaultExchangeRate seeds a fresh install until the merchant sets the
// day's rate.
var DefaultExchangeRate = decimal.NewFromFloat(45.5)

// ErrInvalidRate is returned when a rate update is not a positive amount.
var ErrInvalidRate = errors.New("exchange rate must be positive")

// AppSettings is the app_settings document.
type AppSettings struct {
	ID               string          `json:"id"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	LastRateUpdate   string          `json:"lastRateUpdate"`
	DarkMode         bool            `json:"darkMode"`
	ShowLogoOnTicket bool            `json:"showLogoOnTicket"`
	ShowIVAOnTicket  bool            `json:"showIvaOnTicket"`
	IncludeQR        bool            `json:"includeQr"`
	TicketHeader     string          `json:"ticketHeader,omitempty"`
	TicketFooter     string          `json:"ticketFooter,omitempty"`
}

// CompanyInfo is the company_info document printed on tickets.
type CompanyInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RIF         string `json:"rif"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OwnerName   string `json:"ownerName,omitempty"`
	Email       string `json:"email,omitempty"`
	Bank        string `json:"bank,omitempty"`
	MobilePhone string `json:"mobilePhone,omitempty"`
	DNI         string `json:"dni,omitempty"`
	Slogan      string `json:"slogan,omitempty"`
}

type Service struct {
	collection docstore.Collection[AppSettings]
	company    docstore.Collection[CompanyInfo]

	now func() time.Time
}

func NewService(store docstore.Store) *Service {
	return &Service{
		collection: docstore.NewCollection[AppSettings](store, docstore.Settings),
		company:    docstore.NewCollection[CompanyInfo](store, docstore.Settings),
		now:        time.Now,
	}
}

// Load returns the stored settings, or defaults on a fresh install.
func (s *Service) Load(ctx context.Context) (*AppSettings, error) {
	stored, err := s.collection.Get(ctx, appSettingsID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return &AppSettings{
				ID:           appSettingsID,
				ExchangeRate: DefaultExchangeRate,
			}, nil
		}

		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return stored, nil
}

func (s *Service) Save(ctx context.Context, settings AppSettings) (*AppSettings, error) {
	settings.ID = appSettingsID

	if err := s.collection.Put(ctx, settings.ID, settings); err != nil {
		return nil, fmt.Errorf("storing settings: %w", err)
	}

	return &settings, nil
}

// UpdateExchangeRate sets the daily rate and stamps the update date.
// Historical transactions keep their frozen rates.
func (s *Service) UpdateExchangeRate(ctx context.Context, rate decimal.Decimal) (*AppSettings, error) {
	if !rate.IsPositive() {
		return nil, ErrInvalidRate
	}

	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	settings.ExchangeRate = rate
	settings.LastRateUpdate = s.now().UTC().Format(time.RFC3339)

	return s.Save(ctx, *settings)
}

// Company returns the stored company profile, or an empty one.
func (s *Service) Company(ctx context.Context) (*CompanyInfo, error) {
	stored, err := s.company.Get(ctx, companyInfoID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return &CompanyInfo{ID: companyInfoID}, nil
		}

		return nil, fmt.Errorf("loading company info: %w", err)
	}

	return stored, nil
}

func (s *Service) SaveCompany(ctx context.Context, info CompanyInfo) (*CompanyInfo, error) {
	info.ID = companyInfoID

	if err := s.company.Put(ctx, info.ID, info); err != nil {
		return nil, fmt.Errorf("storing company info: %w", err)
	}

	return &info, nil
}
