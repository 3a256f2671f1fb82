package settings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddanez/GestorPro/internal/docstore"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	service := NewService(docstore.NewMemoryStore())
	service.now = func() time.Time {
		return time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)
	}

	return service
}

func TestService_Load_Defaults(t *testing.T) {
	service := newTestService(t)

	settings, err := service.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "app_settings", settings.ID)
	assert.True(t, settings.ExchangeRate.Equal(DefaultExchangeRate))
	assert.Empty(t, settings.LastRateUpdate)
}

func TestService_Save_RoundTrip(t *testing.T) {
	service := newTestService(t)

	saved, err := service.Save(context.Background(), AppSettings{
		ExchangeRate:     decimal.NewFromFloat(51.2),
		DarkMode:         true,
		ShowIVAOnTicket:  true,
		TicketFooter:     "Gracias por su compra",
		ShowLogoOnTicket: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "app_settings", saved.ID)

	loaded, err := service.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, loaded.ExchangeRate.Equal(decimal.NewFromFloat(51.2)))
	assert.True(t, loaded.DarkMode)
	assert.Equal(t, "Gracias por su compra", loaded.TicketFooter)
}

func TestService_UpdateExchangeRate(t *testing.T) {
	service := newTestService(t)

	updated, err := service.UpdateExchangeRate(context.Background(), decimal.NewFromFloat(52.75))
	require.NoError(t, err)

	assert.True(t, updated.ExchangeRate.Equal(decimal.NewFromFloat(52.75)))
	assert.Equal(t, "2024-03-15T09:30:00Z", updated.LastRateUpdate)

	loaded, err := service.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded.ExchangeRate.Equal(decimal.NewFromFloat(52.75)))
}

func TestService_UpdateExchangeRate_RejectsNonPositive(t *testing.T) {
	service := newTestService(t)

	_, err := service.UpdateExchangeRate(context.Background(), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = service.UpdateExchangeRate(context.Background(), decimal.NewFromFloat(-1))
	assert.ErrorIs(t, err, ErrInvalidRate)

	// The stored value is untouched after a rejected update.
	loaded, err := service.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded.ExchangeRate.Equal(DefaultExchangeRate))
}

func TestService_UpdateExchangeRate_KeepsOtherSettings(t *testing.T) {
	service := newTestService(t)

	_, err := service.Save(context.Background(), AppSettings{
		ExchangeRate: decimal.NewFromFloat(45.5),
		DarkMode:     true,
		TicketHeader: "Bodega La Esquina",
	})
	require.NoError(t, err)

	updated, err := service.UpdateExchangeRate(context.Background(), decimal.NewFromFloat(60))
	require.NoError(t, err)

	assert.True(t, updated.DarkMode)
	assert.Equal(t, "Bodega La Esquina", updated.TicketHeader)
}

func TestService_Company(t *testing.T) {
	service := newTestService(t)

	empty, err := service.Company(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "company_info", empty.ID)
	assert.Empty(t, empty.Name)

	saved, err := service.SaveCompany(context.Background(), CompanyInfo{
		Name:    "Bodega La Esquina C.A.",
		RIF:     "J-12345678-9",
		Address: "Av. Bolívar, Local 4",
		Phone:   "0412-5551234",
	})
	require.NoError(t, err)
	assert.Equal(t, "company_info", saved.ID)

	loaded, err := service.Company(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bodega La Esquina C.A.", loaded.Name)
	assert.Equal(t, "J-12345678-9", loaded.RIF)
}
