package accounts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ddanez/GestorPro/internal/catalog"
	"github.com/ddanez/GestorPro/internal/docstore"
	"github.com/ddanez/GestorPro/internal/http/accounts"
	"github.com/ddanez/GestorPro/internal/ledger"
	"github.com/ddanez/GestorPro/internal/settings"
	"github.com/ddanez/GestorPro/internal/transaction"
)

var rate = decimal.NewFromFloat(45.5)

// seedCreditSale commits a 10 USD credit sale with a 4 USD initial payment
// and returns its id.
func seedCreditSale(t *testing.T, store docstore.Store) string {
	t.Helper()

	ctx := context.Background()
	cat := catalog.NewService(store)
	engine := transaction.NewEngine(store, cat)

	product, err := cat.UpsertProduct(ctx, catalog.Product{
		Name: "Harina de maíz", SKU: "HAR-001",
		PriceUSD: decimal.NewFromFloat(5.00),
		Stock:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	customer, err := cat.UpsertCustomer(ctx, catalog.Customer{
		Name: "María Pérez", RIF: "V-12345678", Phone: "0412-0000000",
	})
	require.NoError(t, err)

	sale, err := engine.CommitSale(ctx, transaction.CommitSaleParams{
		CustomerID: customer.ID,
		Lines: []transaction.SaleLine{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(2), PriceUSD: decimal.NewFromFloat(5.00)},
		},
		IsCredit:          true,
		InitialPaymentUSD: decimal.NewFromFloat(4.00),
		ExchangeRate:      rate,
	})
	require.NoError(t, err)

	return sale.ID
}

func newRouter(store docstore.Store) http.Handler {
	handler := accounts.NewHandler(ledger.NewService(store), settings.NewService(store))

	router := chi.NewRouter()
	router.Route("/accounts", handler.Routes)

	return router
}

type paymentResponse struct {
	Entry   ledger.Entry   `json:"entry"`
	Receipt ledger.Receipt `json:"receipt"`
}

// A payment request without an exchange rate uses the configured rate for
// the receipt instead of failing validation.
func TestHandler_ApplyPayment_DefaultsToConfiguredRate(t *testing.T) {
	store := docstore.NewMemoryStore()
	saleID := seedCreditSale(t, store)
	router := newRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/accounts/cxc/"+saleID+"/payments",
		strings.NewReader(`{"amountUSD": 6}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp paymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Receipt.ExchangeRate.Equal(settings.DefaultExchangeRate), "rate = %s", resp.Receipt.ExchangeRate)
	assert.True(t, resp.Receipt.AmountBS.Equal(decimal.NewFromFloat(273.0)), "amountBS = %s", resp.Receipt.AmountBS)
	assert.Equal(t, transaction.StatusPaid, resp.Entry.Status)
}

func TestHandler_ApplyPayment_ExplicitRateWins(t *testing.T) {
	store := docstore.NewMemoryStore()
	saleID := seedCreditSale(t, store)
	router := newRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/accounts/cxc/"+saleID+"/payments",
		strings.NewReader(`{"amountUSD": 1, "exchangeRate": 52}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp paymentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Receipt.ExchangeRate.Equal(decimal.NewFromFloat(52)))
	assert.True(t, resp.Receipt.AmountBS.Equal(decimal.NewFromFloat(52)))
}

// The pending view totals the entries it already fetched: one collection
// read per request.
func TestHandler_ListPending_SingleCollectionRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mem := docstore.NewMemoryStore()
	seedCreditSale(t, mem)

	store := docstore.NewMockStore(ctrl)
	store.EXPECT().GetAll(gomock.Any(), docstore.Sales).Times(1).DoAndReturn(mem.GetAll)

	router := newRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/cxc", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Entries  []ledger.Entry  `json:"entries"`
		TotalUSD decimal.Decimal `json:"totalUSD"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Entries, 1)
	assert.True(t, resp.TotalUSD.Equal(decimal.NewFromFloat(6.00)), "total = %s", resp.TotalUSD)
}

func TestHandler_UnknownKind(t *testing.T) {
	store := docstore.NewMemoryStore()
	router := newRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/cxz", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
