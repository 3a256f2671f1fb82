package sales

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ddanez/GestorPro/internal/http/respond"
	"github.com/ddanez/GestorPro/internal/settings"
	"github.com/ddanez/GestorPro/internal/transaction"
)

type Handler struct {
	engine   *transaction.Engine
	settings *settings.Service
}

func NewHandler(engine *transaction.Engine, set *settings.Service) *Handler {
	return &Handler{engine: engine, settings: set}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.commit)
	r.Get("/", h.list)
}

type saleLineRequest struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	PriceUSD  decimal.Decimal `json:"priceUSD"`
}

type commitSaleRequest struct {
	CustomerID        string            `json:"customerId"`
	SellerID          string            `json:"sellerId"`
	Items             []saleLineRequest `json:"items"`
	DiscountUSD       decimal.Decimal   `json:"discountUSD"`
	IsCredit          bool              `json:"isCredit"`
	InitialPaymentUSD decimal.Decimal   `json:"initialPaymentUSD"`
	// ExchangeRate, when omitted or zero, falls back to the configured rate.
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	var req commitSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rate := req.ExchangeRate
	if rate.IsZero() {
		current, err := h.settings.Load(r.Context())
		if err != nil {
			respond.Error(w, err)
			return
		}
		rate = current.ExchangeRate
	}

	lines := make([]transaction.SaleLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = transaction.SaleLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			PriceUSD:  item.PriceUSD,
		}
	}

	sale, err := h.engine.CommitSale(r.Context(), transaction.CommitSaleParams{
		CustomerID:        req.CustomerID,
		SellerID:          req.SellerID,
		Lines:             lines,
		DiscountUSD:       req.DiscountUSD,
		IsCredit:          req.IsCredit,
		InitialPaymentUSD: req.InitialPaymentUSD,
		ExchangeRate:      rate,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, sale)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sales, err := h.engine.Sales(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, sales)
}
