package purchases

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

type purchaseLineRequest struct {
	ProductID       string          `json:"productId"`
	Quantity        decimal.Decimal `json:"quantity"`
	CostUSD         decimal.Decimal `json:"costUSD"`
	NewSalePriceUSD decimal.Decimal `json:"newSalePriceUSD"`
}

type commitPurchaseRequest struct {
	SupplierID        string                `json:"supplierId"`
	Items             []purchaseLineRequest `json:"items"`
	DiscountUSD       decimal.Decimal       `json:"discountUSD"`
	IsCredit          bool                  `json:"isCredit"`
	InitialPaymentUSD decimal.Decimal       `json:"initialPaymentUSD"`
	ExchangeRate      decimal.Decimal       `json:"exchangeRate"`
	// EditingID resubmits an existing purchase under its original id and date.
	EditingID string `json:"editingId"`
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	var req commitPurchaseRequest
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

	lines := make([]transaction.PurchaseLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = transaction.PurchaseLine{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			CostUSD:         item.CostUSD,
			NewSalePriceUSD: item.NewSalePriceUSD,
		}
	}

	purchase, err := h.engine.CommitPurchase(r.Context(), transaction.CommitPurchaseParams{
		SupplierID:        req.SupplierID,
		Lines:             lines,
		DiscountUSD:       req.DiscountUSD,
		IsCredit:          req.IsCredit,
		InitialPaymentUSD: req.InitialPaymentUSD,
		ExchangeRate:      rate,
		EditingID:         req.EditingID,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	status := http.StatusCreated
	if req.EditingID != "" {
		status = http.StatusOK
	}

	respond.JSON(w, status, purchase)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.engine.Purchases(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, purchases)
}
