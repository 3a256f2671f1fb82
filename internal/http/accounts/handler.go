package accounts

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ddanez/GestorPro/internal/http/respond"
	"github.com/ddanez/GestorPro/internal/ledger"
	"github.com/ddanez/GestorPro/internal/settings"
)

type Handler struct {
	svc      *ledger.Service
	settings *settings.Service
}

func NewHandler(svc *ledger.Service, set *settings.Service) *Handler {
	return &Handler{svc: svc, settings: set}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{kind}", h.listPending)
	r.Post("/{kind}/{id}/payments", h.applyPayment)
}

func parseKind(r *http.Request) (ledger.Kind, error) {
	raw := chi.URLParam(r, "kind")
	switch ledger.Kind(raw) {
	case ledger.KindReceivable:
		return ledger.KindReceivable, nil
	case ledger.KindPayable:
		return ledger.KindPayable, nil
	default:
		return "", fmt.Errorf("%w: %q", ledger.ErrUnknownKind, raw)
	}
}

type pendingResponse struct {
	Entries  []ledger.Entry  `json:"entries"`
	TotalUSD decimal.Decimal `json:"totalUSD"`
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	entries, err := h.svc.ListPending(r.Context(), kind)
	if err != nil {
		respond.Error(w, err)
		return
	}

	// Sum the fetched entries rather than re-reading the collection.
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Outstanding)
	}

	respond.JSON(w, http.StatusOK, pendingResponse{Entries: entries, TotalUSD: total})
}

type paymentRequest struct {
	AmountUSD decimal.Decimal `json:"amountUSD"`
	// ExchangeRate, when omitted or zero, falls back to the configured rate.
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

type paymentResponse struct {
	Entry   *ledger.Entry   `json:"entry"`
	Receipt *ledger.Receipt `json:"receipt"`
}

func (h *Handler) applyPayment(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req paymentRequest
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

	entry, receipt, err := h.svc.ApplyPayment(r.Context(), kind, chi.URLParam(r, "id"), req.AmountUSD, rate)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, paymentResponse{Entry: entry, Receipt: receipt})
}
