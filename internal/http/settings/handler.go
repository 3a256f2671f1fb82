package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ddanez/GestorPro/internal/http/respond"
	"github.com/ddanez/GestorPro/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.put)
	r.Put("/exchange-rate", h.putExchangeRate)
	r.Get("/company", h.getCompany)
	r.Put("/company", h.putCompany)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	current, err := h.svc.Load(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, current)
}

func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	var req settings.AppSettings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.svc.Save(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, saved)
}

type exchangeRateRequest struct {
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

func (h *Handler) putExchangeRate(w http.ResponseWriter, r *http.Request) {
	var req exchangeRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.svc.UpdateExchangeRate(r.Context(), req.ExchangeRate)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, saved)
}

func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.svc.Company(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, company)
}

func (h *Handler) putCompany(w http.ResponseWriter, r *http.Request) {
	var req settings.CompanyInfo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.svc.SaveCompany(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, saved)
}
