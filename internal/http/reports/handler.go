package reports

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ddanez/GestorPro/internal/http/respond"
	"github.com/ddanez/GestorPro/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/monthly", h.monthly)
	r.Get("/workbook", h.workbook)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Dashboard(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, dash)
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.Monthly(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaries)
}

func (h *Handler) workbook(w http.ResponseWriter, r *http.Request) {
	file, err := h.svc.Workbook(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("reporte-%s.xlsx", time.Now().UTC().Format("2006-01-02"))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := file.WriteTo(w); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}
