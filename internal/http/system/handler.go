package system

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ddanez/GestorPro/internal/docstore"
	"github.com/ddanez/GestorPro/internal/http/respond"
)

// Handler exposes whole-store backup, restore, and reset. These operate on
// the raw document snapshot and bypass all domain validation: a restore is
// trusted to be a previous backup.
type Handler struct {
	store docstore.Store
}

func NewHandler(store docstore.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/backup", h.backup)
	r.Post("/restore", h.restore)
	r.Post("/reset", h.reset)
}

func (h *Handler) backup(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.ExportAll(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="backup.json"`)
	respond.JSON(w, http.StatusOK, snap)
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	var snap docstore.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.ImportAll(r.Context(), snap); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ResetAll(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
