// Package respond centralizes JSON writing and the error-to-status mapping
// shared by every handler package.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ddanez/GestorPro/internal/catalog"
	"github.com/ddanez/GestorPro/internal/docstore"
	"github.com/ddanez/GestorPro/internal/ledger"
	"github.com/ddanez/GestorPro/internal/settings"
	"github.com/ddanez/GestorPro/internal/transaction"
)

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps domain errors onto HTTP statuses. Validation failures are 400,
// unknown references 404, stock conflicts 409, everything else is a 500 with
// the detail kept out of the response.
func Error(w http.ResponseWriter, err error) {
	var stockErr *transaction.InsufficientStockError
	if errors.As(err, &stockErr) {
		http.Error(w, stockErr.Error(), http.StatusConflict)
		return
	}

	switch {
	case errors.Is(err, transaction.ErrValidation),
		errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, settings.ErrInvalidRate),
		errors.Is(err, ledger.ErrUnknownKind),
		errors.Is(err, docstore.ErrUnknownCollection):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, docstore.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
