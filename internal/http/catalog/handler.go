package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ddanez/GestorPro/internal/catalog"
	"github.com/ddanez/GestorPro/internal/http/respond"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ProductRoutes(r chi.Router) {
	r.Get("/", h.listProducts)
	r.Post("/", h.upsertProduct)
	r.Get("/low-stock", h.listLowStock)
	r.Get("/{id}", h.getProduct)
	r.Delete("/{id}", h.deleteProduct)
}

func (h *Handler) CustomerRoutes(r chi.Router) {
	r.Get("/", h.listCustomers)
	r.Post("/", h.upsertCustomer)
	r.Delete("/{id}", h.deleteContact(catalog.KindCustomer))
}

func (h *Handler) SupplierRoutes(r chi.Router) {
	r.Get("/", h.listSuppliers)
	r.Post("/", h.upsertSupplier)
	r.Delete("/{id}", h.deleteContact(catalog.KindSupplier))
}

func (h *Handler) SellerRoutes(r chi.Router) {
	r.Get("/", h.listSellers)
	r.Post("/", h.upsertSeller)
	r.Delete("/{id}", h.deleteContact(catalog.KindSeller))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Products(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, products)
}

// upsertProduct creates when the body carries no id, updates otherwise.
func (h *Handler) upsertProduct(w http.ResponseWriter, r *http.Request) {
	var product catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.svc.UpsertProduct(r.Context(), product)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, saved)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.LowStock(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, products)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.Customers(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, customers)
}

func (h *Handler) upsertCustomer(w http.ResponseWriter, r *http.Request) {
	var customer catalog.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.svc.UpsertCustomer(r.Context(), customer)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, saved)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.svc.Suppliers(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, suppliers)
}

func (h *Handler) upsertSupplier(w http.ResponseWriter, r *http.Request) {
	var supplier catalog.Supplier
	if err := json.NewDecoder(r.Body).Decode(&supplier); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.svc.UpsertSupplier(r.Context(), supplier)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, saved)
}

func (h *Handler) listSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.svc.Sellers(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, sellers)
}

func (h *Handler) upsertSeller(w http.ResponseWriter, r *http.Request) {
	var seller catalog.Seller
	if err := json.NewDecoder(r.Body).Decode(&seller); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.svc.UpsertSeller(r.Context(), seller)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, saved)
}

func (h *Handler) deleteContact(kind catalog.ContactKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.DeleteContact(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
			respond.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
