package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ddanez/GestorPro/internal/http/accounts"
	"github.com/ddanez/GestorPro/internal/http/catalog"
	"github.com/ddanez/GestorPro/internal/http/purchases"
	"github.com/ddanez/GestorPro/internal/http/reports"
	"github.com/ddanez/GestorPro/internal/http/sales"
	"github.com/ddanez/GestorPro/internal/http/settings"
	"github.com/ddanez/GestorPro/internal/http/system"
)

func New(
	catalogV1 *catalog.Handler,
	salesV1 *sales.Handler,
	purchasesV1 *purchases.Handler,
	accountsV1 *accounts.Handler,
	settingsV1 *settings.Handler,
	reportsV1 *reports.Handler,
	systemV1 *system.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", catalogV1.ProductRoutes)
		r.Route("/customers", catalogV1.CustomerRoutes)
		r.Route("/suppliers", catalogV1.SupplierRoutes)
		r.Route("/sellers", catalogV1.SellerRoutes)

		r.Route("/sales", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			salesV1.Routes(r)
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			purchasesV1.Routes(r)
		})

		r.Route("/accounts", accountsV1.Routes)
		r.Route("/settings", settingsV1.Routes)
		r.Route("/reports", reportsV1.Routes)
		r.Route("/system", systemV1.Routes)
	})

	return router
}
