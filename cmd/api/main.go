package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/ddanez/GestorPro/internal/catalog"
	"github.com/ddanez/GestorPro/internal/config"
	"github.com/ddanez/GestorPro/internal/database"
	"github.com/ddanez/GestorPro/internal/docstore"
	gestorHttp "github.com/ddanez/GestorPro/internal/http"
	accountsHandler "github.com/ddanez/GestorPro/internal/http/accounts"
	catalogHandler "github.com/ddanez/GestorPro/internal/http/catalog"
	purchasesHandler "github.com/ddanez/GestorPro/internal/http/purchases"
	reportsHandler "github.com/ddanez/GestorPro/internal/http/reports"
	salesHandler "github.com/ddanez/GestorPro/internal/http/sales"
	settingsHandler "github.com/ddanez/GestorPro/internal/http/settings"
	systemHandler "github.com/ddanez/GestorPro/internal/http/system"
	"github.com/ddanez/GestorPro/internal/ledger"
	"github.com/ddanez/GestorPro/internal/report"
	"github.com/ddanez/GestorPro/internal/settings"
	"github.com/ddanez/GestorPro/internal/transaction"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	var (
		catalogService  = catalog.NewService(store)
		engine          = transaction.NewEngine(store, catalogService)
		ledgerService   = ledger.NewService(store)
		settingsService = settings.NewService(store)
		reportService   = report.NewService(catalogService, engine, ledgerService)
	)

	var (
		catalogH   = catalogHandler.NewHandler(catalogService)
		salesH     = salesHandler.NewHandler(engine, settingsService)
		purchasesH = purchasesHandler.NewHandler(engine, settingsService)
		accountsH  = accountsHandler.NewHandler(ledgerService, settingsService)
		settingsH  = settingsHandler.NewHandler(settingsService)
		reportsH   = reportsHandler.NewHandler(reportService)
		systemH    = systemHandler.NewHandler(store)
	)

	router := gestorHttp.New(catalogH, salesH, purchasesH, accountsH, settingsH, reportsH, systemH)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.App.Port),
		Handler:     router,
		ReadTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr, "store", cfg.Store.Driver)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newStore builds the configured docstore backend and its cleanup func.
func newStore(ctx context.Context, cfg *config.Config) (docstore.Store, func(), error) {
	switch cfg.Store.Driver {
	case "memory":
		return docstore.NewMemoryStore(), func() {}, nil
	case "postgres":
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		store, err := docstore.NewPostgresStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}

		return store, func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown docstore driver %q", cfg.Store.Driver)
	}
}
