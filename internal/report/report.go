// Package report builds read-only aggregates over the stored catalog and
// transaction history: the dashboard snapshot, per-month totals, and the
// spreadsheet export.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ddanez/GestorPro/internal/catalog"
	"github.com/ddanez/GestorPro/internal/ledger"
	"github.com/ddanez/GestorPro/internal/transaction"
)

// Dashboard is the landing-page snapshot.
type Dashboard struct {
	TodaySalesUSD     decimal.Decimal   `json:"todaySalesUSD"`
	TodaySalesBS      decimal.Decimal   `json:"todaySalesBS"`
	TodaySalesCount   int               `json:"todaySalesCount"`
	ReceivableUSD     decimal.Decimal   `json:"receivableUSD"`
	PayableUSD        decimal.Decimal   `json:"payableUSD"`
	InventoryCostUSD  decimal.Decimal   `json:"inventoryCostUSD"`
	ProductCount      int               `json:"productCount"`
	LowStockProducts  []catalog.Product `json:"lowStockProducts"`
}

// MonthlySummary aggregates one calendar month of activity. Profit is the
// gross margin of the month's sales, not sales minus purchases: restocking
// heavily in a month should not read as a loss.
type MonthlySummary struct {
	Month        string          `json:"month"` // "2024-03"
	SalesUSD     decimal.Decimal `json:"salesUSD"`
	PurchasesUSD decimal.Decimal `json:"purchasesUSD"`
	SalesCount   int             `json:"salesCount"`
	ProfitUSD    decimal.Decimal `json:"profitUSD"`
}

type Service struct {
	catalog *catalog.Service
	engine  *transaction.Engine
	ledger  *ledger.Service

	now func() time.Time
}

func NewService(cat *catalog.Service, engine *transaction.Engine, led *ledger.Service) *Service {
	return &Service{
		catalog: cat,
		engine:  engine,
		ledger:  led,
		now:     time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	sales, err := s.engine.Sales(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	dash := &Dashboard{
		TodaySalesUSD:    decimal.Zero,
		TodaySalesBS:     decimal.Zero,
		LowStockProducts: []catalog.Product{},
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	for _, sale := range sales {
		if sale.Date.UTC().Truncate(24 * time.Hour).Equal(today) {
			dash.TodaySalesUSD = dash.TodaySalesUSD.Add(sale.TotalUSD)
			dash.TodaySalesBS = dash.TodaySalesBS.Add(sale.TotalBS)
			dash.TodaySalesCount++
		}
	}

	dash.ReceivableUSD, err = s.ledger.TotalOutstanding(ctx, ledger.KindReceivable)
	if err != nil {
		return nil, err
	}
	dash.PayableUSD, err = s.ledger.TotalOutstanding(ctx, ledger.KindPayable)
	if err != nil {
		return nil, err
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	dash.ProductCount = len(products)
	dash.InventoryCostUSD = decimal.Zero
	for _, p := range products {
		dash.InventoryCostUSD = dash.InventoryCostUSD.Add(p.Stock.Mul(p.CostUSD))
		if p.LowStock() {
			dash.LowStockProducts = append(dash.LowStockProducts, p)
		}
	}

	return dash, nil
}

// Monthly returns one summary per calendar month with activity, oldest first.
func (s *Service) Monthly(ctx context.Context) ([]MonthlySummary, error) {
	sales, err := s.engine.Sales(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	purchases, err := s.engine.Purchases(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}

	byMonth := make(map[string]*MonthlySummary)
	get := func(date time.Time) *MonthlySummary {
		key := date.UTC().Format("2006-01")
		summary, ok := byMonth[key]
		if !ok {
			summary = &MonthlySummary{
				Month:        key,
				SalesUSD:     decimal.Zero,
				PurchasesUSD: decimal.Zero,
				ProfitUSD:    decimal.Zero,
			}
			byMonth[key] = summary
		}
		return summary
	}

	costs, err := s.productCosts(ctx)
	if err != nil {
		return nil, err
	}

	for _, sale := range sales {
		summary := get(sale.Date)
		summary.SalesUSD = summary.SalesUSD.Add(sale.TotalUSD)
		summary.SalesCount++

		margin := sale.TotalUSD
		for _, item := range sale.Items {
			margin = margin.Sub(item.Quantity.Mul(costs[item.ProductID]))
		}
		summary.ProfitUSD = summary.ProfitUSD.Add(margin)
	}

	for _, purchase := range purchases {
		summary := get(purchase.Date)
		summary.PurchasesUSD = summary.PurchasesUSD.Add(purchase.TotalUSD)
	}

	summaries := make([]MonthlySummary, 0, len(byMonth))
	for _, summary := range byMonth {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Month < summaries[j].Month
	})

	return summaries, nil
}

// productCosts returns the current unit cost per product id. Sale lines only
// snapshot the sale price, so margins use today's cost for missing history.
func (s *Service) productCosts(ctx context.Context) (map[string]decimal.Decimal, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	costs := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		costs[p.ID] = p.CostUSD
	}
	return costs, nil
}
