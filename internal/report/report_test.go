package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddanez/GestorPro/internal/catalog"
	"github.com/ddanez/GestorPro/internal/docstore"
	"github.com/ddanez/GestorPro/internal/ledger"
	"github.com/ddanez/GestorPro/internal/transaction"
)

type fixture struct {
	store   *docstore.MemoryStore
	catalog *catalog.Service
	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := docstore.NewMemoryStore()
	cat := catalog.NewService(store)
	engine := transaction.NewEngine(store, cat)
	led := ledger.NewService(store)

	service := NewService(cat, engine, led)
	service.now = func() time.Time {
		return time.Date(2024, time.April, 10, 14, 0, 0, 0, time.UTC)
	}

	return &fixture{store: store, catalog: cat, service: service}
}

func (f *fixture) addProduct(t *testing.T, name string, price, cost, stock, minStock float64) *catalog.Product {
	t.Helper()

	product, err := f.catalog.UpsertProduct(context.Background(), catalog.Product{
		Name:     name,
		SKU:      "SKU-" + name,
		PriceUSD: decimal.NewFromFloat(price),
		CostUSD:  decimal.NewFromFloat(cost),
		Stock:    decimal.NewFromFloat(stock),
		MinStock: decimal.NewFromFloat(minStock),
	})
	require.NoError(t, err)

	return product
}

// putSale stores a sale document directly so tests control the date.
func (f *fixture) putSale(t *testing.T, sale transaction.Sale) {
	t.Helper()

	require.NoError(t, f.store.Put(context.Background(), docstore.Sales, sale.ID, sale))
}

func (f *fixture) putPurchase(t *testing.T, purchase transaction.Purchase) {
	t.Helper()

	require.NoError(t, f.store.Put(context.Background(), docstore.Purchases, purchase.ID, purchase))
}

func saleOn(id string, date time.Time, totalUSD, paidUSD float64, items ...transaction.SaleItem) transaction.Sale {
	total := decimal.NewFromFloat(totalUSD)
	paid := decimal.NewFromFloat(paidUSD)

	status := transaction.StatusPending
	if paid.GreaterThanOrEqual(total) {
		status = transaction.StatusPaid
	}

	return transaction.Sale{
		ID:           id,
		Date:         date,
		CustomerID:   "c1",
		CustomerName: "María Pérez",
		Items:        items,
		Billing: transaction.Billing{
			TotalUSD:      total,
			TotalBS:       total.Mul(decimal.NewFromFloat(45.5)),
			ExchangeRate:  decimal.NewFromFloat(45.5),
			Status:        status,
			PaidAmountUSD: paid,
		},
	}
}

func purchaseOn(id string, date time.Time, totalUSD, paidUSD float64) transaction.Purchase {
	total := decimal.NewFromFloat(totalUSD)
	paid := decimal.NewFromFloat(paidUSD)

	status := transaction.StatusPending
	if paid.GreaterThanOrEqual(total) {
		status = transaction.StatusPaid
	}

	return transaction.Purchase{
		ID:           id,
		Date:         date,
		SupplierID:   "s1",
		SupplierName: "Distribuidora Centro",
		Billing: transaction.Billing{
			TotalUSD:      total,
			TotalBS:       total.Mul(decimal.NewFromFloat(45.5)),
			ExchangeRate:  decimal.NewFromFloat(45.5),
			Status:        status,
			PaidAmountUSD: paid,
		},
	}
}

func TestService_Dashboard(t *testing.T) {
	f := newFixture(t)

	f.addProduct(t, "Harina de maíz", 5, 3, 10, 4)
	low := f.addProduct(t, "Aceite", 8, 6, 2, 5)

	today := time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	f.putSale(t, saleOn("sale-1", today, 20, 20))
	f.putSale(t, saleOn("sale-2", today, 15, 5))
	f.putSale(t, saleOn("sale-3", yesterday, 100, 100))
	f.putPurchase(t, purchaseOn("pur-1", yesterday, 40, 10))

	dash, err := f.service.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, dash.TodaySalesCount)
	assert.True(t, dash.TodaySalesUSD.Equal(decimal.NewFromFloat(35)), "today USD: %s", dash.TodaySalesUSD)
	assert.True(t, dash.TodaySalesBS.Equal(decimal.NewFromFloat(1592.5)), "today BS: %s", dash.TodaySalesBS)

	// Outstanding: sale-2 owes 10, pur-1 owes 30.
	assert.True(t, dash.ReceivableUSD.Equal(decimal.NewFromFloat(10)), "receivable: %s", dash.ReceivableUSD)
	assert.True(t, dash.PayableUSD.Equal(decimal.NewFromFloat(30)), "payable: %s", dash.PayableUSD)

	// Inventory at cost: 10*3 + 2*6.
	assert.Equal(t, 2, dash.ProductCount)
	assert.True(t, dash.InventoryCostUSD.Equal(decimal.NewFromFloat(42)), "inventory: %s", dash.InventoryCostUSD)

	require.Len(t, dash.LowStockProducts, 1)
	assert.Equal(t, low.ID, dash.LowStockProducts[0].ID)
}

func TestService_Dashboard_Empty(t *testing.T) {
	f := newFixture(t)

	dash, err := f.service.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, dash.TodaySalesCount)
	assert.True(t, dash.TodaySalesUSD.IsZero())
	assert.True(t, dash.ReceivableUSD.IsZero())
	assert.True(t, dash.PayableUSD.IsZero())
	assert.Empty(t, dash.LowStockProducts)
}

func TestService_Monthly(t *testing.T) {
	f := newFixture(t)

	product := f.addProduct(t, "Harina de maíz", 5, 3, 50, 4)

	march := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	april := time.Date(2024, time.April, 2, 10, 0, 0, 0, time.UTC)

	line := func(qty float64) transaction.SaleItem {
		return transaction.SaleItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  decimal.NewFromFloat(qty),
			PriceUSD:  decimal.NewFromFloat(5),
		}
	}

	f.putSale(t, saleOn("sale-1", march, 10, 10, line(2)))
	f.putSale(t, saleOn("sale-2", march, 25, 25, line(5)))
	f.putSale(t, saleOn("sale-3", april, 5, 5, line(1)))
	f.putPurchase(t, purchaseOn("pur-1", march, 60, 60))

	summaries, err := f.service.Monthly(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "2024-03", summaries[0].Month)
	assert.Equal(t, 2, summaries[0].SalesCount)
	assert.True(t, summaries[0].SalesUSD.Equal(decimal.NewFromFloat(35)))
	assert.True(t, summaries[0].PurchasesUSD.Equal(decimal.NewFromFloat(60)))
	// March margin: 35 revenue minus 7 units at cost 3.
	assert.True(t, summaries[0].ProfitUSD.Equal(decimal.NewFromFloat(14)), "march profit: %s", summaries[0].ProfitUSD)

	assert.Equal(t, "2024-04", summaries[1].Month)
	assert.True(t, summaries[1].SalesUSD.Equal(decimal.NewFromFloat(5)))
	assert.True(t, summaries[1].PurchasesUSD.IsZero())
	assert.True(t, summaries[1].ProfitUSD.Equal(decimal.NewFromFloat(2)))
}

func TestService_Workbook(t *testing.T) {
	f := newFixture(t)

	f.addProduct(t, "Harina de maíz", 5, 3, 10, 4)
	f.putSale(t, saleOn("sale-1", time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC), 20, 20))
	f.putPurchase(t, purchaseOn("pur-1", time.Date(2024, time.April, 9, 9, 0, 0, 0, time.UTC), 40, 10))

	file, err := f.service.Workbook(context.Background())
	require.NoError(t, err)
	defer file.Close()

	assert.ElementsMatch(t, []string{"Inventario", "Ventas", "Compras"}, file.GetSheetList())

	rows, err := file.GetRows("Inventario")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Harina de maíz", rows[1][0])
	assert.Equal(t, "5", rows[1][3])

	rows, err = file.GetRows("Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "María Pérez", rows[1][1])
	assert.Equal(t, "paid", rows[1][7])

	rows, err = file.GetRows("Compras")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Distribuidora Centro", rows[1][1])
	assert.Equal(t, "pending", rows[1][5])
}
