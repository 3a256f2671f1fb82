package transaction

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddanez/GestorPro/internal/catalog"
	"github.com/ddanez/GestorPro/internal/docstore"
)

// Engine commits sales and purchases. A commit persists the document first
// and then walks the line items applying catalog side effects one at a time,
// in order. There is no cross-write transaction boundary: if a stock write
// fails midway the committed document stays and the error is surfaced, never
// hidden and never compensated.
type Engine struct {
	catalog   *catalog.Service
	sales     docstore.Collection[Sale]
	purchases docstore.Collection[Purchase]

	now func() time.Time
}

func NewEngine(store docstore.Store, cat *catalog.Service) *Engine {
	return &Engine{
		catalog:   cat,
		sales:     docstore.NewCollection[Sale](store, docstore.Sales),
		purchases: docstore.NewCollection[Purchase](store, docstore.Purchases),
		now:       time.Now,
	}
}

// SaleLine is one cart entry submitted for a sale. PriceUSD is the unit
// price the cashier saw when the line was added; it is stored verbatim as
// the snapshot.
type SaleLine struct {
	ProductID string
	Quantity  decimal.Decimal
	PriceUSD  decimal.Decimal
}

// PurchaseLine is one cart entry submitted for a purchase. CostUSD becomes
// the product's live cost and NewSalePriceUSD its live sale price.
type PurchaseLine struct {
	ProductID       string
	Quantity        decimal.Decimal
	CostUSD         decimal.Decimal
	NewSalePriceUSD decimal.Decimal
}

type CommitSaleParams struct {
	CustomerID        string
	SellerID          string
	Lines             []SaleLine
	DiscountUSD       decimal.Decimal
	IsCredit          bool
	InitialPaymentUSD decimal.Decimal
	ExchangeRate      decimal.Decimal
}

type CommitPurchaseParams struct {
	SupplierID        string
	Lines             []PurchaseLine
	DiscountUSD       decimal.Decimal
	IsCredit          bool
	InitialPaymentUSD decimal.Decimal
	ExchangeRate      decimal.Decimal
	// EditingID, when set, replaces an existing purchase wholesale: the
	// original id and date are kept, items and totals are overwritten.
	EditingID string
}

// CommitSale validates the cart against current stock, computes totals,
// persists the sale, then deducts stock line by line.
//
// The stock check runs for every line before any write, so a violation
// leaves both the catalog and the sales collection untouched.
func (e *Engine) CommitSale(ctx context.Context, p CommitSaleParams) (*Sale, error) {
	if len(p.Lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	if p.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer is required", ErrValidation)
	}

	customer, err := e.catalog.Customer(ctx, p.CustomerID)
	if err != nil {
		return nil, err
	}

	var sellerName string

	if p.SellerID != "" {
		seller, err := e.catalog.Seller(ctx, p.SellerID)
		if err != nil {
			return nil, err
		}

		sellerName = seller.Name
	}

	items := make([]SaleItem, 0, len(p.Lines))
	subtotal := decimal.Zero
	requested := make(map[string]decimal.Decimal, len(p.Lines))

	for _, line := range p.Lines {
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive for product %q", ErrValidation, line.ProductID)
		}

		if line.PriceUSD.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative for product %q", ErrValidation, line.ProductID)
		}

		product, err := e.catalog.Product(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		// Duplicate lines for one product draw from the same stock, so the
		// ceiling applies to the cart's aggregate quantity per product.
		cartQty := requested[product.ID].Add(line.Quantity)
		requested[product.ID] = cartQty

		if cartQty.GreaterThan(product.Stock) {
			return nil, &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   cartQty,
				Available:   product.Stock,
			}
		}

		items = append(items, SaleItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			PriceUSD:  line.PriceUSD,
		})

		subtotal = subtotal.Add(line.Quantity.Mul(line.PriceUSD))
	}

	billing, err := buildBilling(subtotal, p.DiscountUSD, p.IsCredit, p.InitialPaymentUSD, p.ExchangeRate)
	if err != nil {
		return nil, err
	}

	sale := &Sale{
		ID:           uuid.NewString(),
		Date:         e.now().UTC(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		SellerID:     p.SellerID,
		SellerName:   sellerName,
		Items:        items,
		Billing:      billing,
	}

	if err := e.sales.Put(ctx, sale.ID, *sale); err != nil {
		return nil, fmt.Errorf("storing sale: %w", err)
	}

	for _, item := range sale.Items {
		if _, err := e.catalog.AdjustStock(ctx, item.ProductID, item.Quantity.Neg()); err != nil {
			return nil, fmt.Errorf("sale %s committed but stock update failed for product %q: %w",
				sale.ID, item.Name, err)
		}
	}

	return sale, nil
}

// CommitPurchase computes totals, persists the purchase, then per line
// increases stock and overwrites the product's live cost and sale price.
//
// When EditingID is set the existing document is overwritten in full and the
// side effects are re-applied identically; the original commit's stock
// deltas are NOT reversed first. Compatibility behavior, stock duplication
// and all.
func (e *Engine) CommitPurchase(ctx context.Context, p CommitPurchaseParams) (*Purchase, error) {
	if len(p.Lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	if p.SupplierID == "" {
		return nil, fmt.Errorf("%w: supplier is required", ErrValidation)
	}

	supplier, err := e.catalog.Supplier(ctx, p.SupplierID)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseItem, 0, len(p.Lines))
	subtotal := decimal.Zero

	for _, line := range p.Lines {
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive for product %q", ErrValidation, line.ProductID)
		}

		if line.CostUSD.IsNegative() || line.NewSalePriceUSD.IsNegative() {
			return nil, fmt.Errorf("%w: cost and sale price must not be negative for product %q", ErrValidation, line.ProductID)
		}

		product, err := e.catalog.Product(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		items = append(items, PurchaseItem{
			ProductID:       product.ID,
			Name:            product.Name,
			Quantity:        line.Quantity,
			CostUSD:         line.CostUSD,
			NewSalePriceUSD: line.NewSalePriceUSD,
		})

		subtotal = subtotal.Add(line.Quantity.Mul(line.CostUSD))
	}

	billing, err := buildBilling(subtotal, p.DiscountUSD, p.IsCredit, p.InitialPaymentUSD, p.ExchangeRate)
	if err != nil {
		return nil, err
	}

	purchase := &Purchase{
		ID:           uuid.NewString(),
		Date:         e.now().UTC(),
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Items:        items,
		Billing:      billing,
	}

	if p.EditingID != "" {
		original, err := e.purchases.Get(ctx, p.EditingID)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return nil, fmt.Errorf("purchase %q: %w", p.EditingID, catalog.ErrNotFound)
			}

			return nil, fmt.Errorf("getting purchase: %w", err)
		}

		purchase.ID = original.ID
		purchase.Date = original.Date
	}

	if err := e.purchases.Put(ctx, purchase.ID, *purchase); err != nil {
		return nil, fmt.Errorf("storing purchase: %w", err)
	}

	for _, item := range purchase.Items {
		if _, err := e.catalog.ReceiveStock(ctx, item.ProductID, item.Quantity, item.CostUSD, item.NewSalePriceUSD); err != nil {
			return nil, fmt.Errorf("purchase %s committed but stock update failed for product %q: %w",
				purchase.ID, item.Name, err)
		}
	}

	return purchase, nil
}

// Sales returns every committed sale, newest first.
func (e *Engine) Sales(ctx context.Context) ([]Sale, error) {
	sales, err := e.sales.All(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(sales, func(i, j int) bool { return sales[i].Date.After(sales[j].Date) })

	return sales, nil
}

// Purchases returns every committed purchase, newest first.
func (e *Engine) Purchases(ctx context.Context) ([]Purchase, error) {
	purchases, err := e.purchases.All(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(purchases, func(i, j int) bool { return purchases[i].Date.After(purchases[j].Date) })

	return purchases, nil
}

// buildBilling computes the frozen monetary state of a commit. The discount
// is optional but must not push the total negative: that fails validation
// rather than silently clamping.
func buildBilling(subtotal, discount decimal.Decimal, isCredit bool, initialPayment, rate decimal.Decimal) (Billing, error) {
	if discount.IsNegative() {
		return Billing{}, fmt.Errorf("%w: discount must not be negative", ErrValidation)
	}

	if initialPayment.IsNegative() {
		return Billing{}, fmt.Errorf("%w: initial payment must not be negative", ErrValidation)
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return Billing{}, fmt.Errorf("%w: discount %s exceeds subtotal %s", ErrValidation, discount, subtotal)
	}

	paid := total
	if isCredit {
		paid = initialPayment
	}

	b := Billing{
		TotalUSD:          total,
		TotalBS:           total.Mul(rate),
		ExchangeRate:      rate,
		DiscountUSD:       discount,
		InitialPaymentUSD: paid,
		PaidAmountUSD:     paid,
	}
	b.refreshStatus()

	return b, nil
}
