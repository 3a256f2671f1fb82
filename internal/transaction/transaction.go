// Package transaction owns Sale and Purchase documents and the engine that
// commits them: totals under discounts, frozen exchange rates, and the stock
// and price side effects applied to the catalog.
package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a committed transaction.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

// Billing carries the monetary state shared by sales and purchases.
// TotalUSD, TotalBS and ExchangeRate are frozen at commit time: later rate
// changes never retroactively alter a document. PaidAmountUSD is the raw
// cumulative sum of payments and is never clamped, so an overpayment is
// preserved verbatim.
type Billing struct {
	TotalUSD          decimal.Decimal `json:"totalUSD"`
	TotalBS           decimal.Decimal `json:"totalBS"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	Status            Status          `json:"status"`
	DiscountUSD       decimal.Decimal `json:"discountUSD"`
	InitialPaymentUSD decimal.Decimal `json:"initialPaymentUSD"`
	PaidAmountUSD     decimal.Decimal `json:"paidAmountUSD"`
}

// Outstanding is the balance still owed. Display-level: never negative even
// after an overpayment.
func (b Billing) Outstanding() decimal.Decimal {
	out := b.TotalUSD.Sub(b.PaidAmountUSD)
	if out.IsNegative() {
		return decimal.Zero
	}

	return out
}

// RecordPayment accumulates a payment and re-derives the status. Status is
// always a function of paid vs total: it flips to paid exactly once the
// cumulative amount covers the total and never reverts.
func (b *Billing) RecordPayment(amountUSD decimal.Decimal) {
	b.PaidAmountUSD = b.PaidAmountUSD.Add(amountUSD)
	b.refreshStatus()
}

func (b *Billing) refreshStatus() {
	if b.PaidAmountUSD.GreaterThanOrEqual(b.TotalUSD) {
		b.Status = StatusPaid
	} else {
		b.Status = StatusPending
	}
}

// SaleItem is one immutable line of a committed sale. Name and PriceUSD are
// snapshots taken at commit time.
type SaleItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	PriceUSD  decimal.Decimal `json:"priceUSD"`
}

// PurchaseItem is one line of a purchase. NewSalePriceUSD is the sale price
// the purchase pushes onto the catalog product.
type PurchaseItem struct {
	ProductID       string          `json:"productId"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	CostUSD         decimal.Decimal `json:"costUSD"`
	NewSalePriceUSD decimal.Decimal `json:"newSalePriceUSD"`
}

// Sale is a committed sale document. Counterparty names are denormalized
// snapshots so historical documents survive contact renames and deletions.
type Sale struct {
	ID           string     `json:"id"`
	Date         time.Time  `json:"date"`
	CustomerID   string     `json:"customerId"`
	CustomerName string     `json:"customerName"`
	SellerID     string     `json:"sellerId,omitempty"`
	SellerName   string     `json:"sellerName,omitempty"`
	Items        []SaleItem `json:"items"`
	Billing
}

// Purchase is a committed purchase document. Purchases support an explicit
// edit-and-resubmit flow; sales do not.
type Purchase struct {
	ID           string         `json:"id"`
	Date         time.Time      `json:"date"`
	SupplierID   string         `json:"supplierId"`
	SupplierName string         `json:"supplierName"`
	Items        []PurchaseItem `json:"items"`
	Billing
}
