// Package catalog owns product and contact identity and state. Stock and
// live cost/price are mutated here, but only the transaction engine decides
// when those mutations happen.
package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a referenced product or contact id is unknown.
	ErrNotFound = errors.New("not found")
	// ErrInvalid wraps validation failures on catalog input.
	ErrInvalid = errors.New("invalid input")
)

// Product is a sellable item. Stock is a signed decimal quantity: fractional
// units are first-class for weight-based goods.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	PriceUSD decimal.Decimal `json:"priceUSD"`
	CostUSD  decimal.Decimal `json:"costUSD"`
	Stock    decimal.Decimal `json:"stock"`
	MinStock decimal.Decimal `json:"minStock"`
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p Product) LowStock() bool {
	return p.Stock.LessThanOrEqual(p.MinStock)
}

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	RIF     string `json:"rif"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type Supplier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	RIF   string `json:"rif"`
	Phone string `json:"phone"`
}

// SellerStatus marks whether a seller can be assigned to new sales.
type SellerStatus string

const (
	SellerActive   SellerStatus = "active"
	SellerInactive SellerStatus = "inactive"
)

type Seller struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Phone  string       `json:"phone"`
	Status SellerStatus `json:"status"`
}

// ContactKind selects which contact collection an operation targets.
type ContactKind string

const (
	KindCustomer ContactKind = "customer"
	KindSupplier ContactKind = "supplier"
	KindSeller   ContactKind = "seller"
)
