package transaction

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrValidation wraps caller-fault input errors: empty carts, missing
// counterparties, non-positive quantities, negative totals. Never retried.
var ErrValidation = errors.New("validation failed")

// InsufficientStockError reports a sale line that would drive a product's
// stock negative. The offending product is named so the caller can point at
// it.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %s, available %s",
		e.ProductName, e.Requested, e.Available)
}
