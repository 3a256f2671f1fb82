// Package ledger is the balance-reconciliation view over committed sales and
// purchases: accounts receivable (CxC) and accounts payable (CxP).
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ddanez/GestorPro/internal/docstore"
	"github.com/ddanez/GestorPro/internal/transaction"
)

// Kind selects which side of the ledger an operation targets.
type Kind string

const (
	// KindReceivable is CxC: pending sales awaiting customer payment.
	KindReceivable Kind = "cxc"
	// KindPayable is CxP: pending purchases awaiting payment to a supplier.
	KindPayable Kind = "cxp"
)

var (
	ErrNotFound    = errors.New("transaction not found")
	ErrUnknownKind = errors.New("unknown ledger kind")
)

// Entry is the ledger's uniform view of a sale or purchase.
type Entry struct {
	ID               string          `json:"id"`
	Date             time.Time       `json:"date"`
	CounterpartyName string          `json:"counterpartyName"`
	Items            int             `json:"items"`
	Outstanding      decimal.Decimal `json:"outstandingUSD"`
	transaction.Billing
}

// Receipt is the printable record of a single payment. It freezes the
// exchange rate at payment time, independent of the transaction's original
// rate, and is not persisted: it exists for display and ticket printing.
type Receipt struct {
	TransactionID    string          `json:"transactionId"`
	Kind             Kind            `json:"kind"`
	CounterpartyName string          `json:"counterpartyName"`
	AmountUSD        decimal.Decimal `json:"amountUSD"`
	AmountBS         decimal.Decimal `json:"amountBS"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	Date             time.Time       `json:"date"`
}

type Service struct {
	sales     docstore.Collection[transaction.Sale]
	purchases docstore.Collection[transaction.Purchase]

	now func() time.Time
}

func NewService(store docstore.Store) *Service {
	return &Service{
		sales:     docstore.NewCollection[transaction.Sale](store, docstore.Sales),
		purchases: docstore.NewCollection[transaction.Purchase](store, docstore.Purchases),
		now:       time.Now,
	}
}

func saleEntry(s transaction.Sale) Entry {
	return Entry{
		ID:               s.ID,
		Date:             s.Date,
		CounterpartyName: s.CustomerName,
		Items:            len(s.Items),
		Outstanding:      s.Outstanding(),
		Billing:          s.Billing,
	}
}

func purchaseEntry(p transaction.Purchase) Entry {
	return Entry{
		ID:               p.ID,
		Date:             p.Date,
		CounterpartyName: p.SupplierName,
		Items:            len(p.Items),
		Outstanding:      p.Outstanding(),
		Billing:          p.Billing,
	}
}

// ListPending returns every transaction still owing, oldest debt first.
func (s *Service) ListPending(ctx context.Context, kind Kind) ([]Entry, error) {
	var entries []Entry

	switch kind {
	case KindReceivable:
		sales, err := s.sales.All(ctx)
		if err != nil {
			return nil, err
		}

		for _, sale := range sales {
			if sale.Status == transaction.StatusPending {
				entries = append(entries, saleEntry(sale))
			}
		}
	case KindPayable:
		purchases, err := s.purchases.All(ctx)
		if err != nil {
			return nil, err
		}

		for _, purchase := range purchases {
			if purchase.Status == transaction.StatusPending {
				entries = append(entries, purchaseEntry(purchase))
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })

	return entries, nil
}

// TotalOutstanding sums the outstanding balance across every pending entry.
func (s *Service) TotalOutstanding(ctx context.Context, kind Kind) (decimal.Decimal, error) {
	entries, err := s.ListPending(ctx, kind)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Outstanding)
	}

	return total, nil
}

// ApplyPayment accumulates amountUSD onto the transaction's paid total and
// re-derives its status. Overpayment is not rejected and not capped: the
// stored paid amount is the raw cumulative sum. The returned receipt freezes
// the exchange rate passed in, at payment time.
func (s *Service) ApplyPayment(ctx context.Context, kind Kind, id string, amountUSD, exchangeRate decimal.Decimal) (*Entry, *Receipt, error) {
	if !amountUSD.IsPositive() {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive", transaction.ErrValidation)
	}

	if !exchangeRate.IsPositive() {
		return nil, nil, fmt.Errorf("%w: exchange rate must be positive", transaction.ErrValidation)
	}

	var entry Entry

	switch kind {
	case KindReceivable:
		sale, err := s.sales.Get(ctx, id)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return nil, nil, fmt.Errorf("sale %q: %w", id, ErrNotFound)
			}

			return nil, nil, fmt.Errorf("getting sale: %w", err)
		}

		sale.RecordPayment(amountUSD)

		if err := s.sales.Put(ctx, sale.ID, *sale); err != nil {
			return nil, nil, fmt.Errorf("storing sale: %w", err)
		}

		entry = saleEntry(*sale)
	case KindPayable:
		purchase, err := s.purchases.Get(ctx, id)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return nil, nil, fmt.Errorf("purchase %q: %w", id, ErrNotFound)
			}

			return nil, nil, fmt.Errorf("getting purchase: %w", err)
		}

		purchase.RecordPayment(amountUSD)

		if err := s.purchases.Put(ctx, purchase.ID, *purchase); err != nil {
			return nil, nil, fmt.Errorf("storing purchase: %w", err)
		}

		entry = purchaseEntry(*purchase)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	receipt := &Receipt{
		TransactionID:    entry.ID,
		Kind:             kind,
		CounterpartyName: entry.CounterpartyName,
		AmountUSD:        amountUSD,
		AmountBS:         amountUSD.Mul(exchangeRate),
		ExchangeRate:     exchangeRate,
		Date:             s.now().UTC(),
	}

	return &entry, receipt, nil
}
