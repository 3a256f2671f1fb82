package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ddanez/GestorPro/internal/docstore"
)

type Service struct {
	products  docstore.Collection[Product]
	customers docstore.Collection[Customer]
	suppliers docstore.Collection[Supplier]
	sellers   docstore.Collection[Seller]
}

func NewService(store docstore.Store) *Service {
	return &Service{
		products:  docstore.NewCollection[Product](store, docstore.Products),
		customers: docstore.NewCollection[Customer](store, docstore.Customers),
		suppliers: docstore.NewCollection[Supplier](store, docstore.Suppliers),
		sellers:   docstore.NewCollection[Seller](store, docstore.Sellers),
	}
}

func (s *Service) Products(ctx context.Context) ([]Product, error) {
	return s.products.All(ctx)
}

func (s *Service) Product(ctx context.Context, id string) (*Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

// UpsertProduct validates and stores the product, assigning an id when absent.
// SKU uniqueness is deliberately not enforced: duplicate merchant codes are
// the merchant's call.
func (s *Service) UpsertProduct(ctx context.Context, p Product) (*Product, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalid)
	}

	if p.SKU == "" {
		return nil, fmt.Errorf("%w: product sku is required", ErrInvalid)
	}

	if p.PriceUSD.IsNegative() || p.CostUSD.IsNegative() || p.MinStock.IsNegative() {
		return nil, fmt.Errorf("%w: price, cost and min stock must not be negative", ErrInvalid)
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if err := s.products.Put(ctx, p.ID, p); err != nil {
		return nil, fmt.Errorf("storing product: %w", err)
	}

	return &p, nil
}

// AdjustStock applies stock += delta and returns the updated product.
// Called exclusively by the transaction engine; availability is the engine's
// concern, so no floor is enforced here.
func (s *Service) AdjustStock(ctx context.Context, productID string, delta decimal.Decimal) (*Product, error) {
	p, err := s.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	p.Stock = p.Stock.Add(delta)

	if err := s.products.Put(ctx, p.ID, *p); err != nil {
		return nil, fmt.Errorf("storing product: %w", err)
	}

	return p, nil
}

// ReceiveStock applies a purchase line to the catalog: stock increases by qty
// and the live cost and sale price are overwritten with the line's values, in
// a single product write. The latest purchase sets market price.
func (s *Service) ReceiveStock(ctx context.Context, productID string, qty, costUSD, priceUSD decimal.Decimal) (*Product, error) {
	p, err := s.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	p.Stock = p.Stock.Add(qty)
	p.CostUSD = costUSD
	p.PriceUSD = priceUSD

	if err := s.products.Put(ctx, p.ID, *p); err != nil {
		return nil, fmt.Errorf("storing product: %w", err)
	}

	return p, nil
}

// DeleteProduct removes a product from the catalog. Committed transactions
// keep their snapshots, so history is unaffected.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return nil
}

// LowStock returns products at or below their reorder threshold.
func (s *Service) LowStock(ctx context.Context) ([]Product, error) {
	all, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}

	var low []Product

	for _, p := range all {
		if p.LowStock() {
			low = append(low, p)
		}
	}

	return low, nil
}

func (s *Service) Customers(ctx context.Context) ([]Customer, error) {
	return s.customers.All(ctx)
}

func (s *Service) Customer(ctx context.Context, id string) (*Customer, error) {
	c, err := s.customers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("customer %q: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Service) UpsertCustomer(ctx context.Context, c Customer) (*Customer, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalid)
	}

	if c.Phone == "" {
		return nil, fmt.Errorf("%w: customer phone is required", ErrInvalid)
	}

	if c.RIF == "" {
		return nil, fmt.Errorf("%w: customer rif is required", ErrInvalid)
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	if err := s.customers.Put(ctx, c.ID, c); err != nil {
		return nil, fmt.Errorf("storing customer: %w", err)
	}

	return &c, nil
}

func (s *Service) Suppliers(ctx context.Context) ([]Supplier, error) {
	return s.suppliers.All(ctx)
}

func (s *Service) Supplier(ctx context.Context, id string) (*Supplier, error) {
	sup, err := s.suppliers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("supplier %q: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("getting supplier: %w", err)
	}

	return sup, nil
}

func (s *Service) UpsertSupplier(ctx context.Context, sup Supplier) (*Supplier, error) {
	if sup.Name == "" {
		return nil, fmt.Errorf("%w: supplier name is required", ErrInvalid)
	}

	if sup.Phone == "" {
		return nil, fmt.Errorf("%w: supplier phone is required", ErrInvalid)
	}

	if sup.RIF == "" {
		return nil, fmt.Errorf("%w: supplier rif is required", ErrInvalid)
	}

	if sup.ID == "" {
		sup.ID = uuid.NewString()
	}

	if err := s.suppliers.Put(ctx, sup.ID, sup); err != nil {
		return nil, fmt.Errorf("storing supplier: %w", err)
	}

	return &sup, nil
}

func (s *Service) Sellers(ctx context.Context) ([]Seller, error) {
	return s.sellers.All(ctx)
}

func (s *Service) Seller(ctx context.Context, id string) (*Seller, error) {
	sel, err := s.sellers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("seller %q: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("getting seller: %w", err)
	}

	return sel, nil
}

// UpsertSeller stores a seller. Sellers have no tax id; new sellers default
// to active.
func (s *Service) UpsertSeller(ctx context.Context, sel Seller) (*Seller, error) {
	if sel.Name == "" {
		return nil, fmt.Errorf("%w: seller name is required", ErrInvalid)
	}

	if sel.Phone == "" {
		return nil, fmt.Errorf("%w: seller phone is required", ErrInvalid)
	}

	if sel.Status == "" {
		sel.Status = SellerActive
	}

	if sel.ID == "" {
		sel.ID = uuid.NewString()
	}

	if err := s.sellers.Put(ctx, sel.ID, sel); err != nil {
		return nil, fmt.Errorf("storing seller: %w", err)
	}

	return &sel, nil
}

// DeleteContact removes a contact. Historical transactions keep their
// denormalized name snapshots, so nothing cascades.
func (s *Service) DeleteContact(ctx context.Context, kind ContactKind, id string) error {
	var err error

	switch kind {
	case KindCustomer:
		err = s.customers.Delete(ctx, id)
	case KindSupplier:
		err = s.suppliers.Delete(ctx, id)
	case KindSeller:
		err = s.sellers.Delete(ctx, id)
	default:
		return fmt.Errorf("%w: unknown contact kind %q", ErrInvalid, kind)
	}

	if err != nil {
		return fmt.Errorf("deleting %s: %w", kind, err)
	}

	return nil
}
