// Package docstore is the persistence collaborator shared by every service:
// a named-collection document store with whole-collection reads, id-keyed
// upserts, and bulk backup/restore. Collections stay small, so
// GetAll is the only read primitive.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names. The set is fixed: any other name is rejected by both
// backends.
const (
	Products  = "products"
	Customers = "customers"
	Suppliers = "suppliers"
	Sellers   = "sellers"
	Sales     = "sales"
	Purchases = "purchases"
	Settings  = "settings"
)

// Collections lists every collection, in the order backup files are written.
var Collections = []string{Products, Customers, Suppliers, Sellers, Sales, Purchases, Settings}

var (
	// ErrUnavailable wraps any backend read/write fault.
	ErrUnavailable = errors.New("store unavailable")
	// ErrUnknownCollection is returned for collection names outside the fixed set.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrNotFound is returned by Collection.Get when no record has the id.
	ErrNotFound = errors.New("record not found")
)

// Snapshot is a full dump of every collection, keyed by collection name.
type Snapshot map[string][]json.RawMessage

//go:generate mockgen -source=docstore.go -destination=docstore_mock.go -package=docstore
type Store interface {
	// GetAll returns every record in the collection. No filtering, no pagination.
	GetAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	// Put upserts the record under the given id.
	Put(ctx context.Context, collection, id string, record any) error
	// Delete removes the record with the given id. Deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// ExportAll serializes every collection for backup.
	ExportAll(ctx context.Context) (Snapshot, error)
	// ImportAll replaces the contents of each collection present in the snapshot.
	ImportAll(ctx context.Context, snap Snapshot) error
	// ResetAll clears every collection's contents, preserving the collections themselves.
	ResetAll(ctx context.Context) error
}

func validCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}

	return false
}

// Collection is a typed view over one named collection.
type Collection[T any] struct {
	store Store
	name  string
}

func NewCollection[T any](store Store, name string) Collection[T] {
	return Collection[T]{store: store, name: name}
}

func (c Collection[T]) Name() string { return c.name }

func (c Collection[T]) All(ctx context.Context) ([]T, error) {
	raws, err := c.store.GetAll(ctx, c.name)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(raws))

	for _, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decoding %q record: %w", c.name, err)
		}

		records = append(records, rec)
	}

	return records, nil
}

// Get scans the collection for the record with the given id. The store
// contract has no point lookup, so this loads the collection wholesale.
func (c Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	raws, err := c.store.GetAll(ctx, c.name)
	if err != nil {
		return nil, err
	}

	for _, raw := range raws {
		var probe struct {
			ID string `json:"id"`
		}

		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, fmt.Errorf("decoding %q record: %w", c.name, err)
		}

		if probe.ID != id {
			continue
		}

		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decoding %q record: %w", c.name, err)
		}

		return &rec, nil
	}

	return nil, ErrNotFound
}

func (c Collection[T]) Put(ctx context.Context, id string, record T) error {
	return c.store.Put(ctx, c.name, id, record)
}

func (c Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}
