package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is the in-process backend: the same contract as PostgresStore
// over mutex-guarded maps. Used by tests and by the memory docstore driver.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	collections := make(map[string]map[string]json.RawMessage, len(Collections))
	for _, c := range Collections {
		collections[c] = map[string]json.RawMessage{}
	}

	return &MemoryStore{collections: collections}
}

// GetAll returns records sorted by id so reads are deterministic.
func (s *MemoryStore) GetAll(_ context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		out = append(out, append(json.RawMessage(nil), records[id]...))
	}

	return out, nil
}

func (s *MemoryStore) Put(_ context.Context, collection, id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding %q record: %w", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	records[id] = data

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	delete(records, id)

	return nil
}

func (s *MemoryStore) ExportAll(ctx context.Context) (Snapshot, error) {
	snap := make(Snapshot, len(Collections))

	for _, collection := range Collections {
		records, err := s.GetAll(ctx, collection)
		if err != nil {
			return nil, err
		}

		snap[collection] = records
	}

	return snap, nil
}

func (s *MemoryStore) ImportAll(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, collection := range Collections {
		records, ok := snap[collection]
		if !ok {
			continue
		}

		replacement := make(map[string]json.RawMessage, len(records))

		for _, raw := range records {
			var probe struct {
				ID string `json:"id"`
			}

			if err := json.Unmarshal(raw, &probe); err != nil {
				return fmt.Errorf("decoding %q record: %w", collection, err)
			}

			if probe.ID == "" {
				return fmt.Errorf("restoring %q: record without id", collection)
			}

			replacement[probe.ID] = append(json.RawMessage(nil), raw...)
		}

		s.collections[collection] = replacement
	}

	return nil
}

func (s *MemoryStore) ResetAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, collection := range Collections {
		s.collections[collection] = map[string]json.RawMessage{}
	}

	return nil
}
