package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresStore keeps one (id TEXT PRIMARY KEY, data JSONB) table per
// collection, mirroring the document layout the rest of the system expects.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates the collection tables if they do not exist yet and
// returns the store.
func NewPostgresStore(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	for _, collection := range Collections {
		ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, data JSONB NOT NULL)`, collection)
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("creating collection %q: %w: %w", collection, ErrUnavailable, err)
		}
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if !validCollection(collection) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT data FROM %s ORDER BY id`, collection))
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w: %w", collection, ErrUnavailable, err)
	}
	defer rows.Close()

	var records []json.RawMessage

	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning %q record: %w: %w", collection, ErrUnavailable, err)
		}

		records = append(records, json.RawMessage(data))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %q: %w: %w", collection, ErrUnavailable, err)
	}

	return records, nil
}

func (s *PostgresStore) Put(ctx context.Context, collection, id string, record any) error {
	if !validCollection(collection) {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding %q record: %w", collection, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data
	`, collection)

	if _, err := s.db.ExecContext(ctx, query, id, data); err != nil {
		return fmt.Errorf("storing %q record: %w: %w", collection, ErrUnavailable, err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	if !validCollection(collection) {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, collection)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting %q record: %w: %w", collection, ErrUnavailable, err)
	}

	return nil
}

func (s *PostgresStore) ExportAll(ctx context.Context) (Snapshot, error) {
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

// ImportAll replaces the contents of each collection present in the snapshot
// inside a single SQL transaction, so a restore either lands whole or not at all.
func (s *PostgresStore) ImportAll(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning restore: %w: %w", ErrUnavailable, err)
	}
	defer tx.Rollback()

	for _, collection := range Collections {
		records, ok := snap[collection]
		if !ok {
			continue
		}

		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, collection)); err != nil {
			return fmt.Errorf("clearing %q: %w: %w", collection, ErrUnavailable, err)
		}

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

			query := fmt.Sprintf(`
				INSERT INTO %s (id, data) VALUES ($1, $2)
				ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data
			`, collection)

			if _, err := tx.ExecContext(ctx, query, probe.ID, []byte(raw)); err != nil {
				return fmt.Errorf("restoring %q record: %w: %w", collection, ErrUnavailable, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing restore: %w: %w", ErrUnavailable, err)
	}

	return nil
}

func (s *PostgresStore) ResetAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reset: %w: %w", ErrUnavailable, err)
	}
	defer tx.Rollback()

	for _, collection := range Collections {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, collection)); err != nil {
			return fmt.Errorf("clearing %q: %w: %w", collection, ErrUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reset: %w: %w", ErrUnavailable, err)
	}

	return nil
}
