package store

import (
	"context"
	"fmt"
)

// SavedQuery is one catalog entry.
type SavedQuery struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Body        string `json:"body"`
	Fingerprint string `json:"fingerprint"`
	Revision    int64  `json:"revision"`
}

// Get returns the saved query with the given name.
// Returns ErrNotFound if there is none.
func (s *Store) Get(ctx context.Context, name string) (SavedQuery, error) {
	q, err := scanSavedQuery(s.db.QueryRowContext(ctx, `
		SELECT id, name, body, fingerprint, revision
		FROM saved_queries
		WHERE name = ?
	`, name))
	if err != nil {
		return SavedQuery{}, fmt.Errorf("get %s: %w", name, err)
	}
	return q, nil
}

// List returns every saved query ordered by name.
//
// Returns an empty slice (not nil) if the catalog is empty.
func (s *Store) List(ctx context.Context) ([]SavedQuery, error) {
	return s.list(ctx, `
		SELECT id, name, body, fingerprint, revision
		FROM saved_queries
		ORDER BY name COLLATE BINARY ASC
	`)
}

// FindByFingerprint returns the saved queries whose body has the given
// fingerprint, ordered by name. Distinct names that render the same bytes
// share a fingerprint.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) ([]SavedQuery, error) {
	return s.list(ctx, `
		SELECT id, name, body, fingerprint, revision
		FROM saved_queries
		WHERE fingerprint = ?
		ORDER BY name COLLATE BINARY ASC
	`, fingerprint)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]SavedQuery, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query saved queries: %w", err)
	}
	defer rows.Close()

	queries := []SavedQuery{}
	for rows.Next() {
		q, err := scanSavedQuery(rows)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved queries: %w", err)
	}
	return queries, nil
}
