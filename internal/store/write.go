package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/querydsl/internal/wire"
)

// Outcome describes what Save did.
type Outcome int

const (
	Created Outcome = iota
	Updated
	Unchanged
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Save stores body under name, creating the entry or replacing its body.
// The revision only increments when the fingerprint of body differs from
// the stored one; saving identical bytes returns Unchanged.
func (s *Store) Save(ctx context.Context, name string, body []byte) (SavedQuery, Outcome, error) {
	if strings.TrimSpace(name) == "" {
		return SavedQuery{}, 0, ErrInvalidName
	}
	if len(body) == 0 {
		return SavedQuery{}, 0, fmt.Errorf("save %s: empty body", name)
	}
	fingerprint := wire.Fingerprint(wire.DomainRequest, body)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SavedQuery{}, 0, fmt.Errorf("save %s: begin: %w", name, err)
	}
	defer tx.Rollback()

	existing, err := scanSavedQuery(tx.QueryRowContext(ctx, `
		SELECT id, name, body, fingerprint, revision
		FROM saved_queries
		WHERE name = ?
	`, name))

	var (
		saved   SavedQuery
		outcome Outcome
	)
	switch {
	case errors.Is(err, ErrNotFound):
		id, err := uuid.NewV7()
		if err != nil {
			return SavedQuery{}, 0, fmt.Errorf("save %s: generate id: %w", name, err)
		}
		saved = SavedQuery{
			ID:          id.String(),
			Name:        name,
			Body:        string(body),
			Fingerprint: fingerprint,
			Revision:    1,
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO saved_queries (id, name, body, fingerprint, revision)
			VALUES (?, ?, ?, ?, ?)
		`, saved.ID, saved.Name, saved.Body, saved.Fingerprint, saved.Revision); err != nil {
			return SavedQuery{}, 0, fmt.Errorf("save %s: insert: %w", name, err)
		}
		outcome = Created

	case err != nil:
		return SavedQuery{}, 0, fmt.Errorf("save %s: %w", name, err)

	case existing.Fingerprint == fingerprint:
		return existing, Unchanged, nil

	default:
		saved = existing
		saved.Body = string(body)
		saved.Fingerprint = fingerprint
		saved.Revision++
		if _, err := tx.ExecContext(ctx, `
			UPDATE saved_queries
			SET body = ?, fingerprint = ?, revision = ?
			WHERE id = ?
		`, saved.Body, saved.Fingerprint, saved.Revision, saved.ID); err != nil {
			return SavedQuery{}, 0, fmt.Errorf("save %s: update: %w", name, err)
		}
		outcome = Updated
	}

	if err := tx.Commit(); err != nil {
		return SavedQuery{}, 0, fmt.Errorf("save %s: commit: %w", name, err)
	}

	slog.Debug("saved query", "name", name, "outcome", outcome, "revision", saved.Revision)
	return saved, outcome, nil
}

// Delete removes the saved query with the given name.
// Returns ErrNotFound if there is none.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_queries WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %s: %w", name, ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSavedQuery(row rowScanner) (SavedQuery, error) {
	var q SavedQuery
	err := row.Scan(&q.ID, &q.Name, &q.Body, &q.Fingerprint, &q.Revision)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedQuery{}, ErrNotFound
	}
	if err != nil {
		return SavedQuery{}, fmt.Errorf("scan saved query: %w", err)
	}
	return q, nil
}
