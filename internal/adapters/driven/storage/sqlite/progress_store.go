package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
)

// progressStore implements driven.ProgressStore.
type progressStore struct {
	store *Store
}

var _ driven.ProgressStore = (*progressStore)(nil)

// Get returns the tokens stored under key in ascending token order.
func (s *progressStore) Get(ctx context.Context, key string) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT token FROM progress WHERE file_key = ? ORDER BY token`, key)
	if err != nil {
		return nil, fmt.Errorf("querying progress: %w", err)
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scanning progress: %w", err)
		}
		tokens = append(tokens, token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress: %w", err)
	}

	return tokens, nil
}

// Put replaces the tokens of key atomically.
func (s *progressStore) Put(ctx context.Context, key string, tokens []string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM progress WHERE file_key = ?`, key); err != nil {
		return fmt.Errorf("clearing progress: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO progress (file_key, token) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, token := range tokens {
		if _, err := stmt.ExecContext(ctx, key, token); err != nil {
			return fmt.Errorf("inserting token %s: %w", token, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing progress: %w", err)
	}
	return nil
}

// Remove deletes every token of key.
func (s *progressStore) Remove(ctx context.Context, key string) error {
	if _, err := s.store.db.ExecContext(ctx, `DELETE FROM progress WHERE file_key = ?`, key); err != nil {
		return fmt.Errorf("deleting progress: %w", err)
	}
	return nil
}
