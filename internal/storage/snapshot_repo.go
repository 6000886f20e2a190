package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MainSnapshotKey is the key of the single player's snapshot.
const MainSnapshotKey = "main"

type SnapshotRepo struct {
	db DBTX
}

func NewSnapshotRepo(db DBTX) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Get returns nil, nil when no snapshot has been written under key yet.
func (r *SnapshotRepo) Get(ctx context.Context, key string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, body, updated_at FROM snapshots WHERE key = ?`, key)

	var (
		s    Snapshot
		body string
	)
	if err := row.Scan(&s.Key, &body, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot get: %w", err)
	}
	s.Body = []byte(body)
	return &s, nil
}

func (r *SnapshotRepo) Put(ctx context.Context, key string, body []byte, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, key, string(body), at.UTC())
	if err != nil {
		return fmt.Errorf("snapshot put: %w", err)
	}
	return nil
}

func (r *SnapshotRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("snapshot delete: %w", err)
	}
	return nil
}
