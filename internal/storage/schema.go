package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		// Audit trail of every xp award, including penalties.
		`CREATE TABLE IF NOT EXISTS reward_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			awarded_at DATETIME NOT NULL,
			source TEXT NOT NULL,
			reason TEXT,
			category TEXT,
			amount INTEGER NOT NULL,
			gold_delta INTEGER NOT NULL,
			level_after INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reward_log_awarded_at ON reward_log(awarded_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
