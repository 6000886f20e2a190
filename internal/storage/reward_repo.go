package storage

import (
	"context"
	"fmt"
)

type RewardRepo struct {
	db DBTX
}

func NewRewardRepo(db DBTX) *RewardRepo {
	return &RewardRepo{db: db}
}

func (r *RewardRepo) Insert(ctx context.Context, e RewardEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reward_log (awarded_at, source, reason, category, amount, gold_delta, level_after)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.AwardedAt.UTC(), e.Source, e.Reason, e.Category, e.Amount, e.GoldDelta, e.LevelAfter)
	if err != nil {
		return 0, fmt.Errorf("reward insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reward last insert id: %w", err)
	}
	return id, nil
}

// ListRecent returns up to limit entries, newest first.
func (r *RewardRepo) ListRecent(ctx context.Context, limit int) ([]RewardEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, awarded_at, source, COALESCE(reason, ''), COALESCE(category, ''), amount, gold_delta, level_after
		FROM reward_log
		ORDER BY awarded_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("reward list: %w", err)
	}
	defer rows.Close()

	var out []RewardEntry
	for rows.Next() {
		var e RewardEntry
		if err := rows.Scan(&e.ID, &e.AwardedAt, &e.Source, &e.Reason, &e.Category, &e.Amount, &e.GoldDelta, &e.LevelAfter); err != nil {
			return nil, fmt.Errorf("reward scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reward rows: %w", err)
	}
	return out, nil
}

// Clear empties the log; used by a full reset.
func (r *RewardRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reward_log`); err != nil {
		return fmt.Errorf("reward clear: %w", err)
	}
	return nil
}
