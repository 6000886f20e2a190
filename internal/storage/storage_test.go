package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSnapshotRepoPutGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepo(openTestDB(t))

	got, err := repo.Get(ctx, MainSnapshotKey)
	require.NoError(t, err)
	assert.Nil(t, got)

	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Put(ctx, MainSnapshotKey, []byte(`{"version":1}`), at))
	require.NoError(t, repo.Put(ctx, MainSnapshotKey, []byte(`{"version":2}`), at.Add(time.Hour)))

	got, err = repo.Get(ctx, MainSnapshotKey)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"version":2}`, string(got.Body))
	assert.True(t, got.UpdatedAt.Equal(at.Add(time.Hour)), "updated_at=%s", got.UpdatedAt)

	require.NoError(t, repo.Delete(ctx, MainSnapshotKey))
	got, err = repo.Get(ctx, MainSnapshotKey)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRewardRepoListRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewRewardRepo(openTestDB(t))

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := repo.Insert(ctx, RewardEntry{
			AwardedAt:  base.Add(time.Duration(i) * time.Minute),
			Source:     "manual",
			Reason:     "r",
			Amount:     10 * (i + 1),
			GoldDelta:  5 * (i + 1),
			LevelAfter: 1,
		})
		require.NoError(t, err)
	}

	got, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 50, got[0].Amount)
	assert.Equal(t, 30, got[2].Amount)
	assert.Empty(t, got[0].Category)

	require.NoError(t, repo.Clear(ctx))
	got, err = repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	boom := errors.New("boom")

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := NewSnapshotRepo(tx).Put(ctx, MainSnapshotKey, []byte("{}"), time.Now()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := NewSnapshotRepo(db).Get(ctx, MainSnapshotKey)
	require.NoError(t, err)
	assert.Nil(t, got)
}
