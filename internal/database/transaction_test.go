package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// txTestDB opens a file-backed sqlite database with a single watchlist
// table for exercising transaction semantics.
func txTestDB(t *testing.T) Database {
	t.Helper()
	ctx := context.Background()
	db, err := NewDatabase(ctx, "sqlite://"+filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Session(ctx).Exec(
		"CREATE TABLE watchlist (id INTEGER PRIMARY KEY, company TEXT)",
	).Error)
	return db
}

func countWatchlist(t *testing.T, db Database) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Session(context.Background()).
		Raw("SELECT COUNT(*) FROM watchlist").Scan(&count).Error)
	return count
}

func TestTransactionCommitPersists(t *testing.T) {
	db := txTestDB(t)
	ctx := context.Background()

	txn, err := NewTransaction(ctx, db)
	require.NoError(t, err)
	require.NotNil(t, txn.Session())

	require.NoError(t, txn.Session().Exec(
		"INSERT INTO watchlist (company) VALUES (?)", "Acme").Error)
	require.NoError(t, txn.Commit())

	assert.Equal(t, int64(1), countWatchlist(t, db))

	// Commit and rollback after finish are no-ops.
	assert.NoError(t, txn.Commit())
	assert.NoError(t, txn.Rollback())
}

func TestTransactionRollbackDiscards(t *testing.T) {
	db := txTestDB(t)
	ctx := context.Background()

	txn, err := NewTransaction(ctx, db)
	require.NoError(t, err)

	require.NoError(t, txn.Session().Exec(
		"INSERT INTO watchlist (company) VALUES (?)", "Acme").Error)
	require.NoError(t, txn.Rollback())

	assert.Equal(t, int64(0), countWatchlist(t, db))
	assert.NoError(t, txn.Rollback(), "second rollback is a no-op")
}

func TestWithTransactionCommitsOnNil(t *testing.T) {
	db := txTestDB(t)

	err := WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO watchlist (company) VALUES (?)", "Acme").Error
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countWatchlist(t, db))
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db := txTestDB(t)
	boom := errors.New("boom")

	err := WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO watchlist (company) VALUES (?)", "Acme").Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(0), countWatchlist(t, db))
}

func TestWithTransactionResult(t *testing.T) {
	db := txTestDB(t)

	got, err := WithTransactionResult(context.Background(), db, func(tx *gorm.DB) (int, error) {
		var val int
		if err := tx.Raw("SELECT 42").Scan(&val).Error; err != nil {
			return 0, err
		}
		return val, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	boom := errors.New("boom")
	_, err = WithTransactionResult(context.Background(), db, func(tx *gorm.DB) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestInTransactionJoinsViaContext(t *testing.T) {
	db := txTestDB(t)
	boom := errors.New("boom")

	// Store calls made with the derived context share one transaction,
	// so a late error unwinds earlier writes.
	err := InTransaction(context.Background(), db, func(ctx context.Context) error {
		if err := db.Session(ctx).Exec(
			"INSERT INTO watchlist (company) VALUES (?)", "Acme").Error; err != nil {
			return err
		}
		// Nested call reuses the open transaction instead of deadlocking.
		return InTransaction(ctx, db, func(ctx context.Context) error {
			if err := db.Session(ctx).Exec(
				"INSERT INTO watchlist (company) VALUES (?)", "Initech").Error; err != nil {
				return err
			}
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(0), countWatchlist(t, db))

	require.NoError(t, InTransaction(context.Background(), db, func(ctx context.Context) error {
		return db.Session(ctx).Exec(
			"INSERT INTO watchlist (company) VALUES (?)", "Acme").Error
	}))
	assert.Equal(t, int64(1), countWatchlist(t, db))
}
