package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSeedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE seeded (email TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	return db
}

func seededRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM seeded`).Scan(&n))
	return n
}

func insertSeeded(ctx context.Context, tx DBTX, emails ...string) error {
	for _, e := range emails {
		if _, err := tx.ExecContext(ctx, `INSERT INTO seeded (email) VALUES (?)`, e); err != nil {
			return err
		}
	}
	return nil
}

func TestWithTx_Commit(t *testing.T) {
	db := openSeedDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return insertSeeded(ctx, tx, "a@example.com", "b@example.com")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seededRows(t, db))
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := openSeedDB(t)

	// the duplicate fails after the first insert succeeded
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return insertSeeded(ctx, tx, "a@example.com", "a@example.com")
	})
	require.Error(t, err)
	assert.Equal(t, 0, seededRows(t, db))
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := openSeedDB(t)

	assert.PanicsWithValue(t, "factory exploded", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insertSeeded(ctx, tx, "a@example.com"))
			panic("factory exploded")
		})
	})
	assert.Equal(t, 0, seededRows(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := openSeedDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return nil })
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDriverName(t *testing.T) {
	tests := []struct {
		driver  Driver
		want    string
		wantErr bool
	}{
		{driver: DriverPostgres, want: "pgx"},
		{driver: DriverSQLite, want: "sqlite"},
		{driver: Driver("mysql"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.driver), func(t *testing.T) {
			got, err := tt.driver.SQLDriverName()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestOpen_SQLiteInMemory(t *testing.T) {
	db, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var one int
	require.NoError(t, db.QueryRow(`SELECT 1`).Scan(&one))
	require.Equal(t, 1, one)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Driver("oracle"), "whatever")
	require.Error(t, err)
}
