package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userseed/internal/dbx"
	"github.com/dmitrijs2005/userseed/internal/seeder/migrations"
	"github.com/dmitrijs2005/userseed/internal/seeder/repositories/users"
)

// SQLiteRepositoryManager vends SQLite-backed repositories. It is used for
// local development databases and for end-to-end tests.
type SQLiteRepositoryManager struct {
	migrator migrator
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{migrator: migrator{dialect: "sqlite3", dir: migrations.SQLiteDir}}
}

func (m *SQLiteRepositoryManager) Driver() dbx.Driver {
	return dbx.DriverSQLite
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return m.migrator.up(ctx, db)
}

func (m *SQLiteRepositoryManager) ResetMigrations(ctx context.Context, db *sql.DB) error {
	return m.migrator.reset(ctx, db)
}
