package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userseed/internal/dbx"
	"github.com/dmitrijs2005/userseed/internal/seeder/migrations"
	"github.com/dmitrijs2005/userseed/internal/seeder/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct {
	migrator migrator
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{migrator: migrator{dialect: "postgres", dir: migrations.PostgresDir}}
}

func (m *PostgresRepositoryManager) Driver() dbx.Driver {
	return dbx.DriverPostgres
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return m.migrator.up(ctx, db)
}

func (m *PostgresRepositoryManager) ResetMigrations(ctx context.Context, db *sql.DB) error {
	return m.migrator.reset(ctx, db)
}
