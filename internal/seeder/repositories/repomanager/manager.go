// Package repomanager vends dialect-specific repositories and owns the
// schema lifecycle (goose migrations) for the selected storage driver.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userseed/internal/dbx"
	"github.com/dmitrijs2005/userseed/internal/seeder/migrations"
	"github.com/dmitrijs2005/userseed/internal/seeder/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	Driver() dbx.Driver
	RunMigrations(ctx context.Context, db *sql.DB) error
	// ResetMigrations rolls every migration back, leaving an empty schema.
	ResetMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// gooseUpContext and gooseResetContext are seams for testing.
var (
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
	gooseResetContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.ResetContext(ctx, db, dir, opts...)
	}
)

// migrator holds the goose settings shared by every dialect.
type migrator struct {
	dialect string
	dir     string
}

func (m migrator) setup() error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.SetDialect(m.dialect)
}

func (m migrator) up(ctx context.Context, db *sql.DB) error {
	if err := m.setup(); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, m.dir)
}

func (m migrator) reset(ctx context.Context, db *sql.DB) error {
	if err := m.setup(); err != nil {
		return err
	}
	return gooseResetContext(ctx, db, m.dir)
}

// New returns the RepositoryManager for driver.
func New(driver dbx.Driver) (RepositoryManager, error) {
	switch driver {
	case dbx.DriverPostgres:
		return NewPostgresRepositoryManager(), nil
	case dbx.DriverSQLite:
		return NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", string(driver))
	}
}
