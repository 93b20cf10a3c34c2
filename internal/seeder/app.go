// Package seeder wires configuration, storage and seeders into a single
// run: open the database, migrate (optionally from scratch), then seed.
package seeder

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userseed/internal/common"
	"github.com/dmitrijs2005/userseed/internal/dbx"
	"github.com/dmitrijs2005/userseed/internal/logging"
	"github.com/dmitrijs2005/userseed/internal/seeder/config"
	"github.com/dmitrijs2005/userseed/internal/seeder/factory"
	"github.com/dmitrijs2005/userseed/internal/seeder/hashing"
	"github.com/dmitrijs2005/userseed/internal/seeder/repositories/repomanager"
	"github.com/dmitrijs2005/userseed/internal/seeder/seeds"
	"github.com/dmitrijs2005/userseed/internal/seeder/tokens"
	"golang.org/x/term"
)

// Test seams.
var (
	logOutput    io.Writer = os.Stdout
	promptOutput io.Writer = os.Stderr
	readPassword           = term.ReadPassword
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	databaseSeeder *seeds.DatabaseSeeder
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, logOutput)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	runID, err := common.MakeRandHexString(4)
	if err != nil {
		return nil, err
	}
	logger = logger.With("run_id", runID)

	if c.AskPassword {
		if err := askPassword(c); err != nil {
			return nil, err
		}
	}

	rm, err := repomanager.New(c.Driver)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	db, err := dbx.Open(ctx, c.Driver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher, err := hashing.New(c.Hasher, c.HashCost)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	tokenGen := tokens.NewRandomGenerator()
	f := factory.NewUserFactory(hasher, tokenGen, seeds.SystemClock,
		factory.WithSeed(c.FakerSeed),
		factory.WithTokenLength(c.APITokenLength),
	)

	admin := seeds.AdminAccount{
		Name:        c.AdminName,
		Email:       c.AdminEmail,
		Password:    c.AdminPassword,
		TokenLength: c.APITokenLength,
	}

	us := seeds.NewUsersSeeder(db, rm, hasher, tokenGen, seeds.SystemClock, f, admin, c.FactoryCount)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		repomanager:    rm,
		databaseSeeder: seeds.NewDatabaseSeeder(logger, us),
	}, nil
}

func askPassword(c *config.Config) error {
	fmt.Fprintf(promptOutput, "Password for %s: ", c.AdminEmail)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(promptOutput)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(pw)

	if len(pw) == 0 {
		return fmt.Errorf("read password: empty password")
	}
	c.AdminPassword = string(pw)
	return nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Warn(ctx, "Interrupted, cancelling run", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) migrate(ctx context.Context) error {
	if app.config.Fresh {
		app.logger.Warn(ctx, "Dropping all tables", "driver", string(app.config.Driver))
		if err := app.repomanager.ResetMigrations(ctx, app.db); err != nil {
			return err
		}
	}
	return app.repomanager.RunMigrations(ctx, app.db)
}

// Run migrates the schema and executes the selected seeders within the
// configured timeout.
func (app *App) Run(ctx context.Context) error {
	if app.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, app.config.Timeout)
		defer cancel()
	}
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(ctx, cancelFunc)

	app.logger.Info(ctx, "Starting seeder...", "driver", string(app.config.Driver), "fresh", app.config.Fresh)

	if err := app.migrate(ctx); err != nil {
		app.logger.Error(ctx, "Migration failed", "error", err)
		return err
	}

	results, err := app.databaseSeeder.Run(ctx, seeds.ParseClass(app.config.Class))
	if err != nil {
		app.logger.Error(ctx, "Seeding failed", "error", err)
		return err
	}

	total := 0
	for _, r := range results {
		total += r.Created
		app.logger.Debug(ctx, "Seeder result", "seeder", r.Seeder, "ids", r.IDs)
	}
	app.logger.Info(ctx, "Database seeding completed", "seeders", len(results), "created", total)

	return nil
}

func (app *App) Close() error {
	return app.db.Close()
}
