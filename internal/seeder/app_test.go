package seeder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/userseed/internal/common"
	"github.com/dmitrijs2005/userseed/internal/dbx"
	"github.com/dmitrijs2005/userseed/internal/seeder/config"
	"github.com/dmitrijs2005/userseed/internal/seeder/hashing"
	"github.com/dmitrijs2005/userseed/internal/seeder/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.Driver = dbx.DriverSQLite
	c.DatabaseDSN = filepath.Join(t.TempDir(), "seed.db")
	c.FactoryCount = 3
	c.HashCost = bcrypt.MinCost
	c.Timeout = 30 * time.Second
	c.FakerSeed = 42
	return c
}

func quietLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := logOutput
	logOutput = &buf
	t.Cleanup(func() { logOutput = old })
	return &buf
}

func runApp(t *testing.T, c *config.Config) error {
	t.Helper()
	ctx := context.Background()
	app, err := NewApp(ctx, c)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()
	return app.Run(ctx)
}

func countUsers(t *testing.T, c *config.Config) int {
	t.Helper()
	ctx := context.Background()
	db, err := dbx.Open(ctx, c.Driver, c.DatabaseDSN)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	n, err := repomanager.NewSQLiteRepositoryManager().Users(db).Count(ctx)
	require.NoError(t, err)
	return n
}

func TestApp_Run(t *testing.T) {
	logs := quietLogs(t)
	c := testConfig(t)

	require.NoError(t, runApp(t, c))
	assert.Equal(t, 4, countUsers(t, c))
	assert.Contains(t, logs.String(), "Database seeding completed")
	assert.Contains(t, logs.String(), `"run_id":"`)
}

func TestApp_RerunWithoutFresh(t *testing.T) {
	quietLogs(t)
	c := testConfig(t)

	require.NoError(t, runApp(t, c))
	err := runApp(t, c)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Equal(t, 4, countUsers(t, c))
}

func TestApp_Fresh(t *testing.T) {
	quietLogs(t)
	c := testConfig(t)

	require.NoError(t, runApp(t, c))
	c.Fresh = true
	require.NoError(t, runApp(t, c))
	assert.Equal(t, 4, countUsers(t, c))
}

func TestApp_UnknownClass(t *testing.T) {
	quietLogs(t)
	c := testConfig(t)
	c.Class = "posts"

	err := runApp(t, c)
	assert.ErrorIs(t, err, common.ErrorSeederNotFound)
}

func TestApp_SelectedClass(t *testing.T) {
	quietLogs(t)
	c := testConfig(t)
	c.Class = "users"

	require.NoError(t, runApp(t, c))
	assert.Equal(t, 4, countUsers(t, c))
}

func TestNewApp_Errors(t *testing.T) {
	quietLogs(t)
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		target error
	}{
		{"unknown driver", func(c *config.Config) { c.Driver = "oracle" }, nil},
		{"unknown hasher", func(c *config.Config) { c.Hasher = "md5" }, hashing.ErrUnknownAlgorithm},
		{"unknown log format", func(c *config.Config) { c.LogFormat = "xml" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig(t)
			tt.mutate(c)
			_, err := NewApp(context.Background(), c)
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestNewApp_AskPassword(t *testing.T) {
	quietLogs(t)
	oldRead, oldPrompt := readPassword, promptOutput
	defer func() { readPassword, promptOutput = oldRead, oldPrompt }()

	var prompt bytes.Buffer
	promptOutput = &prompt
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	c := testConfig(t)
	c.AskPassword = true
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.Equal(t, "s3cret", c.AdminPassword)
	assert.Contains(t, prompt.String(), "king@example.com")
}

func TestNewApp_AskPasswordErrors(t *testing.T) {
	quietLogs(t)
	oldRead, oldPrompt := readPassword, promptOutput
	defer func() { readPassword, promptOutput = oldRead, oldPrompt }()
	promptOutput = io.Discard

	boom := errors.New("no tty")
	readPassword = func(int) ([]byte, error) { return nil, boom }
	c := testConfig(t)
	c.AskPassword = true
	_, err := NewApp(context.Background(), c)
	assert.ErrorIs(t, err, boom)

	readPassword = func(int) ([]byte, error) { return []byte{}, nil }
	_, err = NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestApp_RunCancelled(t *testing.T) {
	quietLogs(t)
	c := testConfig(t)
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, app.Run(ctx))
}
