// Package seeds contains the seeders run by cmd/seeder and the registry
// that runs them in order.
package seeds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/userseed/internal/common"
	"github.com/dmitrijs2005/userseed/internal/logging"
)

// Seeder populates one part of the database.
type Seeder interface {
	Name() string
	Run(ctx context.Context) (*Result, error)
}

// Result reports what a seeder wrote.
type Result struct {
	Seeder   string
	Created  int
	IDs      []string
	Duration time.Duration
}

// SystemClock is the production clock: UTC, truncated to the microsecond
// precision both supported databases store.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// DatabaseSeeder runs registered seeders in registration order.
type DatabaseSeeder struct {
	logger  logging.Logger
	seeders []Seeder
}

func NewDatabaseSeeder(logger logging.Logger, seeders ...Seeder) *DatabaseSeeder {
	return &DatabaseSeeder{logger: logger.With("module", "database_seeder"), seeders: seeders}
}

// ParseClass splits a comma-separated seeder list, dropping blanks.
func ParseClass(class string) []string {
	var names []string
	for _, n := range strings.Split(class, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// Run executes every seeder, or only those named in only, and stops at the
// first error. Unknown names fail before anything is written.
func (d *DatabaseSeeder) Run(ctx context.Context, only []string) ([]*Result, error) {
	selected, err := d.selectSeeders(only)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(selected))
	for _, s := range selected {
		d.logger.Info(ctx, "Seeding", "seeder", s.Name())

		res, err := s.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("seeder %s: %w", s.Name(), err)
		}

		d.logger.Info(ctx, "Seeded", "seeder", s.Name(), "created", res.Created, "duration", res.Duration.String())
		results = append(results, res)
	}
	return results, nil
}

func (d *DatabaseSeeder) selectSeeders(only []string) ([]Seeder, error) {
	if len(only) == 0 {
		return d.seeders, nil
	}

	byName := make(map[string]Seeder, len(d.seeders))
	for _, s := range d.seeders {
		byName[s.Name()] = s
	}

	selected := make([]Seeder, 0, len(only))
	for _, name := range only {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrorSeederNotFound, name)
		}
		selected = append(selected, s)
	}
	return selected, nil
}
