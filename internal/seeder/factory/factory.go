// Package factory builds User records with plausible, randomized attributes
// for seeding and tests. A UserFactory is an immutable builder: Count and
// State return a new builder and leave the receiver untouched.
//
//	users, err := f.Count(10).Create(ctx, repo)
//	admins, err := f.Count(2).State(factory.Attributes{"name": "admin"}).Make(ctx)
package factory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dmitrijs2005/userseed/internal/seeder/hashing"
	"github.com/dmitrijs2005/userseed/internal/seeder/models"
	"github.com/dmitrijs2005/userseed/internal/seeder/repositories/users"
	"github.com/dmitrijs2005/userseed/internal/seeder/tokens"
)

const (
	DefaultPassword       = "password"
	DefaultTokenLength    = 80
	RememberTokenLength   = 10
	maxUniqueEmailRetries = 100
)

var (
	ErrInvalidCount     = errors.New("factory count must not be negative")
	ErrInvalidAttribute = errors.New("invalid factory attribute")
	ErrUniqueExhausted  = errors.New("unable to generate a unique email")
)

// Clock returns the current time.
type Clock func() time.Time

// Attributes overrides generated values. Keys are column names.
type Attributes map[string]any

// Option configures a UserFactory.
type Option func(*generator)

// WithSeed makes generated names and emails reproducible.
func WithSeed(seed uint64) Option {
	return func(g *generator) { g.faker = gofakeit.New(seed) }
}

// WithTokenLength sets the API token length.
func WithTokenLength(n int) Option {
	return func(g *generator) { g.tokenLength = n }
}

// WithDefaultPassword sets the plaintext every generated user gets.
func WithDefaultPassword(p string) Option {
	return func(g *generator) { g.password = p }
}

// generator is the state shared by every builder derived from one factory.
type generator struct {
	hasher      hashing.Hasher
	tokens      tokens.Generator
	clock       Clock
	faker       *gofakeit.Faker
	tokenLength int
	password    string

	mu           sync.Mutex
	passwordHash string
	issued       map[string]struct{}
}

// UserFactory builds users. The zero value is not usable; call NewUserFactory.
type UserFactory struct {
	g      *generator
	count  int
	states []Attributes
	err    error
}

func NewUserFactory(hasher hashing.Hasher, tokenGen tokens.Generator, clock Clock, opts ...Option) *UserFactory {
	g := &generator{
		hasher:      hasher,
		tokens:      tokenGen,
		clock:       clock,
		faker:       gofakeit.New(0),
		tokenLength: DefaultTokenLength,
		password:    DefaultPassword,
		issued:      make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return &UserFactory{g: g, count: 1}
}

// Count sets how many users Make and Create produce.
func (f *UserFactory) Count(n int) *UserFactory {
	next := *f
	next.count = n
	if n < 0 {
		next.err = fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	return &next
}

// State adds attribute overrides, applied in order after the definition.
func (f *UserFactory) State(attrs Attributes) *UserFactory {
	next := *f
	next.states = append(append([]Attributes(nil), f.states...), attrs)
	return &next
}

// Make builds the users without persisting them.
func (f *UserFactory) Make(ctx context.Context) ([]*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}

	out := make([]*models.User, 0, f.count)
	for i := 0; i < f.count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		u, err := f.g.definition()
		if err != nil {
			return nil, err
		}
		for _, attrs := range f.states {
			if err := f.g.apply(u, attrs); err != nil {
				return nil, err
			}
		}
		out = append(out, u)
	}
	return out, nil
}

// Create builds the users and inserts each of them through repo. The first
// failing insert stops the run; users inserted before it are not removed.
func (f *UserFactory) Create(ctx context.Context, repo users.Repository) ([]*models.User, error) {
	built, err := f.Make(ctx)
	if err != nil {
		return nil, err
	}

	created := make([]*models.User, 0, len(built))
	for _, u := range built {
		stored, err := repo.Create(ctx, u)
		if err != nil {
			return created, fmt.Errorf("create factory user %s: %w", u.Email, err)
		}
		created = append(created, stored)
	}
	return created, nil
}

// definition returns one user with every attribute generated.
func (g *generator) definition() (*models.User, error) {
	hash, err := g.defaultPasswordHash()
	if err != nil {
		return nil, err
	}

	email, err := g.uniqueEmail()
	if err != nil {
		return nil, err
	}

	apiToken, err := g.tokens.Generate(g.tokenLength)
	if err != nil {
		return nil, fmt.Errorf("generate api token: %w", err)
	}
	remember, err := g.tokens.Generate(RememberTokenLength)
	if err != nil {
		return nil, fmt.Errorf("generate remember token: %w", err)
	}

	g.mu.Lock()
	name := g.faker.Name()
	g.mu.Unlock()

	verifiedAt := g.clock()

	return &models.User{
		Name:            name,
		Email:           email,
		EmailVerifiedAt: &verifiedAt,
		Password:        hash,
		APIToken:        &apiToken,
		RememberToken:   &remember,
	}, nil
}

// defaultPasswordHash hashes the default password once per factory.
func (g *generator) defaultPasswordHash() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.passwordHash != "" {
		return g.passwordHash, nil
	}
	hash, err := g.hasher.Hash(g.password)
	if err != nil {
		return "", fmt.Errorf("hash default password: %w", err)
	}
	g.passwordHash = hash
	return hash, nil
}

func (g *generator) uniqueEmail() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < maxUniqueEmailRetries; i++ {
		email := g.faker.Email()
		if _, seen := g.issued[email]; seen {
			continue
		}
		g.issued[email] = struct{}{}
		return email, nil
	}
	return "", ErrUniqueExhausted
}
