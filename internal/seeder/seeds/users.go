package seeds

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userseed/internal/dbx"
	"github.com/dmitrijs2005/userseed/internal/seeder/factory"
	"github.com/dmitrijs2005/userseed/internal/seeder/hashing"
	"github.com/dmitrijs2005/userseed/internal/seeder/models"
	"github.com/dmitrijs2005/userseed/internal/seeder/repositories/repomanager"
	"github.com/dmitrijs2005/userseed/internal/seeder/tokens"
)

// UsersSeederName is the name used to select UsersSeeder with -class.
const UsersSeederName = "users"

// AdminAccount describes the fixed administrator UsersSeeder creates.
type AdminAccount struct {
	Name        string
	Email       string
	Password    string
	TokenLength int
}

func DefaultAdminAccount() AdminAccount {
	return AdminAccount{
		Name:        "super-king",
		Email:       "king@example.com",
		Password:    "test_pass",
		TokenLength: 80,
	}
}

// UsersSeeder creates the administrator account and then FactoryCount
// generated users. It does not check for existing rows: running it twice
// against the same table fails on the unique email of the administrator.
type UsersSeeder struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	hasher       hashing.Hasher
	tokens       tokens.Generator
	clock        factory.Clock
	factory      *factory.UserFactory
	admin        AdminAccount
	factoryCount int
}

func NewUsersSeeder(db *sql.DB, rm repomanager.RepositoryManager, hasher hashing.Hasher, tokenGen tokens.Generator,
	clock factory.Clock, f *factory.UserFactory, admin AdminAccount, factoryCount int) *UsersSeeder {
	return &UsersSeeder{
		db:           db,
		repomanager:  rm,
		hasher:       hasher,
		tokens:       tokenGen,
		clock:        clock,
		factory:      f,
		admin:        admin,
		factoryCount: factoryCount,
	}
}

func (s *UsersSeeder) Name() string { return UsersSeederName }

// Run inserts the administrator, then the generated users in a single
// transaction. Errors are returned as-is, wrapped with the failing step.
func (s *UsersSeeder) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	admin, err := s.createAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("create administrator %s: %w", s.admin.Email, err)
	}

	var generated []*models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		generated, err = s.factory.Count(s.factoryCount).Create(ctx, s.repomanager.Users(tx))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create %d factory users: %w", s.factoryCount, err)
	}

	ids := make([]string, 0, len(generated)+1)
	ids = append(ids, admin.ID)
	for _, u := range generated {
		ids = append(ids, u.ID)
	}

	return &Result{
		Seeder:   s.Name(),
		Created:  len(ids),
		IDs:      ids,
		Duration: time.Since(start),
	}, nil
}

func (s *UsersSeeder) createAdmin(ctx context.Context) (*models.User, error) {
	hash, err := s.hasher.Hash(s.admin.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(s.admin.TokenLength)
	if err != nil {
		return nil, fmt.Errorf("generate api token: %w", err)
	}

	verifiedAt := s.clock()
	user := &models.User{
		Name:            s.admin.Name,
		Email:           s.admin.Email,
		Password:        hash,
		APIToken:        &token,
		EmailVerifiedAt: &verifiedAt,
	}

	return s.repomanager.Users(s.db).Create(ctx, user)
}
