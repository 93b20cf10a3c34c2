// Package users declares the user repository contract and its PostgreSQL
// and SQLite implementations.
package users

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/userseed/internal/seeder/models"
	"github.com/google/uuid"
)

// Repository persists users. Implementations map a unique-constraint
// violation to common.ErrorAlreadyExists and a missing row to
// common.ErrorNotFound.
type Repository interface {
	// Create inserts user, filling ID and timestamps when they are empty,
	// and returns the stored value.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
	// List returns all users ordered by creation time, then email.
	List(ctx context.Context) ([]*models.User, error)
}

// now is a seam for tests.
var now = func() time.Time { return time.Now().UTC() }

// prepare fills the fields the caller is allowed to leave empty.
func prepare(user *models.User) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	t := now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = t
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

const selectColumns = `id, name, email, email_verified_at, password, api_token, remember_token, created_at, updated_at`

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u             models.User
		verifiedAt    sql.NullTime
		apiToken      sql.NullString
		rememberToken sql.NullString
	)

	err := row.Scan(&u.ID, &u.Name, &u.Email, &verifiedAt, &u.Password,
		&apiToken, &rememberToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if verifiedAt.Valid {
		t := verifiedAt.Time
		u.EmailVerifiedAt = &t
	}
	if apiToken.Valid {
		s := apiToken.String
		u.APIToken = &s
	}
	if rememberToken.Valid {
		s := rememberToken.String
		u.RememberToken = &s
	}

	return &u, nil
}

func scanUsers(rows *sql.Rows) ([]*models.User, error) {
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
