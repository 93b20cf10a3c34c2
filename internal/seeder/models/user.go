// Package models holds the persisted records the seeder writes.
package models

import "time"

// User is a row of the users table.
//
// Password always holds a hash produced by a hashing.Hasher, never the
// plaintext. APIToken and RememberToken are nil when the account has none.
type User struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	Email           string     `db:"email"`
	EmailVerifiedAt *time.Time `db:"email_verified_at"`
	Password        string     `db:"password"`
	APIToken        *string    `db:"api_token"`
	RememberToken   *string    `db:"remember_token"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// IsVerified reports whether the email address has been confirmed.
func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}
