package factory

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/userseed/internal/seeder/models"
)

// apply writes attrs onto u. "password" takes plaintext and stores its hash.
func (g *generator) apply(u *models.User, attrs Attributes) error {
	for key, value := range attrs {
		if err := g.applyOne(u, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) applyOne(u *models.User, key string, value any) error {
	switch key {
	case "name":
		s, ok := value.(string)
		if !ok {
			return invalid(key, value)
		}
		u.Name = s
	case "email":
		s, ok := value.(string)
		if !ok {
			return invalid(key, value)
		}
		u.Email = s
	case "password":
		s, ok := value.(string)
		if !ok {
			return invalid(key, value)
		}
		hash, err := g.hasher.Hash(s)
		if err != nil {
			return fmt.Errorf("hash password attribute: %w", err)
		}
		u.Password = hash
	case "api_token":
		p, ok := optionalString(value)
		if !ok {
			return invalid(key, value)
		}
		u.APIToken = p
	case "remember_token":
		p, ok := optionalString(value)
		if !ok {
			return invalid(key, value)
		}
		u.RememberToken = p
	case "email_verified_at":
		p, ok := optionalTime(value)
		if !ok {
			return invalid(key, value)
		}
		u.EmailVerifiedAt = p
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidAttribute, key)
	}
	return nil
}

func invalid(key string, value any) error {
	return fmt.Errorf("%w: %s has type %T", ErrInvalidAttribute, key, value)
}

func optionalString(v any) (*string, bool) {
	switch s := v.(type) {
	case nil:
		return nil, true
	case string:
		return &s, true
	case *string:
		if s == nil {
			return nil, true
		}
		c := *s
		return &c, true
	default:
		return nil, false
	}
}

func optionalTime(v any) (*time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case time.Time:
		return &t, true
	case *time.Time:
		if t == nil {
			return nil, true
		}
		c := *t
		return &c, true
	default:
		return nil, false
	}
}
