package hashing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		cost      int
		wantType  any
		wantErr   error
	}{
		{name: "bcrypt", algorithm: "bcrypt", cost: bcrypt.MinCost, wantType: &BcryptHasher{}},
		{name: "empty means bcrypt", algorithm: "", cost: bcrypt.MinCost, wantType: &BcryptHasher{}},
		{name: "argon2id", algorithm: "Argon2id", wantType: &Argon2idHasher{}},
		{name: "unknown", algorithm: "md5", wantErr: ErrUnknownAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := New(tt.algorithm, tt.cost)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, h)
		})
	}
}

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestHashers_RoundTrip(t *testing.T) {
	bc, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hashers := map[string]Hasher{
		"bcrypt":   bc,
		"argon2id": NewArgon2idHasher(),
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("test_pass")
			require.NoError(t, err)

			assert.NotEqual(t, "test_pass", hash)
			assert.NotContains(t, hash, "test_pass")
			assert.NoError(t, h.Compare(hash, "test_pass"))
			assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrMismatch)

			again, err := h.Hash("test_pass")
			require.NoError(t, err)
			assert.NotEqual(t, hash, again, "hashes must be salted")
		})
	}
}

func TestBcryptHasher_Format(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
}

func TestBcryptHasher_CompareMalformed(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	assert.ErrorIs(t, h.Compare("not-a-hash", "x"), ErrMalformedHash)
}

func TestArgon2idHasher_Format(t *testing.T) {
	hash, err := NewArgon2idHasher().Hash("password")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"), hash)
	assert.Len(t, strings.Split(hash, "$"), 6)
}

func TestArgon2idHasher_CompareMalformed(t *testing.T) {
	h := NewArgon2idHasher()

	for _, bad := range []string{
		"",
		"$2a$10$abc",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$",
	} {
		assert.ErrorIs(t, h.Compare(bad, "password"), ErrMalformedHash, bad)
	}
}
