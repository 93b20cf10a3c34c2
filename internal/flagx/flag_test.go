package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"seeder"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestFilterArgs(t *testing.T) {
	configOnly := []string{"-c", "-config"}

	tests := map[string]struct {
		args    []string
		allowed []string
		want    []string
	}{
		"separate value": {
			args:    []string{"-c", "seed.json", "-count", "25"},
			allowed: configOnly,
			want:    []string{"-c", "seed.json"},
		},
		"equals form": {
			args:    []string{"-fresh", "-config=seed.json"},
			allowed: configOnly,
			want:    []string{"-config=seed.json"},
		},
		"equals value starting with dash": {
			args:    []string{"-config=-odd.json"},
			allowed: configOnly,
			want:    []string{"-config=-odd.json"},
		},
		"next flag is not taken as value": {
			args:    []string{"-c", "-fresh"},
			allowed: configOnly,
			want:    []string{"-c"},
		},
		"dangling flag": {
			args:    []string{"-count", "3", "-c"},
			allowed: configOnly,
			want:    []string{"-c"},
		},
		"nothing allowed present": {
			args:    []string{"-driver", "sqlite", "-d", "seed.db"},
			allowed: configOnly,
			want:    []string{},
		},
		"order and repeats kept": {
			args:    []string{"-d", "a.db", "-class", "users", "-d", "b.db"},
			allowed: []string{"-d", "-class"},
			want:    []string{"-d", "a.db", "-class", "users", "-d", "b.db"},
		},
		"empty": {
			args:    nil,
			allowed: configOnly,
			want:    []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-c", "seed.json"}, "seed.json"},
		{[]string{"-config=/etc/seeder.json", "-fresh"}, "/etc/seeder.json"},
		{[]string{"-c", "first.json", "-config", "second.json"}, "second.json"},
		{[]string{"-driver", "sqlite"}, ""},
	}
	for _, c := range cases {
		withArgs(t, c.args...)
		assert.Equal(t, c.want, JsonConfigFlags(), "args %v", c.args)
	}
}

func TestEnvFileFlags(t *testing.T) {
	withArgs(t, "-d", "seed.db")
	assert.Equal(t, ".env", EnvFileFlags())

	withArgs(t, "-env", "/etc/seeder/.env", "-count", "5")
	assert.Equal(t, "/etc/seeder/.env", EnvFileFlags())

	withArgs(t, "-env=staging.env")
	assert.Equal(t, "staging.env", EnvFileFlags())
}
