package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/userseed/internal/dbx"
	"github.com/dmitrijs2005/userseed/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv loads the dotenv file selected by -env (".env" by default) into
// the process environment and then copies every recognised variable into
// config. A missing dotenv file is not an error; variables already present
// in the environment win over the file.
//
// Recognised variables:
//
//	DB_DRIVER, DATABASE_DSN, SEED_FRESH, SEED_CLASS, SEED_FACTORY_COUNT,
//	SEED_ADMIN_NAME, SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD,
//	SEED_API_TOKEN_LENGTH, HASH_DRIVER, BCRYPT_ROUNDS, LOG_FORMAT,
//	LOG_LEVEL, SEED_TIMEOUT, FAKER_SEED
//
// Malformed numeric, boolean or duration values panic.
func parseEnv(config *Config) {
	if err := godotenv.Load(flagx.EnvFileFlags()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := lookup("DB_DRIVER"); ok {
		config.Driver = dbx.Driver(v)
	}
	if v, ok := lookup("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := lookup("SEED_FRESH"); ok {
		config.Fresh = mustBool(v)
	}
	if v, ok := lookup("SEED_CLASS"); ok {
		config.Class = v
	}
	if v, ok := lookup("SEED_FACTORY_COUNT"); ok {
		config.FactoryCount = mustInt(v)
	}
	if v, ok := lookup("SEED_ADMIN_NAME"); ok {
		config.AdminName = v
	}
	if v, ok := lookup("SEED_ADMIN_EMAIL"); ok {
		config.AdminEmail = v
	}
	if v, ok := lookup("SEED_ADMIN_PASSWORD"); ok {
		config.AdminPassword = v
	}
	if v, ok := lookup("SEED_API_TOKEN_LENGTH"); ok {
		config.APITokenLength = mustInt(v)
	}
	if v, ok := lookup("HASH_DRIVER"); ok {
		config.Hasher = v
	}
	if v, ok := lookup("BCRYPT_ROUNDS"); ok {
		config.HashCost = mustInt(v)
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		config.LogFormat = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
	if v, ok := lookup("SEED_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.Timeout = d
	}
	if v, ok := lookup("FAKER_SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			panic(err)
		}
		config.FakerSeed = n
	}
}

// lookup returns a trimmed, non-empty environment value.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func mustInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	return n
}

func mustBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(err)
	}
	return b
}
