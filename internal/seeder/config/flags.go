package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/userseed/internal/dbx"
	"github.com/dmitrijs2005/userseed/internal/flagx"
)

var seederFlags = []string{
	"-driver", "-d", "-fresh", "-class", "-count",
	"-admin-name", "-admin-email", "-admin-password", "-ask-password",
	"-token-length", "-hasher", "-cost", "-log-format", "-log-level",
	"-timeout", "-faker-seed",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-driver string          storage driver: postgres | sqlite
//	-d string               database DSN
//	-fresh                  reset the schema before seeding
//	-class string           comma-separated seeders to run (default: all)
//	-count int              number of factory-generated users
//	-admin-name string      administrator display name
//	-admin-email string     administrator email
//	-admin-password string  administrator password (plaintext, hashed before storing)
//	-ask-password           read the administrator password from the terminal
//	-token-length int       API token length
//	-hasher string          bcrypt | argon2id
//	-cost int               bcrypt cost
//	-log-format string      json | console
//	-log-level string       debug | info | warn | error
//	-timeout duration       upper bound for the run, e.g. 30s
//	-faker-seed uint        seed for generated data (0 = random)
//
// os.Args is filtered through flagx.FilterArgs first, so -c/-config and
// -env, which are owned by other loaders, do not trip the parser. Boolean
// flags must be written as -fresh or -fresh=true.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], seederFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	driver := fs.String("driver", string(config.Driver), "storage driver (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.Fresh, "fresh", config.Fresh, "reset the schema before seeding")
	fs.StringVar(&config.Class, "class", config.Class, "comma-separated seeders to run")
	fs.IntVar(&config.FactoryCount, "count", config.FactoryCount, "number of factory users")
	fs.StringVar(&config.AdminName, "admin-name", config.AdminName, "administrator name")
	fs.StringVar(&config.AdminEmail, "admin-email", config.AdminEmail, "administrator email")
	fs.StringVar(&config.AdminPassword, "admin-password", config.AdminPassword, "administrator password")
	fs.BoolVar(&config.AskPassword, "ask-password", config.AskPassword, "read administrator password from the terminal")
	fs.IntVar(&config.APITokenLength, "token-length", config.APITokenLength, "API token length")
	fs.StringVar(&config.Hasher, "hasher", config.Hasher, "password hasher (bcrypt|argon2id)")
	fs.IntVar(&config.HashCost, "cost", config.HashCost, "bcrypt cost")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format (json|console)")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "run timeout")
	fs.Uint64Var(&config.FakerSeed, "faker-seed", config.FakerSeed, "faker seed (0 = random)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.Driver = dbx.Driver(*driver)
}
