package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userseed/internal/dbx"
	"github.com/dmitrijs2005/userseed/internal/flagx"
	"github.com/dmitrijs2005/userseed/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Timeout uses
// timex.Duration so both "30s" and integer nanoseconds are accepted.
type JsonConfig struct {
	Driver         string         `json:"driver"`
	DatabaseDSN    string         `json:"database_dsn"`
	Fresh          bool           `json:"fresh"`
	Class          string         `json:"class"`
	FactoryCount   int            `json:"factory_count"`
	AdminName      string         `json:"admin_name"`
	AdminEmail     string         `json:"admin_email"`
	AdminPassword  string         `json:"admin_password"`
	APITokenLength int            `json:"api_token_length"`
	Hasher         string         `json:"hasher"`
	HashCost       int            `json:"bcrypt_cost"`
	LogFormat      string         `json:"log_format"`
	LogLevel       string         `json:"log_level"`
	Timeout        timex.Duration `json:"timeout"`
	FakerSeed      uint64         `json:"faker_seed"`
}

// parseJson overlays values from the JSON file named by -c/-config.
//
// The file is decoded on top of the current values, so keys absent from
// the file keep whatever defaults or environment produced. Without -c the
// function does nothing; an unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{
		Driver:         string(config.Driver),
		DatabaseDSN:    config.DatabaseDSN,
		Fresh:          config.Fresh,
		Class:          config.Class,
		FactoryCount:   config.FactoryCount,
		AdminName:      config.AdminName,
		AdminEmail:     config.AdminEmail,
		AdminPassword:  config.AdminPassword,
		APITokenLength: config.APITokenLength,
		Hasher:         config.Hasher,
		HashCost:       config.HashCost,
		LogFormat:      config.LogFormat,
		LogLevel:       config.LogLevel,
		Timeout:        timex.Duration{Duration: config.Timeout},
		FakerSeed:      config.FakerSeed,
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.Driver = dbx.Driver(c.Driver)
	config.DatabaseDSN = c.DatabaseDSN
	config.Fresh = c.Fresh
	config.Class = c.Class
	config.FactoryCount = c.FactoryCount
	config.AdminName = c.AdminName
	config.AdminEmail = c.AdminEmail
	config.AdminPassword = c.AdminPassword
	config.APITokenLength = c.APITokenLength
	config.Hasher = c.Hasher
	config.HashCost = c.HashCost
	config.LogFormat = c.LogFormat
	config.LogLevel = c.LogLevel
	config.Timeout = c.Timeout.Duration
	config.FakerSeed = c.FakerSeed
}
