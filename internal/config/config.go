// Package config loads the handler configuration from the environment.
package config

import (
	"errors"
	"os"
)

const (
	// EnvTableName is the environment variable naming the backing DynamoDB table.
	EnvTableName = "TABLE_NAME"

	// EnvSkipSchemaValidation disables the startup table schema check when
	// set to "true". Useful when table provisioning is managed separately.
	EnvSkipSchemaValidation = "SKIP_SCHEMA_VALIDATION"
)

// Config holds the runtime configuration for the handler.
type Config struct {
	TableName            string
	SkipSchemaValidation bool
}

// Load reads the configuration from the environment. A missing or empty
// table name is an error; the caller is expected to treat it as fatal.
func Load() (*Config, error) {
	tableName := os.Getenv(EnvTableName)
	if tableName == "" {
		return nil, errors.New(EnvTableName + " environment variable is not set")
	}

	return &Config{
		TableName:            tableName,
		SkipSchemaValidation: os.Getenv(EnvSkipSchemaValidation) == "true",
	}, nil
}
