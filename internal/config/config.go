// Package config loads process-wide defaults from the environment and
// turns CLI flags into a model.Config the orchestrator can run.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Env holds the LANGCONV_* environment defaults, loaded once before flags
// are parsed. A missing .env file is not an error; plain process
// environment variables still apply.
type Env struct {
	// DSN is the default database DSN for the conversion-run audit log: a
	// local sqlite file path, ":memory:", or a libsql/https URL pointing
	// at a Turso-hosted database.
	DSN string
	// LibsqlAuthToken authenticates against a libsql:// or https:// DSN.
	LibsqlAuthToken string
	// DefaultLanguage is used when --lang is omitted.
	DefaultLanguage string
}

// LoadEnv loads a .env file from the working directory if present, then
// reads LANGCONV_* variables, falling back to sensible defaults.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		DSN:             os.Getenv("LANGCONV_DB_DSN"),
		LibsqlAuthToken: os.Getenv("LANGCONV_LIBSQL_AUTH_TOKEN"),
		DefaultLanguage: os.Getenv("LANGCONV_DEFAULT_LANGUAGE"),
	}
	if env.DSN == "" {
		env.DSN = ".langconv/history.db"
	}
	if env.DefaultLanguage == "" {
		env.DefaultLanguage = "zh-cn"
	}
	return env
}
