// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// card-privacy server. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Privacy holds the default policy applied to newly created settings
	// and the knobs of the enforcement engine.
	Privacy Privacy `envPrefix:"PRIVACY_"`

	// Storage holds configuration for the settings database and the
	// contact collection store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background reprocessing.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// lifecycle and versioning.
type App struct {
	// TokenSignKey is the secret key used to verify (and, for the CLI,
	// sign) HS256 JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an issued token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Privacy holds the process-wide default flag values. They are read when a
// settings record is created; existing records never change when they do.
type Privacy struct {
	DefaultDisallowPhoto    bool `env:"DEFAULT_DISALLOW_PHOTO"`
	DefaultDisallowGender   bool `env:"DEFAULT_DISALLOW_GENDER"`
	DefaultDisallowBirthday bool `env:"DEFAULT_DISALLOW_BIRTHDAY"`
	DefaultDisallowAddress  bool `env:"DEFAULT_DISALLOW_ADDRESS"`
	DefaultDisallowCompany  bool `env:"DEFAULT_DISALLOW_COMPANY"`
	DefaultDisallowTitle    bool `env:"DEFAULT_DISALLOW_TITLE"`

	// PhoneRegion is the region assumed for phone numbers written without
	// a country code (ISO 3166-1 alpha-2).
	// Env: PRIVACY_PHONE_REGION
	PhoneRegion string `env:"PHONE_REGION"`

	// ReprocessConcurrency bounds how many cards a reprocessing run
	// enforces and persists at the same time.
	// Env: PRIVACY_REPROCESS_CONCURRENCY
	ReprocessConcurrency int `env:"REPROCESS_CONCURRENCY"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the settings database connection settings.
	DB DB `envPrefix:"DB_"`

	// Collections holds the contact collection store settings.
	Collections Collections `envPrefix:"COLLECTIONS_"`
}

// Supported values of [DB.Driver].
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB holds connection settings for the settings database.
type DB struct {
	// Driver is either "sqlite3" or "postgres".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name: a file path for SQLite or a connection
	// URI for PostgreSQL.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Collections holds file-system settings for the contact collection store.
type Collections struct {
	// Root is the folder holding one sub-folder per collection.
	// Env: STORAGE_COLLECTIONS_ROOT
	Root string `env:"ROOT"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ReprocessQueueSize is the capacity of the background reprocessing
	// queue.
	// Env: WORKERS_REPROCESS_QUEUE_SIZE
	ReprocessQueueSize int `env:"REPROCESS_QUEUE_SIZE"`

	// ReprocessOnChange queues a reprocessing run whenever settings are
	// created, updated or deleted.
	// Env: WORKERS_REPROCESS_ON_CHANGE
	ReprocessOnChange bool `env:"REPROCESS_ON_CHANGE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override non-zero fields of earlier ones):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
