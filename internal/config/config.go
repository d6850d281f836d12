// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// radioforms application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends: the
	// SQLite database, the attachments directory, and the DAO cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the local
	// HTTP transport.
	Server Server `envPrefix:"SERVER_"`

	// Templates holds settings for the form-template catalog.
	Templates Templates `envPrefix:"TEMPLATES_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system storage settings for form attachments.
	Files Files `envPrefix:"FILES_"`

	// Cache holds the DAO read-through cache settings.
	Cache Cache `envPrefix:"CACHE_"`
}

// DB holds connection settings for the SQLite database file.
type DB struct {
	// DSN is the path to the SQLite database file. The file is created
	// on first start if it does not exist.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the attachments store.
type Files struct {
	// AttachmentsDir is the directory where attached files are copied
	// and served from. Attachments are disabled when empty.
	// Env: STORAGE_FILES_ATTACHMENTS_DIR
	AttachmentsDir string `env:"ATTACHMENTS_DIR"`
}

// Cache holds the DAO read-through cache settings.
type Cache struct {
	// Enabled toggles the per-DAO read cache. When false a no-op cache
	// is injected and every read goes to the database.
	// Env: STORAGE_CACHE_ENABLED
	Enabled bool `env:"ENABLED"`

	// TTL is how long a cached read stays valid before it expires
	// (e.g. "30s"). Any write to an entity type invalidates all cached
	// reads for that type regardless of TTL.
	// Env: STORAGE_CACHE_TTL
	TTL time.Duration `env:"TTL"`
}

// Server holds network and timeout settings for the local HTTP transport.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format. The transport is intended for the local UI
	// only, so the default binds to the loopback interface.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Templates holds settings for the form-template catalog.
type Templates struct {
	// Dir is an optional directory of template JSON documents that
	// override or extend the embedded catalog. Documents found here are
	// validated the same way as bundled ones.
	// Env: TEMPLATES_DIR
	Dir string `env:"DIR"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
