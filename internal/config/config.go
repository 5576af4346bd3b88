// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Homefront Community

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the homefront
// client. It is populated by merging values from environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the web origin that hosts the
	// runtime configuration document and the build-time backend URL.
	App App `envPrefix:"APP_"`

	// Adapter holds network settings for the outbound HTTP transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local SQLite database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Origin is the web origin of the deployment that serves the runtime
	// configuration document (GET {Origin}/config.json). When empty, runtime
	// configuration is skipped and the build-time URL is used directly.
	// Env: APP_ORIGIN
	Origin string `env:"ORIGIN"`

	// APIBaseURL is the build-time backend base URL, used when the runtime
	// configuration document is absent or does not carry an override.
	// A bare hostname is accepted and will be prefixed with https://.
	// Env: APP_API_URL
	APIBaseURL string `env:"API_URL"`

	// Version is the semantic version string of the running client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds settings for the outbound HTTP transport layer.
type Adapter struct {
	// RequestTimeout is the maximum duration allowed for a single outbound
	// request (e.g. "15s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds settings for the local persistence layer.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// Path is the filesystem path of the SQLite database file that stores
	// the persisted session token and the offline listing cache. Defaults
	// to a file under the user configuration directory.
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// PollInterval defines how often the notification poller runs.
	// Env: WORKERS_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// GetStructuredConfig loads and merges the client configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
