package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-origin web origin serving the runtime configuration document
//	-api-url build-time backend base URL fallback
//	-db local SQLite database file path
//	-c/-config json file path with configs
//	-request-timeout outbound request timeout (e.g., "15s", "1m")
//	-poll-interval notification poll interval (e.g., "30s", "2m")
func ParseFlags() *StructuredConfig {
	var origin string
	var apiBaseURL string
	var dbPath string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var pollInterval time.Duration

	flag.StringVar(&origin, "origin", "", "Web origin serving config.json")
	flag.StringVar(&apiBaseURL, "api-url", "", "Backend base URL fallback")
	flag.StringVar(&dbPath, "db", "", "Local database file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	flag.DurationVar(&pollInterval, "poll-interval", 0, "Notification poll interval (e.g., 30s, 2m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Origin:     origin,
			APIBaseURL: apiBaseURL,
		},
		Adapter: Adapter{
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				Path: dbPath,
			},
		},
		Workers:      Workers{PollInterval: pollInterval},
		JSONFilePath: jsonConfigPath,
	}
}
