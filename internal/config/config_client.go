package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultPollInterval   = time.Minute
)

// ClientApp holds application-level client settings derived from the shared
// structured config.
type ClientApp struct {
	// Origin is the web origin serving the runtime configuration document.
	Origin string
	// APIBaseURL is the build-time backend base URL fallback.
	APIBaseURL string
	// Version is the client version string.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DBPath is the SQLite database file path.
	DBPath string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// PollInterval defines how often the notification poller should run.
	PollInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client config view from the merged
// structured configuration, applying defaults for anything left unset.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Origin:     cfg.App.Origin,
			APIBaseURL: cfg.App.APIBaseURL,
			Version:    cfg.App.Version,
		},
		Adapter: ClientAdapter{
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DBPath: cfg.Storage.DB.Path,
		},
		Workers: ClientWorkers{PollInterval: cfg.Workers.PollInterval},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Workers.PollInterval <= 0 {
		cfg.Workers.PollInterval = defaultPollInterval
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = defaultDBPath()
	}
}

// defaultDBPath places the client database under the user configuration
// directory, falling back to the working directory when the platform does
// not expose one.
func defaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "homefront.db"
	}
	return filepath.Join(configDir, "homefront", "homefront.db")
}
