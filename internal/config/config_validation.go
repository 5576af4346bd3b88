// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Homefront Community

package config

import "strings"

// validate checks that the final [ClientConfig] satisfies the invariants the
// client relies on at startup. Defaults have been applied by this point, so a
// failure here means an explicitly misconfigured value.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DBPath == "" || strings.Contains(cfg.Storage.DBPath, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.PollInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
