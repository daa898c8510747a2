// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}

	if cfg.Privacy.ReprocessConcurrency < 0 {
		return fmt.Errorf("%w: negative reprocess concurrency", ErrInvalidPrivacyConfigs)
	}

	if cfg.Workers.ReprocessQueueSize < 0 {
		return fmt.Errorf("%w: negative queue size", ErrInvalidWorkerConfigs)
	}

	return nil
}

// validate checks the client view of the configuration.
func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" {
		return fmt.Errorf("%w: empty server address", ErrInvalidAdapterConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}

	return nil
}
