package config

import "errors"

// Errors returned while building the configuration.
var (
	// ErrInvalidFlags indicates that command-line flags could not be parsed.
	ErrInvalidFlags = errors.New("invalid command-line flags")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, unsupported driver or empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidPrivacyConfigs indicates invalid enforcement settings.
	ErrInvalidPrivacyConfigs = errors.New("invalid privacy configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidAdapterConfigs indicates invalid client transport settings.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
