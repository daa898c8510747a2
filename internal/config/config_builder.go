package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Fallback values applied after all sources are merged.
const (
	defaultDriver               = DriverSQLite
	defaultDSN                  = "privacy.db"
	defaultCollectionsRoot      = "collections"
	defaultHTTPAddress          = "localhost:8080"
	defaultRequestTimeout       = 30 * time.Second
	defaultTokenIssuer          = "card-privacy"
	defaultTokenDuration        = time.Hour
	defaultPhoneRegion          = "US"
	defaultReprocessConcurrency = 4
	defaultReprocessQueueSize   = 64
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	config.applyDefaults()

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = defaultDriver
	}
	if cfg.Storage.DB.DSN == "" && cfg.Storage.DB.Driver == DriverSQLite {
		cfg.Storage.DB.DSN = defaultDSN
	}
	if cfg.Storage.Collections.Root == "" {
		cfg.Storage.Collections.Root = defaultCollectionsRoot
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.Privacy.PhoneRegion == "" {
		cfg.Privacy.PhoneRegion = defaultPhoneRegion
	}
	if cfg.Privacy.ReprocessConcurrency == 0 {
		cfg.Privacy.ReprocessConcurrency = defaultReprocessConcurrency
	}
	if cfg.Workers.ReprocessQueueSize == 0 {
		cfg.Workers.ReprocessQueueSize = defaultReprocessQueueSize
	}
}
