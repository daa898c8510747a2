// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the card-privacy server from its configuration:
// the settings database, the collection store with its write-path
// enforcer, the reprocessing engine, the services, the HTTP handlers and
// the background workers.
package app

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/MKhiriev/card-privacy/internal/config"
	"github.com/MKhiriev/card-privacy/internal/handler"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/phone"
	"github.com/MKhiriev/card-privacy/internal/privacy"
	"github.com/MKhiriev/card-privacy/internal/server"
	"github.com/MKhiriev/card-privacy/internal/service"
	"github.com/MKhiriev/card-privacy/internal/store"
	"github.com/MKhiriev/card-privacy/internal/workers"
)

// ServerApp owns every long-lived component of the server process.
type ServerApp struct {
	DB       *store.DB
	Storages *store.Storages
	Services *service.Services
	Server   server.Server

	logger *logger.Logger
}

// NewServerApp connects to the database, applies migrations and wires the
// rest of the application. The database is closed again when wiring fails.
func NewServerApp(ctx context.Context, cfg config.StructuredConfig, logger *logger.Logger) (_ *ServerApp, err error) {
	db, err := store.NewConnect(ctx, cfg.Storage.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, db.Close())
		}
	}()

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	collections, err := store.NewOsCollectionStorage(cfg.Storage.Collections.Root, nil, logger)
	if err != nil {
		return nil, err
	}

	storages := store.NewStorages(db, collections, config.NewDefaults(cfg.Privacy), logger)

	// the enforcer reads policies through the repository, and the store
	// enforces every upload through the enforcer
	normalizer := phone.NewNormalizer(cfg.Privacy.PhoneRegion)
	enforcer := privacy.NewEnforcer(storages.PrivacySettings, privacy.DefaultTaxonomy(), normalizer, logger)
	collections.SetEnforcer(enforcer)

	scanner := privacy.NewScanner(collections, enforcer.Extractor())
	reprocessor := privacy.NewReprocessor(scanner, collections, enforcer, storages.Actions, cfg.Privacy.ReprocessConcurrency, logger)
	worker := workers.NewReprocessWorker(reprocessor, cfg.Workers.ReprocessQueueSize, 0, logger)

	engine := service.Engine{
		Scanner:     scanner,
		Reprocessor: reprocessor,
	}
	if cfg.Workers.ReprocessOnChange {
		engine.Queue = worker
	}

	services, err := service.NewServices(storages, engine, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(worker), cfg.Server, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating server: %w", err)
	}

	return &ServerApp{
		DB:       db,
		Storages: storages,
		Services: services,
		Server:   srv,
		logger:   logger,
	}, nil
}

// Run serves until ctx is cancelled and closes the database afterwards.
func (a *ServerApp) Run(ctx context.Context) error {
	err := a.Server.Run(ctx)
	return multierr.Append(err, a.Close())
}

func (a *ServerApp) Close() error {
	a.logger.Info().Msg("closing database")
	return a.DB.Close()
}
