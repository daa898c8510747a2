// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/card-privacy/internal/config"
	"github.com/MKhiriev/card-privacy/internal/handler"
	"github.com/MKhiriev/card-privacy/internal/logger"
)

type server struct {
	httpServer *httpServer
	workers    Workers
	logger     *logger.Logger
}

// NewServer builds the HTTP server from handlers. workers may be nil.
func NewServer(handlers *handler.Handlers, workers Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    workers,
		logger:     logger,
	}, nil
}

// Run serves requests until ctx is cancelled, then stops the HTTP server
// gracefully and waits for the workers to return.
func (s *server) Run(ctx context.Context) error {
	ln, err := s.httpServer.listen()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.httpServer.serve(ln)
	})

	// listen for stop signals
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info().Msg("stopping HTTP server")
		return s.httpServer.shutdown()
	})

	if s.workers != nil {
		s.logger.Info().Msg("launching workers")
		g.Go(func() error {
			return s.workers.Run(ctx)
		})
	}

	return g.Wait()
}
