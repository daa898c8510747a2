package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/card-privacy/internal/app"
	"github.com/MKhiriev/card-privacy/internal/config"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo.String())

	log := logger.NewLogger("card-privacy-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Str("driver", cfg.Storage.DB.Driver).
		Str("collections", cfg.Storage.Collections.Root).
		Str("address", cfg.Server.HTTPAddress).
		Bool("reprocess_on_change", cfg.Workers.ReprocessOnChange).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	serverApp, err := app.NewServerApp(ctx, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = serverApp.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server Shutdown gracefully")
}
