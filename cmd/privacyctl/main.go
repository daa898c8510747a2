package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/MKhiriev/card-privacy/internal/adapter"
	"github.com/MKhiriev/card-privacy/internal/client"
	"github.com/MKhiriev/card-privacy/internal/config"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/service"
	"github.com/MKhiriev/card-privacy/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewConsoleLogger("privacyctl", os.Stderr)

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	privacyClient, err := adapter.NewHTTPPrivacyClient(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating client")
	}

	tokens := service.NewAuthService(config.App{
		TokenSignKey:  cfg.App.TokenSignKey,
		TokenIssuer:   cfg.App.TokenIssuer,
		TokenDuration: cfg.App.TokenDuration,
	}, log)

	cli := client.NewApp(privacyClient, tokens, afero.NewOsFs(), os.Stdout,
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err = cli.Run(ctx, args); err != nil {
		if errors.Is(err, client.ErrUsage) || errors.Is(err, client.ErrUnknownCommand) {
			fmt.Fprintln(os.Stderr, err)
			client.Usage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
