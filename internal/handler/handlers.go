package handler

import (
	"github.com/MKhiriev/card-privacy/internal/config"
	"github.com/MKhiriev/card-privacy/internal/handler/http"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/phone"
	"github.com/MKhiriev/card-privacy/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	normalizer := phone.NewNormalizer(cfg.Privacy.PhoneRegion)

	return &Handlers{
		HTTP: http.NewHandler(services, normalizer, logger),
	}, nil
}
