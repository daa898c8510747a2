package service

import (
	"github.com/MKhiriev/card-privacy/internal/config"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/store"
)

type Services struct {
	AuthService    AuthService
	PrivacyService PrivacyService
	CardService    CardService
	AppInfoService AppInfoService
}

// Engine bundles the enforcement components the services delegate to.
type Engine struct {
	Scanner     CardScanner
	Reprocessor Reprocessor
	// Queue is nil when settings changes do not trigger reprocessing.
	Queue ReprocessQueue
}

func NewServices(storages *store.Storages, engine Engine, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	privacy := NewPrivacyValidationService().Wrap(
		NewPrivacyService(storages.PrivacySettings, storages.Actions, engine.Scanner, engine.Reprocessor, engine.Queue, logger),
	)

	return &Services{
		AuthService:    NewAuthService(cfg.App, logger),
		PrivacyService: privacy,
		CardService:    NewCardService(storages.Collections, logger),
		AppInfoService: appInfo,
	}, nil
}
