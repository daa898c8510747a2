// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/store"
	"github.com/MKhiriev/card-privacy/models"
)

// defaultActionsLimit caps GET /privacy/status when no limit is given.
const defaultActionsLimit = 50

// privacyService is the concrete implementation of PrivacyService. Settings
// changes optionally queue a background reprocessing run for the
// identifier; queueing failures never fail the change itself.
type privacyService struct {
	settings store.PrivacySettingsRepository
	actions  store.ActionRepository

	scanner     CardScanner
	reprocessor Reprocessor

	// queue is nil when reprocessing on change is disabled.
	queue ReprocessQueue

	logger *logger.Logger
}

// NewPrivacyService builds a PrivacyService. queue may be nil.
func NewPrivacyService(
	settings store.PrivacySettingsRepository,
	actions store.ActionRepository,
	scanner CardScanner,
	reprocessor Reprocessor,
	queue ReprocessQueue,
	logger *logger.Logger,
) PrivacyService {
	return &privacyService{
		settings:    settings,
		actions:     actions,
		scanner:     scanner,
		reprocessor: reprocessor,
		queue:       queue,
		logger:      logger,
	}
}

func (s *privacyService) GetSettings(ctx context.Context, identifier string) (*models.PrivacySettings, error) {
	log := logger.FromContext(ctx)

	settings, err := s.settings.Get(ctx, identifier)
	if err != nil {
		log.Err(err).Str("func", "*privacyService.GetSettings").Msg("error reading privacy settings")
		return nil, fmt.Errorf("error reading privacy settings: %w", err)
	}
	if settings == nil {
		return nil, ErrSettingsNotFound
	}

	return settings, nil
}

func (s *privacyService) CreateSettings(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error) {
	log := logger.FromContext(ctx)

	settings, err := s.settings.Create(ctx, identifier, values)
	if err != nil {
		if errors.Is(err, store.ErrPrivacySettingsAlreadyExist) {
			log.Warn().Str("func", "*privacyService.CreateSettings").Msg("privacy settings already exist")
		} else {
			log.Err(err).Str("func", "*privacyService.CreateSettings").Msg("error creating privacy settings")
		}
		return nil, fmt.Errorf("error creating privacy settings: %w", err)
	}

	log.Info().Interface("settings", settings.AsMap()).Msg("privacy settings created")
	s.queueReprocess(ctx, identifier)

	return settings, nil
}

func (s *privacyService) UpdateSettings(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error) {
	log := logger.FromContext(ctx)

	settings, err := s.settings.Update(ctx, identifier, values)
	if err != nil {
		log.Err(err).Str("func", "*privacyService.UpdateSettings").Msg("error updating privacy settings")
		return nil, fmt.Errorf("error updating privacy settings: %w", err)
	}
	if settings == nil {
		return nil, ErrSettingsNotFound
	}

	log.Info().Interface("settings", settings.AsMap()).Msg("privacy settings updated")
	s.queueReprocess(ctx, identifier)

	return settings, nil
}

func (s *privacyService) DeleteSettings(ctx context.Context, identifier string) error {
	log := logger.FromContext(ctx)

	deleted, err := s.settings.Delete(ctx, identifier)
	if err != nil {
		log.Err(err).Str("func", "*privacyService.DeleteSettings").Msg("error deleting privacy settings")
		return fmt.Errorf("error deleting privacy settings: %w", err)
	}
	if !deleted {
		return ErrSettingsNotFound
	}

	log.Info().Msg("privacy settings deleted")
	s.queueReprocess(ctx, identifier)

	return nil
}

func (s *privacyService) FindCards(ctx context.Context, identifier string) ([]models.ScanMatch, error) {
	matches, err := s.scanner.Scan(ctx, identifier)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*privacyService.FindCards").Msg("error scanning cards")
		return nil, err
	}

	return matches, nil
}

func (s *privacyService) Reprocess(ctx context.Context, identifier string) (models.ReprocessReport, error) {
	return s.reprocessor.Reprocess(ctx, identifier)
}

func (s *privacyService) Actions(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error) {
	if limit == 0 {
		limit = defaultActionsLimit
	}

	entries, err := s.actions.ListActions(ctx, identifier, limit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*privacyService.Actions").Msg("error listing actions")
		return nil, fmt.Errorf("error listing actions: %w", err)
	}

	return entries, nil
}

func (s *privacyService) queueReprocess(ctx context.Context, identifier string) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(identifier); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("background reprocessing not queued")
	}
}
