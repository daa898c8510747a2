// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package privacy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/models"
)

// DefaultConcurrency is used when a Reprocessor is built with a
// non-positive concurrency.
const DefaultConcurrency = 4

// CardEnforcer applies the current policy to one card.
type CardEnforcer interface {
	Apply(ctx context.Context, item *card.Item) (Enforcement, error)
}

// IdentityScanner finds the cards that reference an identifier.
type IdentityScanner interface {
	Scan(ctx context.Context, identifier string) ([]models.ScanMatch, error)
}

// ActionLogger records reprocessing events.
type ActionLogger interface {
	LogAction(ctx context.Context, entry models.ActionLogEntry) error
}

// Reprocessor re-applies the current policies to every stored card that
// references an identifier.
type Reprocessor struct {
	scanner     IdentityScanner
	storage     card.Storage
	enforcer    CardEnforcer
	actions     ActionLogger
	concurrency int
	logger      *logger.Logger
}

// NewReprocessor builds a Reprocessor. actions may be nil.
func NewReprocessor(scanner IdentityScanner, storage card.Storage, enforcer CardEnforcer, actions ActionLogger, concurrency int, logger *logger.Logger) *Reprocessor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	logger.Debug().Int("concurrency", concurrency).Msg("creating reprocessor")

	return &Reprocessor{
		scanner:     scanner,
		storage:     storage,
		enforcer:    enforcer,
		actions:     actions,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Reprocess scans the store for identifier and enforces and persists every
// match independently. A match whose collection or card is gone is skipped;
// a match that fails to enforce or persist is marked failed. Neither stops
// the other matches. Only a failing scan returns an error.
//
// Matches are processed concurrently. Each card is written at most once per
// run and the record store serializes writes to the same href.
func (r *Reprocessor) Reprocess(ctx context.Context, identifier string) (models.ReprocessReport, error) {
	log := logger.FromContext(ctx).WithIdentifier(identifier)
	report := models.ReprocessReport{Identifier: identifier, Results: []models.ReprocessResult{}}

	matches, err := r.scanner.Scan(ctx, identifier)
	if err != nil {
		if !errors.Is(err, ErrScanFailed) {
			err = fmt.Errorf("%w: %w", ErrScanFailed, err)
		}
		log.Err(err).Str("func", "*Reprocessor.Reprocess").Msg("error scanning record store")
		return report, err
	}

	matches = lo.UniqBy(matches, func(m models.ScanMatch) string {
		return m.CollectionPath + "\x00" + m.VCardUID
	})
	report.Total = len(matches)
	r.logAction(ctx, models.ActionLogEntry{
		Action:     models.ActionReprocessStarted,
		Identifier: identifier,
		Details:    jsonDetails(map[string]any{"total": report.Total}),
	})

	results := make([]models.ReprocessResult, len(matches))
	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, match := range matches {
		g.Go(func() error {
			results[i] = r.processMatch(ctx, identifier, match)
			return nil
		})
	}
	_ = g.Wait()
	report.Results = results

	updated := report.Count(models.OutcomeUpdated)
	r.logAction(ctx, models.ActionLogEntry{
		Action:     models.ActionReprocessCompleted,
		Identifier: identifier,
		Details: jsonDetails(map[string]any{
			"total":                  report.Total,
			"successfully_processed": updated,
		}),
	})

	log.Info().
		Int("total", report.Total).
		Int("updated", updated).
		Int("skipped", report.Count(models.OutcomeSkipped)).
		Int("failed", report.Count(models.OutcomeFailed)).
		Msg("reprocessing finished")

	return report, nil
}

func (r *Reprocessor) processMatch(ctx context.Context, identifier string, match models.ScanMatch) models.ReprocessResult {
	log := logger.FromContext(ctx).With().
		Str("collection", match.CollectionPath).
		Str("uid", match.VCardUID).
		Logger()

	result := models.ReprocessResult{Match: match}
	skip := func(reason string, err error) models.ReprocessResult {
		log.Warn().Err(err).Str("reason", reason).Msg("skipping card")
		result.Outcome, result.Reason, result.Err = models.OutcomeSkipped, reason, err
		return result
	}
	fail := func(reason string, err error) models.ReprocessResult {
		log.Error().Err(err).Str("reason", reason).Msg("card reprocessing failed")
		result.Outcome, result.Reason, result.Err = models.OutcomeFailed, reason, err
		return result
	}

	if err := ctx.Err(); err != nil {
		return fail(ReasonCanceled, err)
	}

	collections, err := r.storage.Discover(ctx, "/"+match.CollectionPath)
	if err != nil {
		return skip(ReasonCollectionNotFound, err)
	}
	if len(collections) == 0 {
		return skip(ReasonCollectionNotFound, nil)
	}
	collection := collections[0]

	items, err := collection.GetAll(ctx)
	if err != nil {
		return skip(ReasonCardNotFound, err)
	}
	item, found := lo.Find(items, func(it *card.Item) bool {
		return it.IsContact() && it.UID() == match.VCardUID
	})
	if !found {
		return skip(ReasonCardNotFound, nil)
	}

	enforcement, err := r.enforcer.Apply(ctx, item)
	if err != nil {
		return fail(ReasonEnforcementFailed, err)
	}

	// persisted even when nothing was removed
	if _, err := collection.Upload(ctx, item.Href, item); err != nil {
		return fail(ReasonPersistFailed, fmt.Errorf("upload %s/%s: %w", match.CollectionPath, item.Href, err))
	}

	r.logAction(ctx, models.ActionLogEntry{
		Action:         models.ActionProcessed,
		Identifier:     identifier,
		VCardUID:       match.VCardUID,
		CollectionPath: match.CollectionPath,
		Details: jsonDetails(map[string]any{
			"href":    item.Href,
			"removed": lo.Ternary(enforcement.Removed == nil, []string{}, enforcement.Removed),
		}),
	})

	log.Debug().Strs("removed", enforcement.Removed).Msg("card reprocessed")
	result.Outcome = models.OutcomeUpdated
	return result
}

func (r *Reprocessor) logAction(ctx context.Context, entry models.ActionLogEntry) {
	if r.actions == nil {
		return
	}
	if err := r.actions.LogAction(ctx, entry); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("action", string(entry.Action)).Msg("error logging vcard action")
	}
}

func jsonDetails(v map[string]any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
