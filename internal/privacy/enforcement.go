// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package privacy

import (
	"context"
	"strings"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/phone"
	"github.com/MKhiriev/card-privacy/models"
)

// Enforcement describes what one enforcement pass did.
type Enforcement struct {
	// Identifiers found on the card.
	Identifiers []models.Identifier
	// Policy is the merged policy, nil when none applied.
	Policy *models.PrivacyFlags
	// Removed lists the deleted properties as they were named on the card.
	Removed []string
}

// Enforcer applies stored privacy policies to contact cards. One Enforcer
// is built per process and shared; it holds no per-call state.
type Enforcer struct {
	extractor *Extractor
	resolver  *Resolver
	taxonomy  *Taxonomy
	logger    *logger.Logger
}

// NewEnforcer builds an Enforcer. A nil taxonomy selects
// [DefaultTaxonomy].
func NewEnforcer(settings SettingsReader, taxonomy *Taxonomy, normalizer *phone.Normalizer, logger *logger.Logger) *Enforcer {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	logger.Debug().Msg("creating privacy enforcer")

	return &Enforcer{
		extractor: NewExtractor(normalizer),
		resolver:  NewResolver(settings),
		taxonomy:  taxonomy,
		logger:    logger,
	}
}

// Extractor returns the identifier extractor used by e.
func (e *Enforcer) Extractor() *Extractor {
	return e.extractor
}

// Enforce redacts item in place. Non-contact items and cards without a
// matching policy are left untouched.
func (e *Enforcer) Enforce(ctx context.Context, item *card.Item) error {
	_, err := e.Apply(ctx, item)
	return err
}

// Apply is Enforce returning a description of the pass.
func (e *Enforcer) Apply(ctx context.Context, item *card.Item) (Enforcement, error) {
	log := logger.FromContext(ctx)

	if !item.IsContact() {
		log.Debug().Str("func", "*Enforcer.Apply").Msg("not a contact card")
		return Enforcement{}, nil
	}

	ids := e.extractor.Extract(item)
	if len(ids) == 0 {
		log.Debug().Str("func", "*Enforcer.Apply").Str("uid", item.UID()).Msg("no email or phone on card")
		return Enforcement{}, nil
	}

	policy, err := e.resolver.Resolve(ctx, ids)
	if err != nil {
		log.Err(err).Str("func", "*Enforcer.Apply").Str("uid", item.UID()).Msg("error resolving privacy policy")
		return Enforcement{Identifiers: ids}, err
	}
	if policy == nil {
		log.Debug().Str("func", "*Enforcer.Apply").Str("uid", item.UID()).Msg("no privacy settings for any identifier")
		return Enforcement{Identifiers: ids}, nil
	}

	removed := e.Redact(item, policy)
	log.Info().
		Str("uid", item.UID()).
		Strs("removed", removed).
		Msg("privacy enforced on vcard")

	return Enforcement{Identifiers: ids, Policy: policy, Removed: removed}, nil
}

// Redact deletes every property of item that policy disallows, skipping
// public and unrecognised properties, and returns the deleted names. A nil
// policy leaves item as is. Applying the same policy twice is a no-op the
// second time.
func (e *Enforcer) Redact(item *card.Item, policy *models.PrivacyFlags) []string {
	if policy == nil || !item.IsContact() {
		return nil
	}

	removable := e.taxonomy.Removable(*policy)
	if len(removable) == 0 {
		return nil
	}

	var removed []string
	for _, name := range item.FieldNames() {
		if e.taxonomy.IsPublic(name) || !e.taxonomy.IsValid(name) {
			continue
		}
		if _, ok := removable[strings.ToLower(name)]; ok {
			item.DeleteField(name)
			removed = append(removed, name)
		}
	}

	return removed
}
