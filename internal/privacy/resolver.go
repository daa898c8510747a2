package privacy

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/models"
)

// SettingsReader looks up the stored policy of one identifier. A nil
// result means no policy is stored.
type SettingsReader interface {
	Get(ctx context.Context, identifier string) (*models.PrivacySettings, error)
}

// Resolver merges the stored policies of several identifiers.
type Resolver struct {
	settings SettingsReader
}

// NewResolver returns a Resolver reading from settings.
func NewResolver(settings SettingsReader) *Resolver {
	return &Resolver{settings: settings}
}

// Resolve looks up every identifier value and ORs the flags of all the
// records found. It returns nil when none of the identifiers has a stored
// policy, which is different from a policy with every flag off.
func (r *Resolver) Resolve(ctx context.Context, ids []models.Identifier) (*models.PrivacyFlags, error) {
	log := logger.FromContext(ctx)

	values := lo.Uniq(lo.Map(ids, func(id models.Identifier, _ int) string { return id.Value }))

	var merged *models.PrivacyFlags
	for _, value := range values {
		settings, err := r.settings.Get(ctx, value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPolicyLookup, err)
		}
		if settings == nil {
			continue
		}

		log.Info().
			Str("identifier", logger.MaskIdentifier(value)).
			Interface("settings", settings.AsMap()).
			Msg("found privacy settings")

		if merged == nil {
			flags := settings.PrivacyFlags
			merged = &flags
			continue
		}
		*merged = merged.Merge(settings.PrivacyFlags)
	}

	return merged, nil
}
