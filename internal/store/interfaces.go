package store

import (
	"context"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/models"
)

// PrivacySettingsRepository persists one privacy policy per identifier.
//
// Absence is not an error: Get and Update return a nil record and Delete
// returns false when nothing is stored for the identifier.
type PrivacySettingsRepository interface {
	// Create inserts a new record. Flags missing from values take the
	// defaults read at call time.
	Create(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error)
	Get(ctx context.Context, identifier string) (*models.PrivacySettings, error)
	// Update applies only the supplied flags and stamps updated_at.
	Update(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error)
	Delete(ctx context.Context, identifier string) (bool, error)
}

// ActionRepository stores the reprocessing action log.
type ActionRepository interface {
	LogAction(ctx context.Context, entry models.ActionLogEntry) error
	ListActions(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error)
}

// DefaultsProvider supplies the default flag values for new records.
type DefaultsProvider interface {
	DefaultFlags() models.PrivacyFlags
}

// ItemEnforcer redacts an item in place before it is written.
type ItemEnforcer interface {
	Enforce(ctx context.Context, item *card.Item) error
}
