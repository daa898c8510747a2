package service

import (
	"context"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/models"
)

// PrivacyService manages the privacy settings of identifiers and the cards
// they govern.
type PrivacyService interface {
	GetSettings(ctx context.Context, identifier string) (*models.PrivacySettings, error)
	CreateSettings(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error)
	UpdateSettings(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error)
	DeleteSettings(ctx context.Context, identifier string) error

	FindCards(ctx context.Context, identifier string) ([]models.ScanMatch, error)
	Reprocess(ctx context.Context, identifier string) (models.ReprocessReport, error)
	Actions(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error)
}

// CardService stores and reads single cards through the enforcing write
// path of the record store.
type CardService interface {
	UploadCard(ctx context.Context, collectionPath, href string, body []byte) (*card.Item, error)
	GetCard(ctx context.Context, collectionPath, href string) (*card.Item, error)
}

type AuthService interface {
	CreateToken(ctx context.Context, identifier string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// PrivacyServiceWrapper defines middleware composition for PrivacyService.
// Implementations wrap an existing PrivacyService to add behavior such as
// validating.
type PrivacyServiceWrapper interface {
	Wrap(PrivacyService) PrivacyService // returns a decorated PrivacyService applying additional behavior
}

// ReprocessQueue accepts identifiers for background reprocessing.
type ReprocessQueue interface {
	Enqueue(identifier string) error
}

// Reprocessor re-applies the current policy to the cards of an identifier.
type Reprocessor interface {
	Reprocess(ctx context.Context, identifier string) (models.ReprocessReport, error)
}

// CardScanner finds the cards referencing an identifier.
type CardScanner interface {
	Scan(ctx context.Context, identifier string) ([]models.ScanMatch, error)
}

// CollectionStore is the part of the record store used by CardService.
type CollectionStore interface {
	Discover(ctx context.Context, path string) ([]card.Collection, error)
	CreateCollection(ctx context.Context, path string) (card.Collection, error)
}
