package store

import (
	"github.com/MKhiriev/card-privacy/internal/logger"
)

// Storages groups every storage component the services depend on.
type Storages struct {
	PrivacySettings PrivacySettingsRepository
	Actions         ActionRepository
	Collections     *CollectionStorage
}

// NewStorages wires the repositories over db together with the collection
// store.
func NewStorages(db *DB, collections *CollectionStorage, defaults DefaultsProvider, logger *logger.Logger) *Storages {
	return &Storages{
		PrivacySettings: NewPrivacySettingsRepository(db, defaults, logger),
		Actions:         NewActionRepository(db, logger),
		Collections:     collections,
	}
}
