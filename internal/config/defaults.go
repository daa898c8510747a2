package config

import (
	"sync"

	"github.com/MKhiriev/card-privacy/models"
)

// Defaults is the runtime source of default flag values. The settings
// store reads it on every create, so a change made through Set affects only
// records created afterwards.
type Defaults struct {
	mu    sync.RWMutex
	flags models.PrivacyFlags
}

// NewDefaults seeds a Defaults holder from the privacy configuration.
func NewDefaults(cfg Privacy) *Defaults {
	return &Defaults{flags: cfg.Flags()}
}

// DefaultFlags returns the current defaults.
func (d *Defaults) DefaultFlags() models.PrivacyFlags {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.flags
}

// Set replaces the defaults.
func (d *Defaults) Set(flags models.PrivacyFlags) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flags = flags
}

// Flags converts the configured defaults into a flag record.
func (p Privacy) Flags() models.PrivacyFlags {
	return models.PrivacyFlags{
		DisallowPhoto:    p.DefaultDisallowPhoto,
		DisallowGender:   p.DefaultDisallowGender,
		DisallowBirthday: p.DefaultDisallowBirthday,
		DisallowAddress:  p.DefaultDisallowAddress,
		DisallowCompany:  p.DefaultDisallowCompany,
		DisallowTitle:    p.DefaultDisallowTitle,
	}
}
