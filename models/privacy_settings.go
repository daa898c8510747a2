// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownPrivacyFlag is returned when a flag name does not belong to
// [AllFlags].
var ErrUnknownPrivacyFlag = errors.New("unknown privacy flag")

// Flag names one of the six "disallow" switches of a privacy policy.
// The string value is the JSON key and the database column name.
type Flag string

const (
	FlagDisallowPhoto    Flag = "disallow_photo"
	FlagDisallowGender   Flag = "disallow_gender"
	FlagDisallowBirthday Flag = "disallow_birthday"
	FlagDisallowAddress  Flag = "disallow_address"
	FlagDisallowCompany  Flag = "disallow_company"
	FlagDisallowTitle    Flag = "disallow_title"
)

// AllFlags lists every recognised flag in a fixed order. Code that needs to
// walk a policy iterates this list together with [PrivacyFlags.Get] and
// [PrivacyFlags.Set].
var AllFlags = []Flag{
	FlagDisallowPhoto,
	FlagDisallowGender,
	FlagDisallowBirthday,
	FlagDisallowAddress,
	FlagDisallowCompany,
	FlagDisallowTitle,
}

// ParseFlag converts a raw flag name into a [Flag].
func ParseFlag(name string) (Flag, error) {
	for _, f := range AllFlags {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPrivacyFlag, name)
}

// FlagValues is a partial set of flag values, e.g. the body of a create or
// update request. Flags absent from the map are "not supplied".
type FlagValues map[Flag]bool

// ParseFlagValues validates raw flag names. The first unknown name aborts
// parsing with [ErrUnknownPrivacyFlag].
func ParseFlagValues(raw map[string]bool) (FlagValues, error) {
	values := make(FlagValues, len(raw))
	for name, v := range raw {
		f, err := ParseFlag(name)
		if err != nil {
			return nil, err
		}
		values[f] = v
	}
	return values, nil
}

// PrivacyFlags is the full set of "disallow" switches.
type PrivacyFlags struct {
	DisallowPhoto    bool `json:"disallow_photo"`
	DisallowGender   bool `json:"disallow_gender"`
	DisallowBirthday bool `json:"disallow_birthday"`
	DisallowAddress  bool `json:"disallow_address"`
	DisallowCompany  bool `json:"disallow_company"`
	DisallowTitle    bool `json:"disallow_title"`
}

// Get returns the value of flag f. Unknown flags read as false.
func (p PrivacyFlags) Get(f Flag) bool {
	switch f {
	case FlagDisallowPhoto:
		return p.DisallowPhoto
	case FlagDisallowGender:
		return p.DisallowGender
	case FlagDisallowBirthday:
		return p.DisallowBirthday
	case FlagDisallowAddress:
		return p.DisallowAddress
	case FlagDisallowCompany:
		return p.DisallowCompany
	case FlagDisallowTitle:
		return p.DisallowTitle
	}
	return false
}

// Set assigns flag f. Unknown flags are ignored.
func (p *PrivacyFlags) Set(f Flag, v bool) {
	switch f {
	case FlagDisallowPhoto:
		p.DisallowPhoto = v
	case FlagDisallowGender:
		p.DisallowGender = v
	case FlagDisallowBirthday:
		p.DisallowBirthday = v
	case FlagDisallowAddress:
		p.DisallowAddress = v
	case FlagDisallowCompany:
		p.DisallowCompany = v
	case FlagDisallowTitle:
		p.DisallowTitle = v
	}
}

// Apply overwrites the flags present in values and leaves the rest as is.
func (p *PrivacyFlags) Apply(values FlagValues) {
	for f, v := range values {
		p.Set(f, v)
	}
}

// Merge returns the most restrictive combination of p and other: a flag is
// set when it is set in either operand.
func (p PrivacyFlags) Merge(other PrivacyFlags) PrivacyFlags {
	merged := p
	for _, f := range AllFlags {
		merged.Set(f, p.Get(f) || other.Get(f))
	}
	return merged
}

// Enabled returns the flags that are set, in [AllFlags] order.
func (p PrivacyFlags) Enabled() []Flag {
	enabled := make([]Flag, 0, len(AllFlags))
	for _, f := range AllFlags {
		if p.Get(f) {
			enabled = append(enabled, f)
		}
	}
	return enabled
}

// AsMap renders the flags keyed by their names, mostly for logging.
func (p PrivacyFlags) AsMap() map[string]bool {
	m := make(map[string]bool, len(AllFlags))
	for _, f := range AllFlags {
		m[string(f)] = p.Get(f)
	}
	return m
}

// PrivacySettings is the stored policy of a single identifier (an email
// address or an E.164 phone number).
type PrivacySettings struct {
	// Identifier is the unique key of the record.
	Identifier string `json:"identifier"`

	PrivacyFlags

	// CreatedAt is set once when the record is inserted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt stays nil until the first update.
	UpdatedAt *time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the PrivacySettings model.
func (s PrivacySettings) TableName() string {
	return "user_privacy_settings"
}
