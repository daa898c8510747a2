// Package phone normalises telephone numbers found on contact cards to the
// E.164 form used as a privacy settings key.
package phone

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used for numbers written without a country code.
const DefaultRegion = "US"

// ErrInvalidPhoneNumber is returned when a value cannot be parsed as a valid
// phone number for the configured region.
var ErrInvalidPhoneNumber = errors.New("invalid phone number")

var formatting = regexp.MustCompile(`[\s\-()]`)

// Normalizer converts raw phone values to E.164.
type Normalizer struct {
	region string
}

// NewNormalizer returns a Normalizer that assumes region for numbers without
// a leading "+<country code>". An empty region falls back to [DefaultRegion].
func NewNormalizer(region string) *Normalizer {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}

	return &Normalizer{region: region}
}

// Normalize returns raw in E.164 form, e.g. "+1 (650) 253-0000" becomes
// "+16502530000".
func (n *Normalizer) Normalize(raw string) (string, error) {
	cleaned := formatting.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidPhoneNumber)
	}

	num, err := phonenumbers.Parse(cleaned, n.region)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidPhoneNumber, raw, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhoneNumber, raw)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// NormalizeOrRaw returns the E.164 form of raw, or raw itself when it cannot
// be normalised.
func (n *Normalizer) NormalizeOrRaw(raw string) string {
	normalized, err := n.Normalize(raw)
	if err != nil {
		return raw
	}
	return normalized
}

// LooksLikePhone reports whether value is a phone number rather than an
// email address.
func LooksLikePhone(value string) bool {
	return value != "" && !strings.Contains(value, "@")
}
