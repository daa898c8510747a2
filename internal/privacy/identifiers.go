package privacy

import (
	"strings"

	"github.com/emersion/go-vcard"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/internal/phone"
	"github.com/MKhiriev/card-privacy/models"
)

// Extractor pulls identifiers out of a card.
type Extractor struct {
	normalizer *phone.Normalizer
}

// NewExtractor returns an Extractor normalizing phone numbers with n. A nil
// n uses the default region.
func NewExtractor(n *phone.Normalizer) *Extractor {
	if n == nil {
		n = phone.NewNormalizer(phone.DefaultRegion)
	}
	return &Extractor{normalizer: n}
}

// Extract returns the emails of item followed by its phone numbers, in card
// order. Phones are E.164 when they parse and raw otherwise. Empty values
// are skipped and duplicates kept.
func (e *Extractor) Extract(item *card.Item) []models.Identifier {
	if !item.IsContact() {
		return nil
	}

	var ids []models.Identifier
	for _, email := range e.Emails(item) {
		ids = append(ids, models.Identifier{Kind: models.IdentifierEmail, Value: email})
	}
	for _, tel := range e.Phones(item) {
		ids = append(ids, models.Identifier{Kind: models.IdentifierPhone, Value: tel})
	}

	return ids
}

// Emails returns the email values of item as stored.
func (e *Extractor) Emails(item *card.Item) []string {
	return item.Values(vcard.FieldEmail)
}

// Phones returns the normalized phone values of item.
func (e *Extractor) Phones(item *card.Item) []string {
	raw := item.Values(vcard.FieldTelephone)
	phones := make([]string, 0, len(raw))
	for _, value := range raw {
		phones = append(phones, e.normalize(value))
	}
	return phones
}

func (e *Extractor) normalize(value string) string {
	// vCard 4 allows tel: URIs
	number := value
	if len(number) > 4 && strings.EqualFold(number[:4], "tel:") {
		number = number[4:]
	}

	normalized, err := e.normalizer.Normalize(number)
	if err != nil {
		return value
	}
	return normalized
}
