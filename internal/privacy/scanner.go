package privacy

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/models"
)

const (
	fieldEmail = "email"
	fieldTel   = "tel"
)

// Scanner searches the whole record store for cards referencing an
// identifier. There is no index; every card of every collection is read.
type Scanner struct {
	storage   card.Storage
	extractor *Extractor
}

// NewScanner returns a Scanner over storage.
func NewScanner(storage card.Storage, extractor *Extractor) *Scanner {
	return &Scanner{storage: storage, extractor: extractor}
}

// Scan returns a match for every contact card whose email equals
// identifier or whose normalized phone number equals identifier. The
// identifier is compared as given; callers normalize it beforehand. Matches
// are ordered by collection path, then by href. Any store failure aborts the
// scan with [ErrScanFailed].
func (s *Scanner) Scan(ctx context.Context, identifier string) ([]models.ScanMatch, error) {
	log := logger.FromContext(ctx)

	collections, err := s.storage.Discover(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanFailed, err)
	}

	matches := make([]models.ScanMatch, 0)
	for _, collection := range collections {
		items, err := collection.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: collection %s: %w", ErrScanFailed, collection.Path(), err)
		}

		for _, item := range items {
			match, ok := s.match(item, identifier)
			if !ok {
				continue
			}
			if match.VCardUID == "" {
				log.Warn().Str("collection", collection.Path()).Str("href", item.Href).Msg("matching card has no UID, ignoring")
				continue
			}
			match.CollectionPath = collection.Path()
			matches = append(matches, match)
		}
	}

	log.Debug().Int("matches", len(matches)).Int("collections", len(collections)).Msg("record store scanned")
	return matches, nil
}

func (s *Scanner) match(item *card.Item, identifier string) (models.ScanMatch, bool) {
	if !item.IsContact() {
		return models.ScanMatch{}, false
	}

	emails := s.extractor.Emails(item)
	phones := s.extractor.Phones(item)

	var matching []string
	if lo.Contains(emails, identifier) {
		matching = append(matching, fieldEmail)
	}
	if lo.Contains(phones, identifier) {
		matching = append(matching, fieldTel)
	}
	if len(matching) == 0 {
		return models.ScanMatch{}, false
	}

	fields := make(map[string][]string, 2)
	if len(emails) > 0 {
		fields[fieldEmail] = emails
	}
	if len(phones) > 0 {
		fields[fieldTel] = phones
	}

	return models.ScanMatch{
		VCardUID:       item.UID(),
		MatchingFields: matching,
		Fields:         fields,
	}, true
}
