package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/store"
)

type cardService struct {
	collections CollectionStore
	logger      *logger.Logger
}

// NewCardService returns a CardService writing through collections. The
// store enforces privacy on every upload, so a card read back is already
// redacted.
func NewCardService(collections CollectionStore, logger *logger.Logger) CardService {
	return &cardService{collections: collections, logger: logger}
}

// UploadCard parses body as a vCard and stores it under href, creating the
// collection when it does not exist yet.
func (s *cardService) UploadCard(ctx context.Context, collectionPath, href string, body []byte) (*card.Item, error) {
	log := logger.FromContext(ctx).With().
		Str("collection", collectionPath).
		Str("href", href).
		Logger()

	if strings.Trim(collectionPath, "/") == "" {
		return nil, ErrValidationNoCollection
	}
	if href == "" {
		return nil, ErrValidationNoHref
	}
	if len(body) == 0 {
		return nil, ErrValidationEmptyCard
	}

	item, err := card.Parse(body)
	if err != nil {
		log.Warn().Err(err).Msg("rejecting malformed card")
		return nil, err
	}
	if !item.IsContact() {
		return nil, fmt.Errorf("%w: got %s", ErrNotAContact, item.Component)
	}

	collection, err := s.collection(ctx, collectionPath)
	if err != nil {
		return nil, err
	}

	stored, err := collection.Upload(ctx, href, item)
	if err != nil {
		log.Err(err).Str("func", "*cardService.UploadCard").Msg("error storing card")
		return nil, fmt.Errorf("error storing card: %w", err)
	}

	log.Info().Str("uid", stored.UID()).Msg("card stored")
	return stored, nil
}

func (s *cardService) GetCard(ctx context.Context, collectionPath, href string) (*card.Item, error) {
	if strings.Trim(collectionPath, "/") == "" {
		return nil, ErrValidationNoCollection
	}
	if href == "" {
		return nil, ErrValidationNoHref
	}

	collections, err := s.collections.Discover(ctx, collectionPath)
	if err != nil {
		return nil, err
	}
	if len(collections) == 0 {
		return nil, fmt.Errorf("%w: %s", store.ErrCollectionNotFound, collectionPath)
	}

	return collections[0].Get(ctx, href)
}

func (s *cardService) collection(ctx context.Context, collectionPath string) (card.Collection, error) {
	collections, err := s.collections.Discover(ctx, collectionPath)
	if err != nil {
		return nil, err
	}
	if len(collections) > 0 {
		return collections[0], nil
	}

	logger.FromContext(ctx).Info().Str("collection", collectionPath).Msg("creating collection")
	return s.collections.CreateCollection(ctx, collectionPath)
}
