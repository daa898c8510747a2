package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/card-privacy/models"
)

// PrivacyValidationService rejects malformed input before it reaches the
// wrapped PrivacyService.
type PrivacyValidationService struct {
	inner PrivacyService
}

func NewPrivacyValidationService() PrivacyServiceWrapper {
	return &PrivacyValidationService{}
}

func (v *PrivacyValidationService) Wrap(wrapped PrivacyService) PrivacyService {
	v.inner = wrapped
	return v
}

func (v *PrivacyValidationService) GetSettings(ctx context.Context, identifier string) (*models.PrivacySettings, error) {
	if err := validateIdentifier(identifier); err != nil {
		return nil, err
	}
	return v.inner.GetSettings(ctx, identifier)
}

// CreateSettings accepts an empty set of values: every flag then takes its
// default.
func (v *PrivacyValidationService) CreateSettings(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error) {
	if err := validateIdentifier(identifier); err != nil {
		return nil, err
	}
	if err := validateFlags(values); err != nil {
		return nil, err
	}
	return v.inner.CreateSettings(ctx, identifier, values)
}

func (v *PrivacyValidationService) UpdateSettings(ctx context.Context, identifier string, values models.FlagValues) (*models.PrivacySettings, error) {
	if err := validateIdentifier(identifier); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrValidationNoFlags
	}
	if err := validateFlags(values); err != nil {
		return nil, err
	}
	return v.inner.UpdateSettings(ctx, identifier, values)
}

func (v *PrivacyValidationService) DeleteSettings(ctx context.Context, identifier string) error {
	if err := validateIdentifier(identifier); err != nil {
		return err
	}
	return v.inner.DeleteSettings(ctx, identifier)
}

func (v *PrivacyValidationService) FindCards(ctx context.Context, identifier string) ([]models.ScanMatch, error) {
	if err := validateIdentifier(identifier); err != nil {
		return nil, err
	}
	return v.inner.FindCards(ctx, identifier)
}

func (v *PrivacyValidationService) Reprocess(ctx context.Context, identifier string) (models.ReprocessReport, error) {
	if err := validateIdentifier(identifier); err != nil {
		return models.ReprocessReport{}, err
	}
	return v.inner.Reprocess(ctx, identifier)
}

func (v *PrivacyValidationService) Actions(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error) {
	if err := validateIdentifier(identifier); err != nil {
		return nil, err
	}
	return v.inner.Actions(ctx, identifier, limit)
}

func validateIdentifier(identifier string) error {
	if strings.TrimSpace(identifier) == "" {
		return ErrValidationNoIdentifier
	}
	return nil
}

func validateFlags(values models.FlagValues) error {
	for f := range values {
		if _, err := models.ParseFlag(string(f)); err != nil {
			return err
		}
	}
	return nil
}
