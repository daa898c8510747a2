package http

import (
	"strings"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/phone"
	"github.com/MKhiriev/card-privacy/internal/service"
	"github.com/MKhiriev/card-privacy/internal/utils"
)

type Handler struct {
	services *service.Services

	// normalizer brings phone identifiers from paths and tokens to E.164 so
	// that "+1 650 253 0000" and "+16502530000" address the same record.
	normalizer *phone.Normalizer
	ids        *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, normalizer *phone.Normalizer, logger *logger.Logger) *Handler {
	if normalizer == nil {
		normalizer = phone.NewNormalizer(phone.DefaultRegion)
	}
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		normalizer: normalizer,
		ids:        utils.NewUUIDGenerator(),
		logger:     logger,
	}
}

// normalizeIdentifier trims value and normalizes it when it is a phone
// number. Emails are kept as given.
func (h *Handler) normalizeIdentifier(value string) string {
	value = strings.TrimSpace(value)
	if phone.LooksLikePhone(value) {
		return h.normalizer.NormalizeOrRaw(value)
	}
	return value
}
