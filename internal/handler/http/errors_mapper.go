package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/card-privacy/internal/card"
	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/privacy"
	"github.com/MKhiriev/card-privacy/internal/service"
	"github.com/MKhiriev/card-privacy/internal/store"
	"github.com/MKhiriev/card-privacy/internal/utils"
	"github.com/MKhiriev/card-privacy/models"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrIdentifierMismatch:         http.StatusForbidden,
	ErrEmptyBody:                  http.StatusBadRequest,
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrUnknownRoute:               http.StatusBadRequest,
	ErrInvalidCardPath:            http.StatusBadRequest,
	ErrIntegrityCheckFailed:       http.StatusBadRequest,
	ErrInvalidLimit:               http.StatusBadRequest,
	ErrRouteNotFound:              http.StatusNotFound,
	ErrInvalidGzip:                http.StatusBadRequest,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrSettingsNotFound:        http.StatusNotFound,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrValidationNoIdentifier:  http.StatusBadRequest,
	service.ErrValidationNoFlags:       http.StatusBadRequest,
	service.ErrValidationNoCollection:  http.StatusBadRequest,
	service.ErrValidationNoHref:        http.StatusBadRequest,
	service.ErrValidationEmptyCard:     http.StatusBadRequest,
	service.ErrNotAContact:             http.StatusBadRequest,

	models.ErrUnknownPrivacyFlag: http.StatusBadRequest,
	card.ErrMalformedItem:        http.StatusBadRequest,

	store.ErrPrivacySettingsAlreadyExist: http.StatusConflict,
	store.ErrInvalidFieldName:            http.StatusBadRequest,
	store.ErrEmptyIdentifier:             http.StatusBadRequest,
	store.ErrCollectionNotFound:          http.StatusNotFound,
	store.ErrCardNotFound:                http.StatusNotFound,
	store.ErrUnsafePath:                  http.StatusBadRequest,
	store.ErrEnforcementFailed:           http.StatusInternalServerError,

	privacy.ErrScanFailed:   http.StatusInternalServerError,
	privacy.ErrPolicyLookup: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// outerErrors wrap lower level errors that may be mapped themselves. They
// are matched first so the status does not depend on map order.
var outerErrors = []error{
	privacy.ErrScanFailed,
	privacy.ErrPolicyLookup,
	store.ErrEnforcementFailed,
}

func statusFromError(err error) int {
	for _, target := range outerErrors {
		if errors.Is(err, target) {
			return errorStatusMap[target]
		}
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the status mapped from err. Internal errors are
// not described to the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		message = http.StatusText(status)
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, message, status)
}
