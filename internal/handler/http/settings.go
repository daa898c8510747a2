package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/utils"
	"github.com/MKhiriev/card-privacy/models"
)

type statusResponse struct {
	Status string `json:"status"`
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	identifier := h.subject(r)

	settings, err := h.services.PrivacyService.GetSettings(r.Context(), identifier)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, settings, http.StatusOK)
}

func (h *Handler) createSettings(w http.ResponseWriter, r *http.Request) {
	values, err := decodeFlagValues(r)
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "*Handler.createSettings").Msg("invalid request body")
		writeError(w, r, err)
		return
	}

	if _, err = h.services.PrivacyService.CreateSettings(r.Context(), h.subject(r), values); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, statusResponse{Status: "created"}, http.StatusCreated)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	values, err := decodeFlagValues(r)
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "*Handler.updateSettings").Msg("invalid request body")
		writeError(w, r, err)
		return
	}

	if _, err = h.services.PrivacyService.UpdateSettings(r.Context(), h.subject(r), values); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, statusResponse{Status: "updated"}, http.StatusOK)
}

func (h *Handler) deleteSettings(w http.ResponseWriter, r *http.Request) {
	if err := h.services.PrivacyService.DeleteSettings(r.Context(), h.subject(r)); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, statusResponse{Status: "deleted"}, http.StatusOK)
}

// subject returns the authenticated identifier. Routes behind
// withIdentifierOwner address exactly this identifier, in normalized form.
func (h *Handler) subject(r *http.Request) string {
	identifier, _ := utils.GetIdentifierFromContext(r.Context())
	return identifier
}

// decodeFlagValues reads a JSON object of flag names to booleans.
func decodeFlagValues(r *http.Request) (models.FlagValues, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}

	var raw map[string]bool
	if err = json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if raw == nil {
		return nil, ErrInvalidJSON
	}

	return models.ParseFlagValues(raw)
}
