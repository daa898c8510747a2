// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/utils"
	"github.com/MKhiriev/card-privacy/models"
)

type findCardsResponse struct {
	Matches []models.ScanMatch `json:"matches"`
}

type reprocessResponse struct {
	Status              string   `json:"status"`
	Total               int      `json:"total"`
	ReprocessedCards    int      `json:"reprocessed_cards"`
	ReprocessedCardUIDs []string `json:"reprocessed_card_uids"`
}

type statusLogResponse struct {
	Actions []models.ActionLogEntry `json:"actions"`
}

func (h *Handler) findCards(w http.ResponseWriter, r *http.Request) {
	matches, err := h.services.PrivacyService.FindCards(r.Context(), h.subject(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if matches == nil {
		matches = []models.ScanMatch{}
	}

	utils.WriteJSON(w, findCardsResponse{Matches: matches}, http.StatusOK)
}

// reprocessCards runs reprocessing synchronously. Cards that could not be
// located or updated do not fail the request; they only lower the count.
func (h *Handler) reprocessCards(w http.ResponseWriter, r *http.Request) {
	report, err := h.services.PrivacyService.Reprocess(r.Context(), h.subject(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if failed := report.Err(); failed != nil {
		logger.FromRequest(r).Warn().Err(failed).Str("func", "*Handler.reprocessCards").
			Int("failed", report.Count(models.OutcomeFailed)).
			Msg("some cards were not reprocessed")
	}

	uids := report.UpdatedUIDs()
	utils.WriteJSON(w, reprocessResponse{
		Status:              "success",
		Total:               report.Total,
		ReprocessedCards:    len(uids),
		ReprocessedCardUIDs: uids,
	}, http.StatusOK)
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			writeError(w, r, ErrInvalidLimit)
			return
		}
		limit = parsed
	}

	actions, err := h.services.PrivacyService.Actions(r.Context(), h.subject(r), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if actions == nil {
		actions = []models.ActionLogEntry{}
	}

	utils.WriteJSON(w, statusLogResponse{Actions: actions}, http.StatusOK)
}

func (h *Handler) unknownPrivacyRoute(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, ErrUnknownRoute)
}
