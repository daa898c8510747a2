package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/utils"
)

type storedCardResponse struct {
	Status string `json:"status"`
	UID    string `json:"uid"`
}

func (h *Handler) putCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	collection, href, err := cardPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Str("func", "*Handler.putCard").Msg("failed to read request body")
		writeError(w, r, ErrEmptyBody)
		return
	}
	if len(body) == 0 {
		writeError(w, r, ErrEmptyBody)
		return
	}

	item, err := h.services.CardService.UploadCard(r.Context(), collection, href, body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, storedCardResponse{Status: "stored", UID: item.UID()}, http.StatusCreated)
}

func (h *Handler) getCard(w http.ResponseWriter, r *http.Request) {
	collection, href, err := cardPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.CardService.GetCard(r.Context(), collection, href)
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := item.Serialize()
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteVCard(w, body, http.StatusOK)
}
