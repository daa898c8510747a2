package http

import (
	"bytes"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/utils"
)

const contentHashHeader = "X-Content-SHA256"

// withContentHash verifies the optional X-Content-SHA256 header against the
// request body. Requests without the header pass unchecked.
func withContentHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := strings.ToLower(strings.TrimSpace(r.Header.Get(contentHashHeader)))
		if expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		// read bytes from body
		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "withContentHash").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		hashedBody := hex.EncodeToString(utils.Hash(body))
		if hashedBody != expected {
			log.Error().Str("func", "withContentHash").
				Str("hash from request", expected).
				Str("hashed body", hashedBody).
				Msg("hashes are not equal")
			writeError(w, r, ErrIntegrityCheckFailed)
			return
		}

		next.ServeHTTP(w, r)
	})
}
