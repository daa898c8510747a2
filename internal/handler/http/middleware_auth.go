package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], and on success stores
// the normalized token subject in the request context under
// [utils.IdentifierCtxKey] before delegating to the next handler.
//
// Every failure is answered with HTTP 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		identifier := h.normalizeIdentifier(token.Identifier)
		log := logger.FromRequest(r).WithIdentifier(identifier)
		ctx = log.WithContext(context.WithValue(ctx, utils.IdentifierCtxKey, identifier))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withIdentifierOwner rejects requests whose {identifier} path parameter,
// once normalized, differs from the authenticated identifier.
func (h *Handler) withIdentifierOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := url.PathUnescape(chi.URLParam(r, "identifier"))
		if err != nil {
			writeError(w, r, ErrUnknownRoute)
			return
		}

		if !h.owns(r, raw) {
			writeError(w, r, ErrIdentifierMismatch)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withCollectionOwner rejects card requests outside the caller's own
// collections: the first segment of the collection path must be the
// authenticated identifier.
func (h *Handler) withCollectionOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, err := cardPath(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		owner, _, _ := strings.Cut(chi.URLParam(r, "*"), "/")
		owner, err = url.PathUnescape(owner)
		if err != nil || !h.owns(r, owner) {
			writeError(w, r, ErrIdentifierMismatch)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) owns(r *http.Request, identifier string) bool {
	subject, ok := utils.GetIdentifierFromContext(r.Context())
	return ok && h.normalizeIdentifier(identifier) == subject
}

// cardPath splits the wildcard of a /collections request into the
// collection path and the href.
func cardPath(r *http.Request) (collection, href string, err error) {
	rest, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		return "", "", ErrInvalidCardPath
	}
	rest = strings.Trim(rest, "/")

	i := strings.LastIndex(rest, "/")
	if i <= 0 || i == len(rest)-1 {
		return "", "", ErrInvalidCardPath
	}
	return rest[:i], rest[i+1:], nil
}
