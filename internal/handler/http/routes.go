package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Get("/api/version", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/privacy", func(r chi.Router) {
			r.Route("/settings/{identifier}", func(r chi.Router) {
				r.Use(h.withIdentifierOwner)
				r.Get("/", h.getSettings)
				r.Post("/", h.createSettings)
				r.Put("/", h.updateSettings)
				r.Delete("/", h.deleteSettings)
			})
			r.With(h.withIdentifierOwner).Get("/cards/{identifier}", h.findCards)
			r.With(h.withIdentifierOwner).Post("/cards/{identifier}/reprocess", h.reprocessCards)
			r.With(h.withIdentifierOwner).Get("/status/{identifier}", h.getStatus)

			r.NotFound(h.unknownPrivacyRoute)
			r.MethodNotAllowed(h.unknownPrivacyRoute)
		})

		r.Route("/collections", func(r chi.Router) {
			r.Use(withGZip)
			// the wildcard param is only set once the route is matched
			r.With(h.withCollectionOwner, withContentHash).Put("/*", h.putCard)
			r.With(h.withCollectionOwner).Get("/*", h.getCard)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, ErrRouteNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
