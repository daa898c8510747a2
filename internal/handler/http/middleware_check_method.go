// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns a handler meant for [chi.Mux.MethodNotAllowed].
//
// A request whose path exists but whose method is not served is answered
// with 404 and a JSON error instead of chi's default 405, so callers cannot
// probe which paths exist. Subrouters with their own MethodNotAllowed
// handler (such as /privacy) are not affected.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.NewRouteContext()
		if router.Match(rctx, r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		writeError(w, r, ErrRouteNotFound)
	}
}
