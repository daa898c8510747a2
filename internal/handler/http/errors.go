// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)

// Request errors.
var (
	// ErrIdentifierMismatch is returned when the identifier addressed by the
	// request is not the one the token was issued for.
	ErrIdentifierMismatch = errors.New("identifier does not match the authenticated user")

	ErrEmptyBody   = errors.New("empty request body")
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrUnknownRoute is returned for any /privacy path that is not part of
	// the API.
	ErrUnknownRoute = errors.New("unknown privacy API path")

	ErrInvalidCardPath      = errors.New("card path must be /collections/{owner}/{collection...}/{href}")
	ErrIntegrityCheckFailed = errors.New("integrity check failed")
	ErrInvalidLimit         = errors.New("invalid limit")
)

// ErrRouteNotFound is answered for any method and path pair the router does
// not serve.
var ErrRouteNotFound = errors.New("route not found")

// ErrInvalidGzip is returned when a request declares gzip content encoding
// but its body cannot be decompressed.
var ErrInvalidGzip = errors.New("invalid gzip data")
