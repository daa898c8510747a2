// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the card-privacy HTTP API.
//
// The primary abstraction is [PrivacyClient], which decouples command-line
// tooling from the underlying protocol. Error values defined in errors.go
// are mapped from HTTP status codes by mapHTTPError so that callers can use
// [errors.Is] for transport-agnostic error handling (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/card-privacy/models"
)

// PrivacyClient talks to a card-privacy server on behalf of one identifier
// at a time. Every call except Version needs a bearer token set with
// SetToken.
type PrivacyClient interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored, or "".
	Token() string

	// Version returns the server version. It needs no token.
	Version(ctx context.Context) (string, error)

	GetSettings(ctx context.Context, identifier string) (models.PrivacySettings, error)

	// CreateSettings creates the settings of identifier. Flags missing from
	// values take the server defaults.
	CreateSettings(ctx context.Context, identifier string, values map[string]bool) error

	// UpdateSettings changes only the flags present in values.
	UpdateSettings(ctx context.Context, identifier string, values map[string]bool) error

	DeleteSettings(ctx context.Context, identifier string) error

	// FindCards lists the stored cards that reference identifier.
	FindCards(ctx context.Context, identifier string) ([]models.ScanMatch, error)

	// Reprocess re-applies the current policy of identifier to its cards.
	Reprocess(ctx context.Context, identifier string) (ReprocessSummary, error)

	// Status returns the most recent action log entries of identifier. A
	// zero limit uses the server default.
	Status(ctx context.Context, identifier string, limit uint64) ([]models.ActionLogEntry, error)

	// PutCard stores a vCard under collectionPath/href and returns its UID.
	PutCard(ctx context.Context, collectionPath, href string, body []byte) (string, error)

	// GetCard returns the stored vCard text.
	GetCard(ctx context.Context, collectionPath, href string) ([]byte, error)
}

// ReprocessSummary is the server answer to a reprocessing request.
type ReprocessSummary struct {
	Status              string   `json:"status"`
	Total               int      `json:"total"`
	ReprocessedCards    int      `json:"reprocessed_cards"`
	ReprocessedCardUIDs []string `json:"reprocessed_card_uids"`
}
