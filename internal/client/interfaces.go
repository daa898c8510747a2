// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/card-privacy/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command line args and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// TokenIssuer mints bearer tokens for an identifier.
type TokenIssuer interface {
	CreateToken(ctx context.Context, identifier string) (models.Token, error)
}
