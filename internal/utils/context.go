// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, content hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentifierCtxKey is the key used to store the authenticated identifier
// (the JWT subject) in the context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.IdentifierCtxKey, "alice@example.com")
var IdentifierCtxKey = contextKey("identifier")

// GetIdentifierFromContext retrieves the authenticated identifier from the
// context.
//
// Returns the identifier and an ok flag:
//   - ok == true  — value is found, is a string and is not empty
//   - ok == false — value is missing, empty or has an unexpected type
func GetIdentifierFromContext(ctx context.Context) (string, bool) {
	identifier, ok := ctx.Value(IdentifierCtxKey).(string)
	return identifier, ok && identifier != ""
}
