package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// Identifier is the subject of the token: the email address or phone number
// whose privacy settings the bearer is allowed to manage.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// Identifier is a cached copy of the "sub" claim.
	Identifier string `json:"-"`
}

// GetIdentifier extracts the identifier from the token's "sub" claim.
func (t *Token) GetIdentifier() (string, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting identifier from token: %w", err)
	}
	if subject == "" {
		return "", fmt.Errorf("error extracting identifier from token: empty subject")
	}

	return subject, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
