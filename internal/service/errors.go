package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrSettingsNotFound = errors.New("privacy settings not found")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrValidationNoIdentifier = errors.New("no identifier provided")
	ErrValidationNoFlags      = errors.New("no privacy flags provided")
	ErrValidationNoCollection = errors.New("no collection path provided")
	ErrValidationNoHref       = errors.New("no href provided")
	ErrValidationEmptyCard    = errors.New("empty card body")

	// ErrNotAContact is returned when a card upload carries something other
	// than a vCard.
	ErrNotAContact = errors.New("document is not a vcard")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
