package models

// IdentifierKind tells where an identifier was found on a card.
type IdentifierKind string

const (
	IdentifierEmail IdentifierKind = "email"
	IdentifierPhone IdentifierKind = "phone"
)

// Identifier is an email or phone value taken from a card and used as a
// policy lookup key. Phone values are E.164 when normalisation succeeded and
// the raw card value otherwise.
type Identifier struct {
	Kind  IdentifierKind `json:"kind"`
	Value string         `json:"value"`
}
