// Package privacy enforces per-identity privacy policies on contact cards.
//
// An [Enforcer] extracts the email addresses and phone numbers of a card,
// resolves the stored policies of those identities into one most
// restrictive policy and removes every property the policy disallows. A
// [Reprocessor] finds every stored card that references an identity with a
// [Scanner] and writes each one back through the enforcer, so a changed
// policy is applied to cards uploaded before the change.
package privacy
