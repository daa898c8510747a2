package privacy

import "errors"

var (
	// ErrScanFailed is returned by [Reprocessor.Reprocess] when the record
	// store could not be scanned. No card is touched in that case.
	ErrScanFailed = errors.New("scanning the record store failed")

	// ErrPolicyLookup is returned when the settings store fails while a
	// policy is being resolved.
	ErrPolicyLookup = errors.New("privacy policy lookup failed")
)

// Reasons attached to skipped or failed reprocessing results.
const (
	ReasonCollectionNotFound = "collection_not_found"
	ReasonCardNotFound       = "card_not_found"
	ReasonEnforcementFailed  = "enforcement_failed"
	ReasonPersistFailed      = "persist_failed"
	ReasonCanceled           = "canceled"
)
