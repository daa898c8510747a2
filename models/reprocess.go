// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"

	"go.uber.org/multierr"
)

// ScanMatch points at a stored card that references a given identity.
// It is produced by a scan and consumed straight away; it is never persisted.
type ScanMatch struct {
	// VCardUID is the UID property of the matched card.
	VCardUID string `json:"vcard_uid"`

	// CollectionPath is the slash separated path of the owning collection,
	// without leading or trailing slashes (e.g. "alice/contacts").
	CollectionPath string `json:"collection_path"`

	// MatchingFields lists the card fields ("email", "tel") whose value
	// equals the identity.
	MatchingFields []string `json:"matching_fields"`

	// Fields holds every identifying value of the card keyed by field name.
	Fields map[string][]string `json:"fields"`
}

// ReprocessOutcome is the terminal state of one match during reprocessing.
type ReprocessOutcome string

const (
	// OutcomeUpdated means the card was enforced and persisted.
	OutcomeUpdated ReprocessOutcome = "updated"

	// OutcomeSkipped means the collection or the card could not be located.
	OutcomeSkipped ReprocessOutcome = "skipped"

	// OutcomeFailed means enforcement or persistence failed.
	OutcomeFailed ReprocessOutcome = "failed"
)

// ReprocessResult describes what happened to a single match.
type ReprocessResult struct {
	Match   ScanMatch        `json:"match"`
	Outcome ReprocessOutcome `json:"outcome"`
	Reason  string           `json:"reason,omitempty"`
	Err     error            `json:"-"`
}

// ReprocessReport aggregates the per-match results of one reprocessing run.
type ReprocessReport struct {
	Identifier string            `json:"identifier"`
	Total      int               `json:"total"`
	Results    []ReprocessResult `json:"results"`
}

// UpdatedUIDs returns the UIDs of the cards that were persisted, in match
// order.
func (r ReprocessReport) UpdatedUIDs() []string {
	uids := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Outcome == OutcomeUpdated {
			uids = append(uids, res.Match.VCardUID)
		}
	}
	return uids
}

// Count returns the number of results with the given outcome.
func (r ReprocessReport) Count(outcome ReprocessOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Err combines the errors of all failed results. It is nil when nothing
// failed; skipped matches do not contribute.
func (r ReprocessReport) Err() error {
	var err error
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed && res.Err != nil {
			err = multierr.Append(err, res.Err)
		}
	}
	return err
}

// VCardAction names an entry of the reprocessing action log.
type VCardAction string

const (
	ActionReprocessStarted   VCardAction = "reprocess_started"
	ActionProcessed          VCardAction = "processed"
	ActionReprocessCompleted VCardAction = "reprocess_completed"
)

// ActionLogEntry is one row of the reprocessing action log.
type ActionLogEntry struct {
	ID             string          `json:"id"`
	Action         VCardAction     `json:"action"`
	Identifier     string          `json:"identifier"`
	VCardUID       string          `json:"vcard_uid,omitempty"`
	CollectionPath string          `json:"collection_path,omitempty"`
	Details        json.RawMessage `json:"details,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
