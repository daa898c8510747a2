// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import (
	"context"

	"github.com/MKhiriev/card-privacy/models"
)

// Worker is the interface that must be implemented by any background worker.
// Run blocks until ctx is done or the worker fails.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// Reprocessor re-applies the current policy to the cards of an identifier.
type Reprocessor interface {
	Reprocess(ctx context.Context, identifier string) (models.ReprocessReport, error)
}
