// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/card-privacy/internal/logger"
)

// DefaultQueueSize is used when a ReprocessWorker is built with a
// non-positive queue size.
const DefaultQueueSize = 64

// ReprocessWorker drains a bounded queue of identifiers and reprocesses
// them one at a time. An identifier already waiting in the queue is not
// queued twice.
type ReprocessWorker struct {
	reprocessor Reprocessor
	queue       chan string
	timeout     time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	stopped bool

	logger *logger.Logger
}

// NewReprocessWorker builds a worker. timeout bounds a single run; zero
// means no bound.
func NewReprocessWorker(reprocessor Reprocessor, queueSize int, timeout time.Duration, logger *logger.Logger) *ReprocessWorker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &ReprocessWorker{
		reprocessor: reprocessor,
		queue:       make(chan string, queueSize),
		timeout:     timeout,
		pending:     make(map[string]struct{}),
		logger:      logger,
	}
}

// Enqueue schedules identifier for reprocessing without blocking.
func (w *ReprocessWorker) Enqueue(identifier string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return ErrWorkerStopped
	}
	if _, ok := w.pending[identifier]; ok {
		return nil
	}

	select {
	case w.queue <- identifier:
		w.pending[identifier] = struct{}{}
		return nil
	default:
		return ErrQueueFull
	}
}

// Run processes queued identifiers until ctx is done. Identifiers still
// queued at that point are dropped.
func (w *ReprocessWorker) Run(ctx context.Context) error {
	w.logger.Info().Int("queue_size", cap(w.queue)).Msg("reprocess worker started")
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Int("dropped", len(w.queue)).Msg("reprocess worker stopped")
			return nil
		case identifier := <-w.queue:
			w.mu.Lock()
			delete(w.pending, identifier)
			w.mu.Unlock()

			w.process(ctx, identifier)
		}
	}
}

func (w *ReprocessWorker) process(ctx context.Context, identifier string) {
	log := w.logger.WithIdentifier(identifier)
	ctx = log.WithContext(ctx)

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	report, err := w.reprocessor.Reprocess(ctx, identifier)
	if err != nil {
		log.Err(err).Str("func", "*ReprocessWorker.process").Msg("background reprocessing failed")
		return
	}
	if failed := report.Err(); failed != nil {
		log.Warn().Err(failed).Msg("background reprocessing finished with failures")
	}
}

func (w *ReprocessWorker) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
}
