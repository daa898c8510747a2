package workers

import "errors"

var (
	// ErrQueueFull is returned by [ReprocessWorker.Enqueue] when the queue
	// has no free slot.
	ErrQueueFull = errors.New("reprocess queue is full")

	// ErrWorkerStopped is returned by [ReprocessWorker.Enqueue] after the
	// worker has stopped.
	ErrWorkerStopped = errors.New("reprocess worker stopped")
)
