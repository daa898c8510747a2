package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/card-privacy/internal/logger"
	"github.com/MKhiriev/card-privacy/models"
)

type mockReprocessor struct {
	mu    sync.Mutex
	calls []string
	block chan struct{}
	err   error
}

func (m *mockReprocessor) Reprocess(ctx context.Context, identifier string) (models.ReprocessReport, error) {
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return models.ReprocessReport{}, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, identifier)
	return models.ReprocessReport{Identifier: identifier}, m.err
}

func (m *mockReprocessor) called() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func runWorker(t *testing.T, w *ReprocessWorker) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- w.Run(ctx) }()
	return func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func TestReprocessWorker_ProcessesQueue(t *testing.T) {
	r := &mockReprocessor{}
	w := NewReprocessWorker(r, 4, time.Second, logger.Nop())
	stop := runWorker(t, w)
	defer stop()

	require.NoError(t, w.Enqueue("a@x.com"))
	require.NoError(t, w.Enqueue("+16502530000"))

	assert.Eventually(t, func() bool { return len(r.called()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"a@x.com", "+16502530000"}, r.called())
}

func TestReprocessWorker_QueueFull(t *testing.T) {
	w := NewReprocessWorker(&mockReprocessor{}, 2, 0, logger.Nop())

	require.NoError(t, w.Enqueue("a@x.com"))
	require.NoError(t, w.Enqueue("b@x.com"))
	assert.ErrorIs(t, w.Enqueue("c@x.com"), ErrQueueFull)
}

func TestReprocessWorker_DeduplicatesPending(t *testing.T) {
	w := NewReprocessWorker(&mockReprocessor{}, 1, 0, logger.Nop())

	require.NoError(t, w.Enqueue("a@x.com"))
	assert.NoError(t, w.Enqueue("a@x.com"), "already pending")
	assert.ErrorIs(t, w.Enqueue("b@x.com"), ErrQueueFull)
}

func TestReprocessWorker_RequeueAfterPickup(t *testing.T) {
	r := &mockReprocessor{block: make(chan struct{})}
	w := NewReprocessWorker(r, 1, 0, logger.Nop())
	stop := runWorker(t, w)
	defer stop()

	require.NoError(t, w.Enqueue("a@x.com"))
	// once picked up the identifier can be queued again
	require.Eventually(t, func() bool { return len(w.queue) == 0 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return w.Enqueue("a@x.com") == nil && len(w.queue) == 1
	}, time.Second, 5*time.Millisecond)

	close(r.block)
	assert.Eventually(t, func() bool { return len(r.called()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestReprocessWorker_ErrorsDoNotStopWorker(t *testing.T) {
	r := &mockReprocessor{err: errors.New("scan failed")}
	w := NewReprocessWorker(r, 4, 0, logger.Nop())
	stop := runWorker(t, w)
	defer stop()

	require.NoError(t, w.Enqueue("a@x.com"))
	require.NoError(t, w.Enqueue("b@x.com"))

	assert.Eventually(t, func() bool { return len(r.called()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestReprocessWorker_EnqueueAfterStop(t *testing.T) {
	w := NewReprocessWorker(&mockReprocessor{}, 0, 0, logger.Nop())
	assert.Equal(t, DefaultQueueSize, cap(w.queue))

	stop := runWorker(t, w)
	stop()

	assert.ErrorIs(t, w.Enqueue("a@x.com"), ErrWorkerStopped)
}
