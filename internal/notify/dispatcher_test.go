package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSender counts attempts per message and fails the first
// failuresBefore attempts.
type recordingSender struct {
	mu             sync.Mutex
	attempts       map[string]int
	failuresBefore int
	delivered      chan Message
}

func newRecordingSender(failuresBefore int) *recordingSender {
	return &recordingSender{
		attempts:       make(map[string]int),
		failuresBefore: failuresBefore,
		delivered:      make(chan Message, 16),
	}
}

func (s *recordingSender) Send(ctx context.Context, msg Message) error {
	s.mu.Lock()
	s.attempts[msg.ID.String()]++
	count := s.attempts[msg.ID.String()]
	s.mu.Unlock()

	if count <= s.failuresBefore {
		return errors.New("transient smtp failure")
	}
	s.delivered <- msg
	return nil
}

func (s *recordingSender) attemptCount(msg Message) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[msg.ID.String()]
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func TestDispatcherDeliversMessage(t *testing.T) {
	t.Parallel()

	q := NewQueue(4)
	sender := newRecordingSender(0)
	d := NewDispatcher(q, sender, DispatcherConfig{
		WorkerCount: 1,
		MaxAttempts: 4,
		RetryDelay:  time.Millisecond,
	}, testLogger())
	d.Start()
	defer d.Stop()

	msg := NewMessage("alice@example.com", "Hello", "Body")
	require.NoError(t, q.Enqueue(context.Background(), msg))

	select {
	case got := <-sender.delivered:
		assert.Equal(t, msg.ID, got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestDispatcherRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	q := NewQueue(4)
	sender := newRecordingSender(2) // fail twice, succeed on the third try
	d := NewDispatcher(q, sender, DispatcherConfig{
		WorkerCount: 1,
		MaxAttempts: 4,
		RetryDelay:  time.Millisecond,
	}, testLogger())
	d.Start()
	defer d.Stop()

	msg := NewMessage("alice@example.com", "Hello", "Body")
	require.NoError(t, q.Enqueue(context.Background(), msg))

	select {
	case <-sender.delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not delivered after retries")
	}
	assert.Equal(t, 3, sender.attemptCount(msg))
}

func TestDispatcherDropsAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	q := NewQueue(4)
	sender := newRecordingSender(100) // never succeeds
	d := NewDispatcher(q, sender, DispatcherConfig{
		WorkerCount: 1,
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
	}, testLogger())
	d.Start()

	msg := NewMessage("alice@example.com", "Hello", "Body")
	require.NoError(t, q.Enqueue(context.Background(), msg))

	assert.Eventually(t, func() bool {
		return sender.attemptCount(msg) == 3
	}, 2*time.Second, 5*time.Millisecond)

	d.Stop()

	assert.Equal(t, 3, sender.attemptCount(msg))
	assert.Len(t, sender.delivered, 0)
}

func TestDispatcherStopDrainsBufferedMessages(t *testing.T) {
	t.Parallel()

	q := NewQueue(8)
	sender := newRecordingSender(0)
	d := NewDispatcher(q, sender, DispatcherConfig{
		WorkerCount: 2,
		MaxAttempts: 1,
		RetryDelay:  time.Millisecond,
	}, testLogger())

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(ctx, NewMessage("a@b.co", "s", "b")))
	}

	d.Start()
	d.Stop()

	assert.Len(t, sender.delivered, 5)
}

func TestDefaultDispatcherConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultDispatcherConfig()
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, 60*time.Second, cfg.RetryDelay)
}
