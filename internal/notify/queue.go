package notify

import (
	"context"
	"errors"
	"sync"
)

// Queue errors returned by Enqueue.
var (
	// ErrQueueFull indicates the queue buffer is at capacity.
	ErrQueueFull = errors.New("notification queue is full")

	// ErrQueueClosed indicates the queue has been shut down.
	ErrQueueClosed = errors.New("notification queue is closed")
)

// Queue is a bounded in-memory message queue backed by a buffered channel.
// Enqueue never blocks; when the buffer is full the message is rejected
// with ErrQueueFull and the caller decides whether that matters.
type Queue struct {
	ch     chan Message
	mu     sync.Mutex
	closed bool
}

var _ Enqueuer = (*Queue)(nil)

// NewQueue creates a Queue with the given buffer capacity.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 100
	}
	return &Queue{
		ch: make(chan Message, size),
	}
}

// Enqueue implements Enqueuer.
func (q *Queue) Enqueue(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ch <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Chan exposes the receive side of the queue for dispatcher workers.
func (q *Queue) Chan() <-chan Message {
	return q.ch
}

// Close shuts down the queue. Subsequent Enqueue calls return
// ErrQueueClosed; messages already buffered remain readable until
// drained. Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}
