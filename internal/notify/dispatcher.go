package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DispatcherConfig holds configuration for the notification dispatcher.
type DispatcherConfig struct {
	// WorkerCount determines how many concurrent workers deliver messages.
	WorkerCount int

	// MaxAttempts is the total number of delivery attempts per message,
	// including the first one.
	MaxAttempts int

	// RetryDelay is how long a worker waits before retrying a failed
	// delivery.
	RetryDelay time.Duration
}

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		WorkerCount: 2,
		MaxAttempts: 4,
		RetryDelay:  60 * time.Second,
	}
}

// Dispatcher drains the queue with a pool of workers and delivers each
// message through the configured Sender. Failed deliveries are retried
// up to MaxAttempts times; a message that exhausts its attempts is
// logged and dropped.
type Dispatcher struct {
	queue      *Queue
	sender     Sender
	config     DispatcherConfig
	logger     *slog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDispatcher creates a dispatcher over the given queue and sender.
func NewDispatcher(queue *Queue, sender Sender, config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 2
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 4
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 60 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		queue:      queue,
		sender:     sender,
		config:     config,
		logger:     logger,
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	for i := 0; i < d.config.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop closes the queue, lets workers drain buffered messages, and waits
// for them to exit. In-flight retry waits are interrupted.
func (d *Dispatcher) Stop() {
	d.queue.Close()
	d.cancelFunc()
	d.wg.Wait()
}

// worker delivers messages from the queue until it is drained and closed.
func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	d.logger.Debug("starting notification worker", "worker_id", id)

	for msg := range d.queue.Chan() {
		d.deliver(msg, id)
	}

	d.logger.Debug("notification queue closed, stopping worker", "worker_id", id)
}

// deliver attempts delivery of one message with bounded retries.
func (d *Dispatcher) deliver(msg Message, workerID int) {
	log := d.logger.With(
		"message_id", msg.ID,
		"recipient", msg.Recipient,
		"subject", msg.Subject,
		"worker_id", workerID,
	)

	for attempt := 1; attempt <= d.config.MaxAttempts; attempt++ {
		err := d.sender.Send(d.ctx, msg)
		if err == nil {
			log.Info("notification delivered", "attempt", attempt)
			return
		}

		log.Warn("notification delivery failed",
			"attempt", attempt,
			"max_attempts", d.config.MaxAttempts,
			"error", err)

		if attempt == d.config.MaxAttempts {
			break
		}

		select {
		case <-d.ctx.Done():
			log.Warn("dispatcher stopping, abandoning message", "attempt", attempt)
			return
		case <-time.After(d.config.RetryDelay):
		}
	}

	log.Error("notification dropped after exhausting delivery attempts",
		"attempts", d.config.MaxAttempts)
}
