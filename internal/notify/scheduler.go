package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// digestHour is the UTC hour at which the daily digest fires.
const digestHour = 6

// Scheduler runs the overdue digest once per day at a fixed UTC time.
type Scheduler struct {
	job        *DigestJob
	logger     *slog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	timeFunc   func() time.Time // Injectable for testing
}

// NewScheduler creates a Scheduler for the given digest job.
func NewScheduler(job *DigestJob, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		job:        job,
		logger:     logger,
		ctx:        ctx,
		cancelFunc: cancel,
		timeFunc:   time.Now,
	}
}

// Start launches the scheduling loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop cancels the scheduling loop and waits for it to exit. A digest
// pass already in progress runs to completion.
func (s *Scheduler) Stop() {
	s.cancelFunc()
	s.wg.Wait()
}

// loop sleeps until the next firing time, runs the digest, and repeats.
func (s *Scheduler) loop() {
	defer s.wg.Done()

	for {
		next := nextRun(s.timeFunc().UTC())
		wait := time.Until(next)

		s.logger.Info("overdue digest scheduled",
			"next_run", next,
			"wait", wait)

		timer := time.NewTimer(wait)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			s.logger.Debug("stopping digest scheduler")
			return
		case <-timer.C:
		}

		if err := s.job.Run(s.ctx); err != nil {
			s.logger.Error("overdue digest run failed", "error", err)
		}
	}
}

// nextRun returns the next occurrence of the digest hour strictly after now.
func nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), digestHour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
