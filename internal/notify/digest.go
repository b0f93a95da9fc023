package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aadi101204/Task-Manager-Api/internal/store"
)

// DigestJob assembles and enqueues the daily overdue-task summary email
// for every user that has overdue tasks assigned to them.
type DigestJob struct {
	userStore store.UserStore
	taskStore store.TaskStore
	enqueuer  Enqueuer
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
}

// NewDigestJob creates a DigestJob over the given stores and queue.
func NewDigestJob(
	userStore store.UserStore,
	taskStore store.TaskStore,
	enqueuer Enqueuer,
	logger *slog.Logger,
) *DigestJob {
	return &DigestJob{
		userStore: userStore,
		taskStore: taskStore,
		enqueuer:  enqueuer,
		logger:    logger,
		timeFunc:  time.Now,
	}
}

// Run executes one digest pass. A failure for one user is logged and does
// not stop the pass for the remaining users; Run only returns an error
// when the user listing itself fails.
func (j *DigestJob) Run(ctx context.Context) error {
	now := j.timeFunc().UTC()

	users, err := j.userStore.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for overdue digest: %w", err)
	}

	j.logger.Info("starting overdue task digest", "user_count", len(users))

	sent := 0
	for _, user := range users {
		tasks, err := j.taskStore.ListOverdueForAssignee(ctx, user.ID, now)
		if err != nil {
			j.logger.Error("failed to list overdue tasks for user",
				"user_id", user.ID,
				"error", err)
			continue
		}

		if len(tasks) == 0 {
			continue
		}

		msg := OverdueDigestMessage(user, tasks)
		if err := j.enqueuer.Enqueue(ctx, msg); err != nil {
			j.logger.Error("failed to enqueue overdue digest",
				"user_id", user.ID,
				"message_id", msg.ID,
				"error", err)
			continue
		}
		sent++
	}

	j.logger.Info("overdue task digest complete",
		"user_count", len(users),
		"digests_enqueued", sent)

	return nil
}
