package notify

import (
	"fmt"
	"strings"

	"github.com/aadi101204/Task-Manager-Api/internal/domain"
)

// TaskAssignedMessage builds the notification sent to a user when a task
// is assigned to them.
func TaskAssignedMessage(recipient string, task *domain.Task) Message {
	subject := fmt.Sprintf("New Task Assigned: %s", task.Title)
	body := fmt.Sprintf("You have been assigned a new task '%s' (ID: %s).", task.Title, task.ID)
	return NewMessage(recipient, subject, body)
}

// TaskStatusChangedMessage builds the notification sent to a task's
// assignee when the task's status changes.
func TaskStatusChangedMessage(recipient string, task *domain.Task) Message {
	subject := fmt.Sprintf("Task Status Updated: %s", task.Title)
	body := fmt.Sprintf(
		"The status of your task '%s' (ID: %s) has been updated to: %s.",
		task.Title, task.ID, task.Status)
	return NewMessage(recipient, subject, body)
}

// OverdueDigestMessage builds the daily digest email listing a user's
// overdue tasks. Tasks without a due date never appear here; the query
// that feeds this requires due_date in the past.
func OverdueDigestMessage(user *domain.User, tasks []*domain.Task) Message {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.UTC().Format("2006-01-02")
		}
		lines = append(lines, fmt.Sprintf("- %s (Due: %s)", t.Title, due))
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYou have %d overdue task(s):\n\n%s\n\nPlease take action as soon as possible.\n\nBest regards,\nTask Manager Team",
		user.Username, len(tasks), strings.Join(lines, "\n"))

	return NewMessage(user.Email, "Daily Overdue Task Summary", body)
}
