// Package notify implements asynchronous email notification delivery.
// Notifications are enqueued by the service layer onto an in-memory
// buffered queue and delivered by a pool of dispatcher workers, with
// bounded retries on failure. The package also contains the daily
// overdue-task digest job and the scheduler that fires it.
package notify
