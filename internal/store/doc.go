// Package store provides abstractions for data persistence. It defines the
// interfaces the service layer depends on, a shared error taxonomy, and a
// transaction helper. Concrete implementations live under
// internal/platform/postgres.
package store
