// Package domain defines the core business entities of the task manager:
// users, projects, and the tasks that belong to them. Entities validate
// themselves; persistence and transport concerns live elsewhere.
package domain
