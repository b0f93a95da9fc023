// Package service provides application-level services for managing users,
// projects, and tasks. Services enforce ownership rules, coordinate
// transactions, and decide which notifications to emit; persistence lives
// in the store layer and transport concerns in the api layer.
package service
