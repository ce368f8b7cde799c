// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing the same services to run against
// an in-process store in tests and a SQL database in production.
package store
