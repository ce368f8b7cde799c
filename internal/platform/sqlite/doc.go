// Package sqlite provides SQLite implementations of the store interfaces
// using the pure-Go modernc.org/sqlite driver. It is the single-file
// persistent backend; the schema is applied with goose on Open.
package sqlite
