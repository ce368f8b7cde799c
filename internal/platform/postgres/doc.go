// Package postgres provides PostgreSQL implementations of the store
// interfaces, using pgx through database/sql. Schema changes are applied with
// goose from the embedded migrations package.
package postgres
