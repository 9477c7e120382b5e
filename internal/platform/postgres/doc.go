// Package postgres provides the PostgreSQL implementation of store.UserStore.
// Rows are mapped to domain entities with GORM on top of a pgx-backed
// *sql.DB; the schema itself comes from the goose migrations embedded in
// this package.
package postgres
