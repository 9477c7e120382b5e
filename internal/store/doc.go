// Package store defines the persistence gateway for users. The interface
// hides the backing database from the HTTP layer; implementations live in
// internal/platform/postgres and internal/store/memory.
package store
