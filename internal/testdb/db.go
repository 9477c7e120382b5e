package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/users-api/internal/platform/postgres"
	"github.com/phrazzld/users-api/internal/redact"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// Environment variables consulted for the test database URL, in order.
const (
	EnvTestDatabaseURL = "USERS_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// errRollback aborts a test transaction.
var errRollback = errors.New("testdb: rollback")

// DatabaseURL returns the first non-empty test database URL, or "".
func DatabaseURL() string {
	for _, name := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Open connects to the test database and applies the schema. The test is
// skipped when no URL is configured; the connection is closed on cleanup.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set; skipping database test", EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open %s", redact.String(dbURL))
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	require.NoError(t, postgres.Migrate(ctx, db, discardLogger()), "failed to migrate test database")
	return db
}

// Gorm wraps sqlDB in a GORM handle configured like the server's.
func Gorm(t *testing.T, sqlDB *sql.DB) *gorm.DB {
	t.Helper()
	db, err := postgres.NewGormDB(sqlDB, discardLogger())
	require.NoError(t, err)
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// leave no rows behind.
func WithTx(t *testing.T, db *gorm.DB, fn func(tx *gorm.DB)) {
	t.Helper()

	err := db.Transaction(func(tx *gorm.DB) error {
		fn(tx)
		return errRollback
	})
	if !errors.Is(err, errRollback) {
		require.NoError(t, err, "test transaction failed")
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
