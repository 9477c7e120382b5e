package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/users-api/internal/redact"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQueryThreshold is the duration after which a statement is
// logged at WARN.
const DefaultSlowQueryThreshold = 500 * time.Millisecond

// NewGormDB wraps an open *sql.DB in a GORM handle. The caller keeps
// ownership of sqlDB and closes it at shutdown.
func NewGormDB(sqlDB *sql.DB, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: NewSlogGormLogger(logger, DefaultSlowQueryThreshold),
		// Every store operation touches a single row or runs in an
		// explicit transaction.
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}
	return db, nil
}

// SlogGormLogger adapts gorm's logger interface to slog.
type SlogGormLogger struct {
	logger        *slog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*SlogGormLogger)(nil)

// NewSlogGormLogger creates a gorm logger that writes through logger.
// Statements are logged at DEBUG, slow statements at WARN and failures
// (other than record-not-found) at ERROR.
func NewSlogGormLogger(logger *slog.Logger, slowThreshold time.Duration) *SlogGormLogger {
	return &SlogGormLogger{
		logger:        logger.With(slog.String("component", "gorm")),
		level:         gormlogger.Info,
		slowThreshold: slowThreshold,
	}
}

// LogMode implements gormlogger.Interface.
func (l *SlogGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface.
func (l *SlogGormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Warn implements gormlogger.Interface.
func (l *SlogGormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Error implements gormlogger.Interface.
func (l *SlogGormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.ErrorContext(ctx, redact.String(fmt.Sprintf(msg, args...)))
	}
}

// Trace implements gormlogger.Interface.
func (l *SlogGormLogger) Trace(
	ctx context.Context,
	begin time.Time,
	fc func() (sql string, rowsAffected int64),
	err error,
) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	query, rows := fc()
	attrs := []slog.Attr{
		slog.Int64("duration_ms", elapsed.Milliseconds()),
		slog.Int64("rows", rows),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("sql", redact.String(query)))
		l.logger.LogAttrs(ctx, slog.LevelError, "database statement failed", attrs...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		attrs = append(attrs, slog.String("sql", redact.String(query)))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "slow database statement", attrs...)
	case l.level >= gormlogger.Info:
		attrs = append(attrs, slog.String("sql", query))
		l.logger.LogAttrs(ctx, slog.LevelDebug, "database statement", attrs...)
	}
}
