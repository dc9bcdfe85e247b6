package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries worth surfacing at Warn level even
// when Debug logging is off. Board ingestion runs many small upserts;
// anything slower than this usually means a missing index.
const slowQueryThreshold = 500 * time.Millisecond

// slogGormLogger bridges GORM's logger.Interface onto slog. SQL
// statements surface as Debug records, so level filtering lives in the
// slog handler and the statement is never formatted when Debug is off.
type slogGormLogger struct{}

// LogMode is a no-op; slog decides what gets emitted.
func (l slogGormLogger) LogMode(logger.LogLevel) logger.Interface { return l }

func (l slogGormLogger) Info(_ context.Context, msg string, args ...any) {
	slog.Info(fmt.Sprintf(msg, args...))
}

func (l slogGormLogger) Warn(_ context.Context, msg string, args ...any) {
	slog.Warn(fmt.Sprintf(msg, args...))
}

func (l slogGormLogger) Error(_ context.Context, msg string, args ...any) {
	slog.Error(fmt.Sprintf(msg, args...))
}

// maxStatementLength caps how much SQL lands in a single log record.
const maxStatementLength = 200

func truncateStatement(sql string) string {
	if len(sql) <= maxStatementLength {
		return sql
	}
	half := (maxStatementLength - 3) / 2
	return sql[:half] + "..." + sql[len(sql)-half:]
}

// Trace runs after every SQL operation. ErrRecordNotFound is the normal
// "no rows" outcome of FindOne and stays at Debug level; everything else
// that errors is logged at Error with the offending statement.
func (l slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sql, rows := fc()
		slog.Error("query failed",
			"sql", truncateStatement(sql),
			"rows", rows,
			"duration", elapsed,
			"error", err,
		)
		return
	}

	if elapsed >= slowQueryThreshold {
		sql, rows := fc()
		slog.Warn("slow query",
			"sql", truncateStatement(sql),
			"rows", rows,
			"duration", elapsed,
		)
		return
	}

	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return
	}

	sql, rows := fc()
	slog.Debug("query",
		"sql", truncateStatement(sql),
		"rows", rows,
		"duration", elapsed,
	)
}
