package main

import (
	"strings"

	"github.com/vantahq/jobscout"
	"github.com/vantahq/jobscout/internal/config"
)

// clientOptions returns the jobscout.Option slice derived from AppConfig:
// database storage, worker pool, scheduler, and provider settings.
// Callers append entrypoint-specific options (logger, HTTP client)
// before passing the full slice to jobscout.New.
func clientOptions(cfg config.AppConfig) []jobscout.Option {
	opts := []jobscout.Option{
		jobscout.WithDataDir(cfg.DataDir()),
		jobscout.WithStorageDir(cfg.StorageDir()),
		jobscout.WithSchedulerConfig(cfg.Scheduler()),
		jobscout.WithProviderConfig(cfg.Provider()),
	}

	opts = append(opts, storageOptions(cfg)...)

	if cfg.WorkerCount() > 0 {
		opts = append(opts, jobscout.WithWorkerCount(cfg.WorkerCount()))
	}
	if cfg.DigestLimit() > 0 {
		opts = append(opts, jobscout.WithDigestLimit(cfg.DigestLimit()))
	}

	return opts
}

// storageOptions returns the jobscout.Option for the configured database
// backend. An empty DB_URL defaults to a SQLite file under the data
// directory.
func storageOptions(cfg config.AppConfig) []jobscout.Option {
	dbURL := cfg.DBURL()

	if dbURL != "" && !isSQLite(dbURL) {
		return []jobscout.Option{jobscout.WithPostgres(dbURL)}
	}

	dbPath := cfg.DataDir() + "/jobscout.db"
	if dbURL != "" {
		dbPath = strings.TrimPrefix(dbURL, "sqlite://")
	}

	return []jobscout.Option{jobscout.WithSQLite(dbPath)}
}

// isSQLite checks if the database URL is for SQLite.
func isSQLite(url string) bool {
	return strings.HasPrefix(url, "sqlite:")
}
