// Package database provides the GORM-backed persistence layer shared by
// all stores: connection management, generic repositories, and
// transaction scoping.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Database is the connection handle the stores operate through.
type Database interface {
	// Session returns a GORM session bound to ctx. When ctx carries an
	// open transaction the transaction session is returned instead, so
	// store calls inside WithTransaction share one transaction.
	Session(ctx context.Context) *gorm.DB
	// GORM returns the raw handle, bypassing any context transaction.
	// Used by migrations and schema validation only.
	GORM() *gorm.DB
	IsSQLite() bool
	IsPostgres() bool
	ConfigurePool(maxOpen, maxIdle int, maxLifetime time.Duration) error
	Close() error
}

type database struct {
	db      *gorm.DB
	dialect string
}

const (
	dialectSQLite   = "sqlite"
	dialectPostgres = "postgres"
)

// NewDatabase opens a connection for the given URL. Supported schemes
// are sqlite:// and postgres:// (postgresql://).
func NewDatabase(ctx context.Context, url string) (Database, error) {
	dialector, err := parseDialector(url)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector.dialector, &gorm.Config{
		Logger: slogGormLogger{},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db = db.WithContext(ctx)

	if dialector.name == dialectSQLite {
		// Serialized access avoids SQLITE_BUSY under concurrent workers.
		if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
			return nil, fmt.Errorf("configure sqlite: %w", err)
		}
	}

	return &database{db: db, dialect: dialector.name}, nil
}

type namedDialector struct {
	name      string
	dialector gorm.Dialector
}

func parseDialector(url string) (namedDialector, error) {
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		return namedDialector{name: dialectSQLite, dialector: sqlite.Open(path)}, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return namedDialector{name: dialectPostgres, dialector: postgres.Open(url)}, nil
	default:
		return namedDialector{}, errors.New("parse database url: unsupported database driver")
	}
}

func (d *database) Session(ctx context.Context) *gorm.DB {
	if tx := sessionFromContext(ctx); tx != nil {
		return tx
	}
	return d.db.WithContext(ctx)
}

func (d *database) GORM() *gorm.DB { return d.db }

func (d *database) IsSQLite() bool { return d.dialect == dialectSQLite }

func (d *database) IsPostgres() bool { return d.dialect == dialectPostgres }

// ConfigurePool applies connection pool limits to the underlying sql.DB.
func (d *database) ConfigurePool(maxOpen, maxIdle int, maxLifetime time.Duration) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("configure pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(maxLifetime)
	return nil
}

func (d *database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
