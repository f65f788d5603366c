// Package database opens the local file-backed store used by the bot.
package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Raikerian/go-discord-bootstrap/internal/config"
)

// DialectSQLite is the only supported dialect.
const DialectSQLite = "sqlite"

// ErrNotConnected is returned by Conn before Authenticate has succeeded.
var ErrNotConnected = errors.New("database is not connected")

// Database is a lazily opened gorm connection. Nothing touches the storage
// file until Authenticate is called.
type Database struct {
	cfg    config.DatabaseConfig
	logger *zap.Logger

	mu sync.Mutex
	db *gorm.DB
}

// New validates cfg and returns an unopened Database.
func New(cfg config.DatabaseConfig, logger *zap.Logger) (*Database, error) {
	if cfg.Dialect != DialectSQLite {
		return nil, fmt.Errorf("unsupported database dialect %q (must be %q)", cfg.Dialect, DialectSQLite)
	}
	if cfg.Storage == "" {
		return nil, errors.New("database storage path is empty")
	}

	return &Database{
		cfg:    cfg,
		logger: logger.Named("database"),
	}, nil
}

// Authenticate opens the store if needed and verifies it answers.
func (d *Database) Authenticate(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		db, err := d.open()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", d.cfg.Storage, err)
		}
		d.db = db
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping %s: %w", d.cfg.Storage, err)
	}

	return nil
}

func (d *Database) open() (*gorm.DB, error) {
	if dir := filepath.Dir(d.cfg.Storage); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(d.cfg.Storage), &gorm.Config{
		Logger: NewGormLogger(d.logger, d.cfg.Logging, d.cfg.SlowThreshold),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// Conn returns a session bound to ctx.
func (d *Database) Conn(ctx context.Context) (*gorm.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil, ErrNotConnected
	}

	return d.db.WithContext(ctx), nil
}

// Migrate creates or updates the tables for models.
func (d *Database) Migrate(ctx context.Context, models ...any) error {
	db, err := d.Conn(ctx)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// Close releases the underlying connection pool. It is a no-op when the
// store was never opened.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	d.db = nil

	return sqlDB.Close()
}
