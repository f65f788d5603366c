package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no record exists for a username.
var ErrNotFound = errors.New("user not found")

// Conn hands out database sessions. *database.Database implements it.
type Conn interface {
	Conn(ctx context.Context) (*gorm.DB, error)
}

// Repository reads and writes User rows, caching lookups by username.
type Repository struct {
	conn   Conn
	cache  *lru.Cache[string, User]
	logger *zap.Logger
}

// NewRepository returns a Repository with an LRU cache of cacheSize entries.
func NewRepository(conn Conn, cacheSize int, logger *zap.Logger) (*Repository, error) {
	cache, err := lru.New[string, User](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create user cache: %w", err)
	}

	return &Repository{
		conn:   conn,
		cache:  cache,
		logger: logger.Named("users"),
	}, nil
}

// Upsert creates the user or updates its birthday.
func (r *Repository) Upsert(ctx context.Context, username string, birthday *time.Time) (User, error) {
	db, err := r.conn.Conn(ctx)
	if err != nil {
		return User{}, err
	}

	u := User{Username: username, Birthday: birthday}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"birthday", "updated_at"}),
	}).Create(&u).Error
	if err != nil {
		return User{}, fmt.Errorf("failed to upsert user %q: %w", username, err)
	}

	// The conflict path does not populate the primary key.
	var stored User
	if err := db.Where("username = ?", username).Take(&stored).Error; err != nil {
		return User{}, fmt.Errorf("failed to reload user %q: %w", username, err)
	}
	r.cache.Add(username, stored)
	r.logger.Debug("Stored user", zap.String("username", username), zap.Uint("id", stored.ID))

	return stored, nil
}

// FindByUsername returns the stored user or ErrNotFound.
func (r *Repository) FindByUsername(ctx context.Context, username string) (User, error) {
	if u, ok := r.cache.Get(username); ok {
		return u, nil
	}

	db, err := r.conn.Conn(ctx)
	if err != nil {
		return User{}, err
	}

	var u User
	err = db.Where("username = ?", username).Take(&u).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return User{}, ErrNotFound
	case err != nil:
		return User{}, fmt.Errorf("failed to find user %q: %w", username, err)
	}
	r.cache.Add(username, u)

	return u, nil
}

// Schema lists the models owned by this package, for migration.
func Schema() []any {
	return []any{&User{}}
}
