package users

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/config"
	"github.com/Raikerian/go-discord-bootstrap/internal/database"
)

// Module provides the user Repository.
var Module = fx.Module("users",
	fx.Provide(NewRepositoryProvider),
)

// NewRepositoryProvider creates a Repository with the configured cache size.
func NewRepositoryProvider(db *database.Database, cfg *config.Config, logger *zap.Logger) (*Repository, error) {
	size := cfg.Database.UserCacheSize
	if size <= 0 {
		logger.Warn("User cache size is not configured or is invalid, defaulting",
			zap.Int("configuredSize", size), zap.Int("default", config.DefaultUserCacheSize))
		size = config.DefaultUserCacheSize
	}

	return NewRepository(db, size, logger)
}
