package database

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/config"
)

// Module provides the Database and closes it on shutdown.
var Module = fx.Module("database",
	fx.Provide(NewFromConfig),
)

// NewFromConfig builds the Database from the application config and ties its
// Close to the Fx lifecycle.
func NewFromConfig(cfg *config.Config, lc fx.Lifecycle, logger *zap.Logger) (*Database, error) {
	db, err := New(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("Closing database...")

			return db.Close()
		},
	})

	return db, nil
}
