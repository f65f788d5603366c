// Package app provides the main application structure and lifecycle management.
package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/bot"
	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/config"
	"github.com/Raikerian/go-discord-bootstrap/internal/database"
	"github.com/Raikerian/go-discord-bootstrap/internal/discord"
	"github.com/Raikerian/go-discord-bootstrap/internal/events"
	"github.com/Raikerian/go-discord-bootstrap/internal/users"
)

// Module provides the Bootstrap and runs it as the start hook.
var Module = fx.Module("app",
	fx.Provide(NewBootstrapFromDeps),
	fx.Invoke(registerLifecycleHooks),
)

// Application represents the main application with its lifecycle.
type Application struct {
	app *fx.App
}

// New creates a new Application with the provided modules and options.
func New(modules ...fx.Option) *Application {
	return &Application{app: fx.New(modules...)}
}

// Err returns an error raised while building the dependency graph.
func (a *Application) Err() error {
	return a.app.Err()
}

// Start runs the start hooks, the bootstrap sequence included.
func (a *Application) Start(ctx context.Context) error {
	return a.app.Start(ctx)
}

// Done returns a channel that receives the shutdown signal.
func (a *Application) Done() <-chan fx.ShutdownSignal {
	return a.app.Wait()
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	return a.app.Stop(ctx)
}

// BootstrapParams holds dependencies for NewBootstrapFromDeps.
type BootstrapParams struct {
	fx.In

	Cfg        *config.Config
	DB         *database.Database
	Registry   *commands.Registry
	Commands   *commands.Loader
	Bus        *events.Bus
	Events     *events.Loader
	Dispatcher *bot.Dispatcher
	Gateway    *discord.Gateway
	Logger     *zap.Logger
}

// NewBootstrapFromDeps wires the Bootstrap from the application graph.
func NewBootstrapFromDeps(p BootstrapParams) *Bootstrap {
	return NewBootstrap(Steps{
		Database:      p.DB,
		Schema:        users.Schema(),
		CommandLoader: p.Commands,
		Registry:      p.Registry,
		EventLoader:   p.Events,
		Bus:           p.Bus,
		Dispatcher:    p.Dispatcher,
		Gateway:       p.Gateway,
	}, p.Cfg.Bootstrap, p.Logger)
}

// registerLifecycleHooks sets up the application lifecycle hooks.
func registerLifecycleHooks(lc fx.Lifecycle, b *Bootstrap, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting application")

			if err := b.Run(ctx); err != nil {
				logger.Error("Failed to start bot", zap.Error(err))

				return err
			}

			logger.Info("Application started successfully")

			return nil
		},
		OnStop: func(context.Context) error {
			logger.Info("Stopping application")

			return nil
		},
	})
}
