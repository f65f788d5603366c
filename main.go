// Package main provides the entry point for the Discord bot.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/actions"
	"github.com/Raikerian/go-discord-bootstrap/internal/app"
	"github.com/Raikerian/go-discord-bootstrap/internal/bot"
	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/config"
	"github.com/Raikerian/go-discord-bootstrap/internal/database"
	"github.com/Raikerian/go-discord-bootstrap/internal/discord"
	"github.com/Raikerian/go-discord-bootstrap/internal/events"
	"github.com/Raikerian/go-discord-bootstrap/internal/infrastructure"
	"github.com/Raikerian/go-discord-bootstrap/internal/users"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var paths config.Paths

	cmd := &cobra.Command{
		Use:          "discord-bootstrap",
		Short:        "Connect the bot to Discord and serve its commands and events",
		Version:      actions.AppVersion,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), paths)
		},
	}
	cmd.Flags().StringVarP(&paths.File, "config", "c", "config.yaml", "path to the YAML configuration file")
	cmd.Flags().StringVar(&paths.EnvFile, "env-file", ".env", "path to the .env file")

	return cmd
}

// appOptions assembles every module of the bot.
func appOptions(paths config.Paths) []fx.Option {
	return []fx.Option{
		fx.Supply(paths),

		// Core modules
		config.Module,
		infrastructure.LoggerModule,

		// External service modules
		database.Module,
		discord.Module,

		// Application modules
		users.Module,
		commands.Module,
		events.Module,
		actions.Module,
		bot.Module,
		app.Module,
	}
}

func run(ctx context.Context, paths config.Paths) error {
	var (
		cfg    *config.Config
		logger *zap.Logger
	)
	application := app.New(append(appOptions(paths),
		fx.Populate(&cfg, &logger),
		// Configure Fx to use our Zap logger for its own internal logging
		fx.WithLogger(infrastructure.NewFxLoggerAdapter),
	)...)
	if err := application.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build application: %v\n", err)

		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, fx.DefaultTimeout)
	defer cancel()
	if err := application.Start(startCtx); err != nil {
		logger.Error("Application failed to start", zap.Error(err))

		return err
	}

	sig := <-application.Done()
	logger.Info("Received signal, initiating shutdown", zap.Stringer("signal", sig.Signal))

	stopCtx, cancelStop := context.WithTimeout(context.Background(), cfg.Bootstrap.ShutdownTimeout)
	defer cancelStop()
	if err := application.Stop(stopCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))

		return err
	}

	logger.Info("Application has shut down gracefully")

	return nil
}
