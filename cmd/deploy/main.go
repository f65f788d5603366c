// Command deploy registers the bot's slash commands with Discord.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/actions"
	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/config"
	"github.com/Raikerian/go-discord-bootstrap/internal/infrastructure"
)

type options struct {
	paths  config.Paths
	global bool
	clear  bool
	dryRun bool
}

func main() {
	if err := newDeployCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newDeployCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "deploy",
		Short:        "Register slash commands found in the commands directory",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return deploy(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.paths.File, "config", "c", "config.yaml", "path to the YAML configuration file")
	flags.StringVar(&opts.paths.EnvFile, "env-file", ".env", "path to the .env file")
	flags.BoolVar(&opts.global, "global", false, "register global commands instead of guild commands")
	flags.BoolVar(&opts.clear, "clear", false, "unregister every command")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print the command manifest without contacting Discord")

	return cmd
}

func deploy(ctx context.Context, out io.Writer, opts options) error {
	cfg, err := config.LoadConfig(opts.paths)
	if err != nil {
		return err
	}

	logger, err := infrastructure.BuildLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var manifest []api.CreateCommandData
	if !opts.clear {
		manifest, err = loadManifest(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to load commands", zap.Error(err))

			return err
		}
	}

	if opts.dryRun {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(manifest)
	}

	if err := push(ctx, cfg, manifest, opts.global, logger); err != nil {
		logger.Error("Failed to deploy commands", zap.Error(err))

		return err
	}

	return nil
}

// loadManifest scans the commands directory the same way the bot does.
// Handlers are built but never run, so the actions get no user store.
func loadManifest(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]api.CreateCommandData, error) {
	catalog, err := commands.NewCatalog(actions.CommandActions(nil)...)
	if err != nil {
		return nil, err
	}

	reg := commands.NewRegistry(cfg.Commands.StrictNames, logger)
	loader := commands.NewLoader(os.DirFS(cfg.Commands.Dir), ".", catalog, logger)
	if _, err := loader.Load(ctx, reg); err != nil {
		return nil, err
	}

	return commands.Manifest(reg), nil
}

func push(ctx context.Context, cfg *config.Config, manifest []api.CreateCommandData, global bool, logger *zap.Logger) error {
	if cfg.Discord.BotToken == "" {
		return errors.New("discord bot token is not set (TOKEN)")
	}
	appID := cfg.ApplicationID()
	if !appID.IsValid() {
		return errors.New("application ID is not set (CLIENT_ID)")
	}

	client := api.NewClient("Bot " + cfg.Discord.BotToken).WithContext(ctx)
	deployer := commands.NewDeployer(client, appID, logger)

	return pushWith(deployer, cfg, manifest, global, logger)
}

func pushWith(deployer *commands.Deployer, cfg *config.Config, manifest []api.CreateCommandData, global bool, logger *zap.Logger) error {
	if global {
		_, err := deployer.DeployGlobal(manifest)

		return err
	}

	guildIDs, invalid := cfg.GuildIDs()
	for _, raw := range invalid {
		logger.Warn("Ignoring invalid guild ID", zap.String("guildID", raw))
	}
	if len(guildIDs) == 0 {
		return errors.New("no guild ID configured (GUILD_ID), use --global for global commands")
	}

	var errs []error
	for _, guildID := range guildIDs {
		if _, err := deployer.DeployGuild(guildID, manifest); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("deploy failed for %d of %d guilds: %w", len(errs), len(guildIDs), errors.Join(errs...))
	}

	return nil
}
