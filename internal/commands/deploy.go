package commands

import (
	"fmt"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"go.uber.org/zap"
)

// CommandsAPI is the part of the REST API used to publish commands.
// *api.Client implements it.
type CommandsAPI interface {
	BulkOverwriteCommands(appID discord.AppID, cmds []api.CreateCommandData) ([]discord.Command, error)
	BulkOverwriteGuildCommands(appID discord.AppID, guildID discord.GuildID, cmds []api.CreateCommandData) ([]discord.Command, error)
}

// Manifest converts the registry into the payload for a bulk overwrite,
// sorted by command name.
func Manifest(reg *Registry) []api.CreateCommandData {
	cmds := reg.Commands()
	data := make([]api.CreateCommandData, 0, len(cmds))
	for _, cmd := range cmds {
		data = append(data, api.CreateCommandData{
			Name:        cmd.Name(),
			Description: cmd.Description(),
			Options:     cmd.Options(),
		})
	}

	return data
}

// Deployer publishes a command manifest for one application.
type Deployer struct {
	client        CommandsAPI
	applicationID discord.AppID
	logger        *zap.Logger
}

// NewDeployer creates a new Deployer.
func NewDeployer(client CommandsAPI, appID discord.AppID, logger *zap.Logger) *Deployer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Deployer{
		client:        client,
		applicationID: appID,
		logger:        logger.Named("deploy"),
	}
}

// DeployGuild replaces every command of the application in guildID with
// manifest and returns how many commands Discord now reports.
func (d *Deployer) DeployGuild(guildID discord.GuildID, manifest []api.CreateCommandData) (int, error) {
	d.logger.Info(fmt.Sprintf("Started refreshing %d application (/) commands.", len(manifest)),
		zap.Stringer("applicationID", d.applicationID),
		zap.Stringer("guildID", guildID))

	registered, err := d.client.BulkOverwriteGuildCommands(d.applicationID, guildID, nonNil(manifest))
	if err != nil {
		return 0, fmt.Errorf("failed to overwrite commands for guild %s: %w", guildID, err)
	}

	d.logger.Info(fmt.Sprintf("Successfully reloaded %d application (/) commands.", len(registered)),
		zap.Stringer("applicationID", d.applicationID),
		zap.Stringer("guildID", guildID))

	return len(registered), nil
}

// DeployGlobal replaces every global command of the application.
func (d *Deployer) DeployGlobal(manifest []api.CreateCommandData) (int, error) {
	d.logger.Info(fmt.Sprintf("Started refreshing %d application (/) commands.", len(manifest)),
		zap.Stringer("applicationID", d.applicationID))

	registered, err := d.client.BulkOverwriteCommands(d.applicationID, nonNil(manifest))
	if err != nil {
		return 0, fmt.Errorf("failed to overwrite global commands: %w", err)
	}

	d.logger.Info(fmt.Sprintf("Successfully reloaded %d application (/) commands.", len(registered)),
		zap.Stringer("applicationID", d.applicationID))

	return len(registered), nil
}

// nonNil keeps an empty manifest serialised as [] so it clears commands.
func nonNil(manifest []api.CreateCommandData) []api.CreateCommandData {
	if manifest == nil {
		return []api.CreateCommandData{}
	}

	return manifest
}
