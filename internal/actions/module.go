package actions

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/events"
	"github.com/Raikerian/go-discord-bootstrap/internal/users"
)

// Module contributes the built-in actions to the command and event catalogs.
var Module = fx.Module("actions",
	fx.Provide(
		fx.Annotate(
			func(repo *users.Repository) []commands.Action { return CommandActions(repo) },
			fx.ResultTags(`group:"command_actions,flatten"`),
		),
		fx.Annotate(
			EventActions,
			fx.ResultTags(`group:"event_actions,flatten"`),
		),
	),
)

// CommandActions lists the built-in command actions.
func CommandActions(store UserStore) []commands.Action {
	return []commands.Action{
		{Name: "respond", Build: Respond},
		{Name: "version", Build: Version},
		{Name: "birthday-set", Build: BirthdaySet(store)},
		{Name: "birthday-show", Build: BirthdayShow(store)},
	}
}

// EventActions lists the built-in event actions.
func EventActions(logger *zap.Logger) []events.Action {
	logger = logger.Named("events")

	return []events.Action{
		{Name: "ready", Build: Ready(logger)},
		{Name: "log", Build: Log(logger)},
	}
}
