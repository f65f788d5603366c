// Package bot routes gateway interactions to slash commands.
package bot

import (
	"go.uber.org/fx"
)

// Module provides the interaction Dispatcher.
var Module = fx.Module("bot",
	fx.Provide(NewDispatcher),
)
