// Package discord provides Discord-related infrastructure and Fx modules.
package discord

import (
	"context"

	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/session"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/config"
	"github.com/Raikerian/go-discord-bootstrap/internal/events"
)

// Intents requested on login.
const Intents = gateway.IntentGuilds

// Module provides Discord-related dependencies.
var Module = fx.Module("discord",
	fx.Provide(
		NewSession,
		NewGateway,
		ProvideInteractionClient,
	),
)

// SessionParams holds dependencies for NewSession.
type SessionParams struct {
	fx.In
	Cfg    *config.Config
	LC     fx.Lifecycle
	Logger *zap.Logger
}

// SessionResult holds results from NewSession.
type SessionResult struct {
	fx.Out
	Session *session.Session
}

// NewSession creates the Discord session. The gateway connection is opened
// by Gateway.Login and closed by the Gateway on stop.
func NewSession(params SessionParams) SessionResult {
	s := session.New("Bot " + params.Cfg.Discord.BotToken)
	s.AddIntents(Intents)
	params.Logger.Debug("Created Discord session")

	return SessionResult{Session: s}
}

// GatewayParams holds dependencies for NewGateway.
type GatewayParams struct {
	fx.In
	Session *session.Session
	Cfg     *config.Config
	Bus     *events.Bus
	LC      fx.Lifecycle
	Logger  *zap.Logger
}

// NewGateway creates the Gateway for the session and closes it on stop.
func NewGateway(params GatewayParams) *Gateway {
	g := NewGatewayFor(params.Session, params.Cfg.Discord.BotToken, params.Bus, params.Logger)

	params.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			g.Detach()

			return g.Close()
		},
	})

	return g
}

// ProvideInteractionClient exposes the session's REST client to the dispatcher.
func ProvideInteractionClient(s *session.Session) commands.InteractionClient {
	return s
}
