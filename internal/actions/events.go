package actions

import (
	"context"
	"fmt"

	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/ws"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Raikerian/go-discord-bootstrap/internal/events"
	"github.com/Raikerian/go-discord-bootstrap/internal/manifest"
)

// Ready logs the identity the bot logged in as.
func Ready(logger *zap.Logger) manifest.Factory[events.Handler] {
	return func(manifest.Params) (events.Handler, error) {
		return func(_ context.Context, args ...any) error {
			if len(args) == 0 {
				return fmt.Errorf("ready: no event payload")
			}
			ev, ok := args[0].(*gateway.ReadyEvent)
			if !ok {
				return fmt.Errorf("ready: unexpected payload %T", args[0])
			}
			logger.Info("Ready! Logged in as "+ev.User.Tag(),
				zap.Stringer("userID", ev.User.ID),
				zap.Int("guilds", len(ev.Guilds)))

			return nil
		}, nil
	}
}

// Log writes a fixed message for every occurrence of the event.
func Log(logger *zap.Logger) manifest.Factory[events.Handler] {
	return func(p manifest.Params) (events.Handler, error) {
		params := struct {
			Message string `yaml:"message"`
			Level   string `yaml:"level"`
		}{Message: "Gateway event received", Level: "info"}
		if err := p.Decode(&params); err != nil {
			return nil, err
		}
		level, err := zapcore.ParseLevel(params.Level)
		if err != nil {
			return nil, err
		}

		return func(_ context.Context, args ...any) error {
			fields := make([]zap.Field, 0, 1)
			if len(args) > 0 {
				if ev, ok := args[0].(ws.Event); ok {
					fields = append(fields, zap.String("event", string(ev.EventType())))
				} else {
					fields = append(fields, zap.String("payload", fmt.Sprintf("%T", args[0])))
				}
			}
			logger.Log(level, params.Message, fields...)

			return nil
		}, nil
	}
}
