package discord

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/diamondburned/arikawa/v3/utils/ws"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/events"
)

// ErrMissingToken is returned by Login when no bot token is configured.
var ErrMissingToken = errors.New("discord bot token is not set")

// Connection is the part of a gateway session the Gateway drives.
type Connection interface {
	AddHandler(handler any) (rm func())
	Open(ctx context.Context) error
	Close() error
}

// Gateway connects to Discord and forwards every gateway event onto the
// event bus, keyed by its event type.
type Gateway struct {
	conn   Connection
	token  string
	bus    *events.Bus
	logger *zap.Logger
	detach func()
	opened atomic.Bool
}

// NewGatewayFor creates a Gateway over conn and starts forwarding its events
// to bus.
func NewGatewayFor(conn Connection, token string, bus *events.Bus, logger *zap.Logger) *Gateway {
	g := &Gateway{
		conn:   conn,
		token:  token,
		bus:    bus,
		logger: logger.Named("gateway"),
	}
	g.detach = conn.AddHandler(g.forward)

	return g
}

func (g *Gateway) forward(ev ws.Event) {
	name := string(ev.EventType())
	if name == "" {
		return
	}
	if n := g.bus.Emit(name, ev); n > 0 {
		g.logger.Debug("Dispatched gateway event", zap.String("event", name), zap.Int("listeners", n))
	}
}

// Login opens the gateway connection with the configured token.
func (g *Gateway) Login(ctx context.Context) error {
	if g.token == "" {
		return ErrMissingToken
	}
	g.logger.Info("Opening Discord session...")
	if err := g.conn.Open(ctx); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	g.opened.Store(true)

	return nil
}

// Close closes the connection if Login opened it.
func (g *Gateway) Close() error {
	if !g.opened.CompareAndSwap(true, false) {
		return nil
	}
	g.logger.Info("Closing Discord session...")

	return g.conn.Close()
}

// Detach stops forwarding gateway events.
func (g *Gateway) Detach() {
	if g.detach != nil {
		g.detach()
	}
}
