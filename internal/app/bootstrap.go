package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/config"
	"github.com/Raikerian/go-discord-bootstrap/internal/events"
)

// State is a step of the startup sequence.
type State int32

const (
	StateStart State = iota
	StateDBCheck
	StateLoadCommands
	StateLoadEvents
	StateLogin
	StateReady
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateDBCheck:
		return "DB_CHECK"
	case StateLoadCommands:
		return "LOAD_COMMANDS"
	case StateLoadEvents:
		return "LOAD_EVENTS"
	case StateLogin:
		return "LOGIN"
	case StateReady:
		return "READY"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Database is checked and migrated during DB_CHECK.
type Database interface {
	Authenticate(ctx context.Context) error
	Migrate(ctx context.Context, models ...any) error
}

// CommandLoader fills the command registry during LOAD_COMMANDS.
type CommandLoader interface {
	Load(ctx context.Context, reg *commands.Registry) (commands.LoadResult, error)
}

// EventLoader subscribes event modules during LOAD_EVENTS.
type EventLoader interface {
	Load(ctx context.Context, bus *events.Bus) (events.LoadResult, error)
}

// Dispatcher is attached to the bus before login so no interaction is missed.
type Dispatcher interface {
	Attach(bus *events.Bus) (off func())
}

// Gateway opens the connection to Discord during LOGIN.
type Gateway interface {
	Login(ctx context.Context) error
}

// Bootstrap runs START → DB_CHECK → LOAD_COMMANDS → LOAD_EVENTS → LOGIN → READY.
type Bootstrap struct {
	db         Database
	schema     []any
	cmdLoader  CommandLoader
	registry   *commands.Registry
	evLoader   EventLoader
	bus        *events.Bus
	dispatcher Dispatcher
	gateway    Gateway
	policy     config.BootstrapConfig
	logger     *zap.Logger

	state atomic.Int32
}

// Steps groups the collaborators of a Bootstrap.
type Steps struct {
	Database      Database
	Schema        []any
	CommandLoader CommandLoader
	Registry      *commands.Registry
	EventLoader   EventLoader
	Bus           *events.Bus
	Dispatcher    Dispatcher
	Gateway       Gateway
}

// NewBootstrap creates a Bootstrap in the START state.
func NewBootstrap(steps Steps, policy config.BootstrapConfig, logger *zap.Logger) *Bootstrap {
	return &Bootstrap{
		db:         steps.Database,
		schema:     steps.Schema,
		cmdLoader:  steps.CommandLoader,
		registry:   steps.Registry,
		evLoader:   steps.EventLoader,
		bus:        steps.Bus,
		dispatcher: steps.Dispatcher,
		gateway:    steps.Gateway,
		policy:     policy,
		logger:     logger.Named("bootstrap"),
	}
}

// State returns the step the sequence reached.
func (b *Bootstrap) State() State {
	return State(b.state.Load())
}

func (b *Bootstrap) enter(s State) {
	b.state.Store(int32(s))
	b.logger.Info("Bootstrap state", zap.Stringer("state", s))
}

// Run executes the sequence. It returns an error when login fails, when
// strict command names are violated, or when the database check fails
// under the fatal policy.
func (b *Bootstrap) Run(ctx context.Context) error {
	b.enter(StateStart)

	b.enter(StateDBCheck)
	if err := b.checkDatabase(ctx); err != nil {
		if b.policy.FatalDatabaseError {
			return fmt.Errorf("database check failed: %w", err)
		}
		b.logger.Error("Unable to connect to the database", zap.Error(err))
	} else {
		b.logger.Info("Connection to the database has been established successfully")
	}

	b.enter(StateLoadCommands)
	if _, err := b.cmdLoader.Load(ctx, b.registry); err != nil {
		return fmt.Errorf("failed to load commands: %w", err)
	}

	b.enter(StateLoadEvents)
	if b.dispatcher != nil {
		b.dispatcher.Attach(b.bus)
	}
	if _, err := b.evLoader.Load(ctx, b.bus); err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}

	b.enter(StateLogin)
	if err := b.gateway.Login(ctx); err != nil {
		b.logger.Error("Login failed", zap.Error(err))

		return fmt.Errorf("login failed: %w", err)
	}

	b.enter(StateReady)

	return nil
}

func (b *Bootstrap) checkDatabase(ctx context.Context) error {
	if err := b.db.Authenticate(ctx); err != nil {
		return err
	}
	if len(b.schema) == 0 {
		return nil
	}

	return b.db.Migrate(ctx, b.schema...)
}
