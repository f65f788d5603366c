package bot

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/commands"
	"github.com/Raikerian/go-discord-bootstrap/internal/events"
)

// InteractionCreate is the bus key interactions arrive on.
const InteractionCreate = "INTERACTION_CREATE"

// ErrorReply is sent to the user when a command handler fails.
const ErrorReply = "There was an error while executing this command!"

// Dispatcher routes slash command interactions to registered commands.
type Dispatcher struct {
	registry *commands.Registry
	client   commands.InteractionClient
	logger   *zap.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(registry *commands.Registry, client commands.InteractionClient, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		client:   client,
		logger:   logger.Named("dispatcher"),
	}
}

// Attach subscribes the dispatcher to interaction events on bus.
func (d *Dispatcher) Attach(bus *events.Bus) (off func()) {
	return bus.On(InteractionCreate, func(args ...any) {
		if len(args) == 0 {
			return
		}
		switch ev := args[0].(type) {
		case *gateway.InteractionCreateEvent:
			d.Dispatch(context.Background(), &ev.InteractionEvent)
		case *discord.InteractionEvent:
			d.Dispatch(context.Background(), ev)
		default:
			d.logger.Debug("Ignoring unexpected interaction payload", zap.String("type", fmt.Sprintf("%T", ev)))
		}
	})
}

// Dispatch runs the command named by ev. Non-command interactions are
// ignored and unknown commands get no reply.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *discord.InteractionEvent) {
	data, ok := ev.Data.(*discord.CommandInteraction)
	if !ok {
		d.logger.Debug("Received unhandled interaction type", zap.String("type", fmt.Sprintf("%T", ev.Data)))

		return
	}

	cmd, ok := d.registry.Get(data.Name)
	if !ok {
		d.logger.Error("No command matching name was found", zap.String("commandName", data.Name))

		return
	}

	in := commands.NewInteraction(d.client, ev, data)
	if user := in.User(); user != nil {
		d.logger.Info("Received slash command", zap.String("commandName", data.Name), zap.String("user", user.Username))
	}

	if err := d.execute(ctx, cmd, in); err != nil {
		d.logger.Error("Error executing command", zap.String("commandName", data.Name), zap.Error(err))
		d.notifyFailure(in)

		return
	}

	d.logger.Debug("Command executed successfully", zap.String("commandName", data.Name))
}

func (d *Dispatcher) execute(ctx context.Context, cmd commands.Command, in *commands.Interaction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Command handler panicked",
				zap.String("commandName", cmd.Name()),
				zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return cmd.Execute(ctx, in)
}

// notifyFailure tells the user about the failure exactly once, as a follow-up
// if the handler already answered.
func (d *Dispatcher) notifyFailure(in *commands.Interaction) {
	var err error
	if in.Replied() || in.Deferred() {
		err = in.FollowUpText(ErrorReply, true)
	} else {
		err = in.ReplyText(ErrorReply, true)
	}
	if err != nil {
		d.logger.Error("Failed to send error response for command execution", zap.Error(err))
	}
}
