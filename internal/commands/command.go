// Package commands holds slash command descriptors, the registry they are
// kept in, and the loader that discovers them on disk.
package commands

import (
	"context"
	"errors"

	"github.com/diamondburned/arikawa/v3/discord"
)

var (
	// ErrMissingName is returned by NewCommand for a definition without a name.
	ErrMissingName = errors.New("command has no name")
	// ErrMissingHandler is returned by NewCommand for a nil handler.
	ErrMissingHandler = errors.New("command has no handler")
)

// Command defines the interface for slash commands.
type Command interface {
	Name() string
	Description() string
	Options() discord.CommandOptions
	Execute(ctx context.Context, in *Interaction) error
}

// Handler is the executable part of a command.
type Handler func(ctx context.Context, in *Interaction) error

// Definition is the declarative part of a command. Options are passed
// through to the registration API untouched.
type Definition struct {
	Name        string
	Description string
	Options     discord.CommandOptions
	// Source is the module file the definition was read from, if any.
	Source string
}

type command struct {
	def     Definition
	handler Handler
}

// NewCommand binds a handler to a definition.
func NewCommand(def Definition, handler Handler) (Command, error) {
	if def.Name == "" {
		return nil, ErrMissingName
	}
	if handler == nil {
		return nil, ErrMissingHandler
	}

	return &command{def: def, handler: handler}, nil
}

func (c *command) Name() string                    { return c.def.Name }
func (c *command) Description() string             { return c.def.Description }
func (c *command) Options() discord.CommandOptions { return c.def.Options }

func (c *command) Execute(ctx context.Context, in *Interaction) error {
	return c.handler(ctx, in)
}
