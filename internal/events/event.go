package events

import (
	"context"
	"errors"
	"strings"
)

// ErrMissingName is returned by NewEvent for a definition without a name.
var ErrMissingName = errors.New("event has no name")

// ErrMissingHandler is returned by NewEvent for a nil handler.
var ErrMissingHandler = errors.New("event has no handler")

// Event is a handler subscribed to one gateway event type.
type Event interface {
	Name() string
	Once() bool
	Handle(ctx context.Context, args ...any) error
}

// Handler is the executable part of an event.
type Handler func(ctx context.Context, args ...any) error

type event struct {
	name    string
	once    bool
	handler Handler
}

// NewEvent binds handler to the event type name. Names are upper-cased to
// match gateway event types.
func NewEvent(name string, once bool, handler Handler) (Event, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrMissingName
	}
	if handler == nil {
		return nil, ErrMissingHandler
	}

	return &event{name: name, once: once, handler: handler}, nil
}

// NormalizeName maps "ready" or "guild_create" to the gateway's "READY" and
// "GUILD_CREATE".
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func (e *event) Name() string { return e.name }
func (e *event) Once() bool   { return e.once }

func (e *event) Handle(ctx context.Context, args ...any) error {
	return e.handler(ctx, args...)
}
