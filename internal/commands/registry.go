package commands

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ErrDuplicateCommand is returned by Registry.Add in strict mode.
var ErrDuplicateCommand = errors.New("duplicate command name")

// Registry maps command names to commands. It is filled during startup and
// only read afterwards.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	strict   bool
	logger   *zap.Logger
}

// NewRegistry returns an empty Registry. With strict set, a second command
// with an already registered name is rejected instead of replacing the first.
func NewRegistry(strict bool, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Registry{
		commands: make(map[string]Command),
		strict:   strict,
		logger:   logger.Named("registry"),
	}
}

// Add registers cmd under its name.
func (r *Registry) Add(cmd Command) error {
	if cmd == nil {
		return ErrMissingHandler
	}
	name := cmd.Name()
	if name == "" {
		return ErrMissingName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		if r.strict {
			return fmt.Errorf("%w: %q", ErrDuplicateCommand, name)
		}
		r.logger.Warn("Duplicate command name, replacing earlier command", zap.String("commandName", name))
	}
	r.commands[name] = cmd

	return nil
}

// Get retrieves a registered command by its name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]

	return cmd, ok
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.commands)
}

// Commands returns the registered commands sorted by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

	return cmds
}
