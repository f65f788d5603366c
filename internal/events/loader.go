package events

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/manifest"
)

// ErrInvalidModule marks a module file that parsed but lacks a required field.
var ErrInvalidModule = errors.New("module is missing required properties")

type module struct {
	Name    string              `yaml:"name"`
	Once    bool                `yaml:"once"`
	Execute *manifest.ActionRef `yaml:"execute"`
}

// LoadResult counts what a Load call did with each module file.
type LoadResult struct {
	Persistent int
	Once       int
	Failed     int
}

// Loader discovers event modules laid out as <root>/<name>.yaml.
type Loader struct {
	fsys    fs.FS
	root    string
	catalog *Catalog
	logger  *zap.Logger
}

// NewLoader returns a Loader reading root inside fsys.
func NewLoader(fsys fs.FS, root string, catalog *Catalog, logger *zap.Logger) *Loader {
	return &Loader{
		fsys:    fsys,
		root:    root,
		catalog: catalog,
		logger:  logger.Named("events"),
	}
}

// Load subscribes every well-formed module to bus. Broken files are logged
// and skipped; only an unreadable root is returned as an error.
func (l *Loader) Load(ctx context.Context, bus *Bus) (LoadResult, error) {
	var res LoadResult

	files, err := manifest.ListModules(l.fsys, l.root)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("Events directory does not exist, no events loaded", zap.String("dir", l.root))

		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("failed to read events directory %s: %w", l.root, err)
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ev, err := l.LoadFile(file)
		if err != nil {
			l.logger.Error("Error loading event module", zap.String("file", file), zap.Error(err))
			res.Failed++

			continue
		}

		l.Subscribe(bus, ev)
		if ev.Once() {
			res.Once++
		} else {
			res.Persistent++
		}
		l.logger.Debug("Loaded event", zap.String("event", ev.Name()), zap.Bool("once", ev.Once()), zap.String("file", file))
	}

	l.logger.Info("Events loaded",
		zap.Int("persistent", res.Persistent),
		zap.Int("once", res.Once),
		zap.Int("failed", res.Failed))

	return res, nil
}

// LoadFile reads a single module file and binds its action.
func (l *Loader) LoadFile(file string) (Event, error) {
	var m module
	if err := manifest.Decode(l.fsys, file, &m); err != nil {
		return nil, err
	}

	switch {
	case m.Name == "":
		return nil, fmt.Errorf("%w: name", ErrInvalidModule)
	case m.Execute == nil || m.Execute.Action == "":
		return nil, fmt.Errorf("%w: execute", ErrInvalidModule)
	}

	handler, err := l.catalog.Build(*m.Execute)
	if err != nil {
		return nil, err
	}

	return NewEvent(m.Name, m.Once, handler)
}

// Subscribe installs ev on bus according to its trigger policy. Handler
// errors and panics are logged and never reach the emitter.
func (l *Loader) Subscribe(bus *Bus, ev Event) (off func()) {
	listener := func(args ...any) {
		defer func() {
			if r := recover(); r != nil {
				l.logger.Error("Event handler panicked",
					zap.String("event", ev.Name()),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
			}
		}()

		if err := ev.Handle(context.Background(), args...); err != nil {
			l.logger.Error("Event handler failed", zap.String("event", ev.Name()), zap.Error(err))
		}
	}

	if ev.Once() {
		return bus.Once(ev.Name(), listener)
	}

	return bus.On(ev.Name(), listener)
}
