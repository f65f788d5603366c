package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/Raikerian/go-discord-bootstrap/internal/manifest"
)

// ErrInvalidModule marks a module file that parsed but lacks a required field.
var ErrInvalidModule = errors.New("module is missing required properties")

// module is the on-disk shape of a command module.
type module struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Options     []OptionSpec        `yaml:"options"`
	Execute     *manifest.ActionRef `yaml:"execute"`
}

// LoadResult counts what a Load call did with each module file.
type LoadResult struct {
	Loaded  int
	Skipped int
	Failed  int
}

// Loader discovers command modules laid out as <root>/<category>/<name>.yaml.
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
		logger:  logger.Named("commands"),
	}
}

// Load registers every well-formed module under the root into reg. Broken files
// are logged and skipped. An error is returned only when root cannot be
// listed or the registry rejects a command.
func (l *Loader) Load(ctx context.Context, reg *Registry) (LoadResult, error) {
	var res LoadResult
	root := l.root

	categories, err := manifest.ListDirs(l.fsys, root)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("Commands directory does not exist, no commands loaded", zap.String("dir", root))

		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("failed to read commands directory %s: %w", root, err)
	}

	var regErrs []error
	for _, category := range categories {
		files, err := manifest.ListModules(l.fsys, category)
		if err != nil {
			l.logger.Error("Failed to read command category", zap.String("category", category), zap.Error(err))

			continue
		}

		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return res, err
			}

			cmd, err := l.LoadFile(file)
			switch {
			case errors.Is(err, ErrInvalidModule):
				l.logger.Warn("Skipping command module", zap.String("file", file), zap.Error(err))
				res.Skipped++

				continue
			case err != nil:
				l.logger.Error("Error loading command module", zap.String("file", file), zap.Error(err))
				res.Failed++

				continue
			}

			if err := reg.Add(cmd); err != nil {
				l.logger.Error("Failed to register command", zap.String("file", file), zap.Error(err))
				regErrs = append(regErrs, fmt.Errorf("%s: %w", file, err))
				res.Failed++

				continue
			}
			l.logger.Debug("Loaded command", zap.String("commandName", cmd.Name()), zap.String("file", file))
			res.Loaded++
		}
	}

	l.logger.Info("Commands loaded",
		zap.Int("loaded", res.Loaded),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed))

	return res, errors.Join(regErrs...)
}

// LoadFile reads a single module file and binds its action.
func (l *Loader) LoadFile(file string) (Command, error) {
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

	opts, err := BuildOptions(m.Options)
	if err != nil {
		return nil, err
	}

	handler, err := l.catalog.Build(*m.Execute)
	if err != nil {
		return nil, err
	}

	return NewCommand(Definition{
		Name:        m.Name,
		Description: m.Description,
		Options:     opts,
		Source:      file,
	}, handler)
}
