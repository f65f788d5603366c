// Package manifest reads the YAML module files that describe commands and
// events, and resolves their actions against a static catalog.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Extensions recognised as module files.
var Extensions = []string{".yaml", ".yml"}

// ErrUnknownAction is returned when a module names an action that is not in
// the catalog.
var ErrUnknownAction = errors.New("unknown action")

// IsModule reports whether name has a recognised module extension.
func IsModule(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}

	return false
}

// ListModules returns the module files directly inside dir, as paths
// relative to the root of fsys. Subdirectories are not descended into.
func ListModules(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsModule(e.Name()) {
			continue
		}
		files = append(files, path.Join(dir, e.Name()))
	}

	return files, nil
}

// ListDirs returns the immediate subdirectories of dir.
func ListDirs(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, path.Join(dir, e.Name()))
		}
	}

	return dirs, nil
}

// Decode reads and parses a module file into v.
func Decode(fsys fs.FS, file string, v any) error {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}

	return nil
}

// ActionRef is the `execute` block of a module: an action name and the
// parameters handed to that action's factory. It accepts either a bare
// scalar (`execute: version`) or a mapping with an `action` key.
type ActionRef struct {
	Action string
	params *yaml.Node
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *ActionRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		r.Action = value.Value
	case yaml.MappingNode:
		var head struct {
			Action string `yaml:"action"`
		}
		if err := value.Decode(&head); err != nil {
			return err
		}
		r.Action = head.Action
		r.params = value
	default:
		return fmt.Errorf("line %d: execute must be an action name or a mapping", value.Line)
	}

	return nil
}

// Params returns the action parameters.
func (r *ActionRef) Params() Params {
	return Params{node: r.params}
}

// Params holds an action's parameters until its factory decodes them.
type Params struct {
	node *yaml.Node
}

// NewParams wraps a YAML mapping as action parameters.
func NewParams(node *yaml.Node) Params {
	return Params{node: node}
}

// Decode decodes the parameters into v. Without parameters v is untouched.
func (p Params) Decode(v any) error {
	if p.node == nil {
		return nil
	}
	if err := p.node.Decode(v); err != nil {
		return fmt.Errorf("invalid action parameters: %w", err)
	}

	return nil
}

// Factory builds a handler of type H from action parameters.
type Factory[H any] func(params Params) (H, error)

// Catalog is the static table mapping action names to handler factories.
type Catalog[H any] struct {
	factories map[string]Factory[H]
}

// NewCatalog returns an empty catalog.
func NewCatalog[H any]() *Catalog[H] {
	return &Catalog[H]{factories: make(map[string]Factory[H])}
}

// Register adds a factory under name. Names must be unique and non-empty.
func (c *Catalog[H]) Register(name string, f Factory[H]) error {
	if name == "" {
		return errors.New("action name is empty")
	}
	if f == nil {
		return fmt.Errorf("action %q has no factory", name)
	}
	if _, exists := c.factories[name]; exists {
		return fmt.Errorf("action %q registered twice", name)
	}
	c.factories[name] = f

	return nil
}

// Build resolves ref and runs its factory.
func (c *Catalog[H]) Build(ref ActionRef) (H, error) {
	var zero H
	f, ok := c.factories[ref.Action]
	if !ok {
		return zero, fmt.Errorf("%w %q", ErrUnknownAction, ref.Action)
	}
	h, err := f(ref.Params())
	if err != nil {
		return zero, fmt.Errorf("action %q: %w", ref.Action, err)
	}

	return h, nil
}

// Names returns the registered action names in sorted order.
func (c *Catalog[H]) Names() []string {
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
