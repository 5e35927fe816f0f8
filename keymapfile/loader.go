package keymapfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/keychord"
	"github.com/dshills/keychord/key"
)

// ErrUnsupportedFormat is returned for file extensions the loader does not
// recognize.
var ErrUnsupportedFormat = errors.New("unsupported keymap file format")

// File is the root of a keymap definition file.
type File struct {
	Groups []GroupConfig `json:"groups" toml:"groups" yaml:"groups"`
}

// GroupConfig describes one shortcut group.
type GroupConfig struct {
	// Name is the registry group the bindings are registered under.
	Name string `json:"name" toml:"name" yaml:"name"`

	// Enabled overrides the group's active state after registration.
	// When nil the group is left in the state registration gives it (active).
	Enabled *bool `json:"enabled,omitempty" toml:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Bindings are the group's key-to-action mappings.
	Bindings []BindingConfig `json:"bindings" toml:"bindings" yaml:"bindings"`
}

// BindingConfig maps a key specification to a named action.
type BindingConfig struct {
	// Keys is the key specification: "Ctrl+S", or space-separated for
	// sequences, "Ctrl+K S".
	Keys string `json:"keys" toml:"keys" yaml:"keys"`

	// Action names the callback to invoke, resolved against the action map
	// supplied to Apply.
	Action string `json:"action" toml:"action" yaml:"action"`

	// Description documents the binding.
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
}

// GroupNames returns the group names defined in the file, in order.
func (f *File) GroupNames() []string {
	names := make([]string, 0, len(f.Groups))
	for _, g := range f.Groups {
		names = append(names, g.Name)
	}
	return names
}

// LoadFile loads a keymap definition, selecting the format by extension:
// .json, .toml, .yaml or .yml.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".toml":
		return LoadTOML(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadJSON reads a keymap definition from JSON.
func LoadJSON(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	return &f, nil
}

// LoadTOML reads a keymap definition from TOML.
func LoadTOML(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	return &f, nil
}

// LoadYAML reads a keymap definition from YAML.
func LoadYAML(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	return &f, nil
}

// Apply registers the file's bindings into reg, resolving action names
// against actions. Groups with Enabled set are toggled to that state after
// their bindings register. Bad bindings (unparseable keys, unknown actions)
// are skipped and reported together in the returned error; good bindings are
// applied regardless.
func Apply(f *File, reg *keychord.Registry, actions map[string]keychord.Callback) error {
	var errs []error

	for _, g := range f.Groups {
		for _, b := range g.Bindings {
			combos, err := key.ParseSequence(b.Keys)
			if err != nil {
				errs = append(errs, fmt.Errorf("group %q: %w", g.Name, err))
				continue
			}

			fn, ok := actions[b.Action]
			if !ok {
				errs = append(errs, fmt.Errorf("group %q, keys %q: unknown action %q", g.Name, b.Keys, b.Action))
				continue
			}

			reg.RegisterSequence(g.Name, combos, fn)
		}

		if g.Enabled != nil {
			reg.ToggleGroup(g.Name, *g.Enabled)
		}
	}

	return errors.Join(errs...)
}

// LoadAndApply is a convenience wrapper over LoadFile and Apply.
func LoadAndApply(path string, reg *keychord.Registry, actions map[string]keychord.Callback) (*File, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := Apply(f, reg, actions); err != nil {
		return f, err
	}
	return f, nil
}
