// Package constants provides the versioned, immutable-per-run registry of
// regulatory constants consumed by the heuristic bank. Every constant
// carries provenance (the order or table it was taken from) so that each
// heuristic's arithmetic stays auditable against a citable source.
package constants

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Constant is one named regulatory value with provenance metadata.
type Constant struct {
	Value  float64 `yaml:"value" json:"value"`
	Unit   string  `yaml:"unit" json:"unit"`
	Source string  `yaml:"source" json:"source"`
}

// ErrConstantMissing is returned when a heuristic's declared constant is
// absent from the registry. This is a fatal configuration error: the run
// aborts before extraction starts.
type ErrConstantMissing struct {
	Names []string
}

func (e *ErrConstantMissing) Error() string {
	return fmt.Sprintf("missing required constants: %s", strings.Join(e.Names, ", "))
}

// Registry is an immutable bag of constants for one analysis run.
// It is built once (defaults, file, overrides) and then only read.
type Registry struct {
	version string
	entries map[string]Constant
}

// NewRegistry builds a registry from a named set of entries.
func NewRegistry(version string, entries map[string]Constant) *Registry {
	copied := make(map[string]Constant, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Registry{version: version, entries: copied}
}

// Version identifies the constants set (e.g. "kserc-fy2024-25").
func (r *Registry) Version() string { return r.version }

// Value returns a constant's value, or an error naming the absent constant.
func (r *Registry) Value(name string) (float64, error) {
	c, ok := r.entries[name]
	if !ok {
		return 0, &ErrConstantMissing{Names: []string{name}}
	}
	return c.Value, nil
}

// Lookup returns the full constant with provenance.
func (r *Registry) Lookup(name string) (Constant, bool) {
	c, ok := r.entries[name]
	return c, ok
}

// Names returns all constant names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for k := range r.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every required constant is present, collecting all
// misses into a single fatal error.
func (r *Registry) Validate(required []string) error {
	var missing []string
	for _, name := range required {
		if _, ok := r.entries[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &ErrConstantMissing{Names: missing}
	}
	return nil
}

// With returns a new registry with the given value overrides applied.
// The receiver is not modified; overridden entries keep their unit but
// their provenance is marked as a caller override.
func (r *Registry) With(overrides map[string]float64) *Registry {
	if len(overrides) == 0 {
		return r
	}
	entries := make(map[string]Constant, len(r.entries))
	for k, v := range r.entries {
		entries[k] = v
	}
	for name, value := range overrides {
		c := entries[name] // zero Constant if new
		c.Value = value
		c.Source = "caller override"
		entries[name] = c
	}
	return &Registry{version: r.version + "+overrides", entries: entries}
}

// constantsFile is the YAML shape of an external constants set.
type constantsFile struct {
	Version   string              `yaml:"version"`
	Constants map[string]Constant `yaml:"constants"`
}

// LoadFile reads a constants set from a YAML file. The file fully replaces
// the built-in defaults; use Registry.With for per-run value overrides.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read constants file: %w", err)
	}
	var f constantsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse constants file: %w", err)
	}
	if f.Version == "" {
		return nil, fmt.Errorf("constants file %s has no version", path)
	}
	if len(f.Constants) == 0 {
		return nil, fmt.Errorf("constants file %s has no constants", path)
	}
	return NewRegistry(f.Version, f.Constants), nil
}

// MarshalYAML renders the registry back to the file shape, used by the
// `trueup constants show` and `constants init` commands.
func (r *Registry) MarshalYAML() ([]byte, error) {
	f := constantsFile{Version: r.version, Constants: r.entries}
	return yaml.Marshal(f)
}
