package effectchain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-voicefx/dsp/effects"
)

// ErrUnknownEffect is returned when a name has no registered entry.
var ErrUnknownEffect = errors.New("effectchain: unknown effect")

var errDuplicateEffect = errors.New("duplicate effect type")

// Factory builds one effect instance from parsed parameters.
type Factory func(ctx Context, params Params) (effects.Effect, error)

// Entry describes one selectable effect.
type Entry struct {
	Name         string
	Description  string
	DefaultInput string
	Factory      Factory
}

// Registry maps effect names to their entries.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry. Its DefaultInput must parse.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" {
		return errors.New("empty effect type")
	}

	if e.Factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.entries[e.Name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, e.Name)
	}

	if _, err := ParseParams(e.DefaultInput); err != nil {
		return fmt.Errorf("default input of %s: %w", e.Name, err)
	}

	r.entries[e.Name] = e

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(e Entry) {
	if err := r.Register(e); err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build parses input over the entry's defaults and constructs the effect.
// Frequencies clamped at Nyquist are returned alongside the effect.
func (r *Registry) Build(name string, ctx Context, input string) (effects.Effect, []effects.FrequencyClamped, error) {
	entry, ok := r.Lookup(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}

	defaults, err := ParseParams(entry.DefaultInput)
	if err != nil {
		return nil, nil, fmt.Errorf("effectchain: %s defaults: %w", name, err)
	}

	user, err := ParseParams(input)
	if err != nil {
		return nil, nil, fmt.Errorf("effectchain: %s: %w", name, err)
	}

	fx, err := entry.Factory(ctx, defaults.Merge(user))
	if err != nil {
		return nil, nil, fmt.Errorf("effectchain: build %s: %w", name, err)
	}

	return fx, effects.ClampedOf(fx), nil
}
