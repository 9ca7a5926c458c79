package export

import (
	"fmt"
	"sort"
	"strings"
)

// Factory builds a fresh adapter instance.
type Factory func() Adapter

// Entry binds one (manufacturer, model) pair to its adapter factory.
type Entry struct {
	Manufacturer string
	Model        string
	Factory      Factory
}

// Registry is an immutable (manufacturer, model) lookup built once at
// startup and passed by reference. Steady-state lookups are lock-free;
// there is deliberately no way to register after construction.
type Registry struct {
	byKey map[string]Entry
	keys  []string
}

// NewRegistry builds a registry from the given entries. Duplicate
// (manufacturer, model) pairs are rejected so a misconfigured catalog
// fails loudly at startup instead of shadowing an adapter.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{byKey: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if e.Factory == nil {
			return nil, fmt.Errorf("registry: nil factory for %s %s", e.Manufacturer, e.Model)
		}
		key := registryKey(e.Manufacturer, e.Model)
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("registry: duplicate adapter for %s %s", e.Manufacturer, e.Model)
		}
		r.byKey[key] = e
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)
	return r, nil
}

// Lookup returns the factory for the given desk, matching
// case-insensitively.
func (r *Registry) Lookup(manufacturer, model string) (Factory, bool) {
	e, ok := r.byKey[registryKey(manufacturer, model)]
	if !ok {
		return nil, false
	}
	return e.Factory, true
}

// Entries returns all registered entries in stable key order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.keys))
	for _, key := range r.keys {
		out = append(out, r.byKey[key])
	}
	return out
}

func registryKey(manufacturer, model string) string {
	return strings.ToLower(strings.TrimSpace(manufacturer)) + "/" + strings.ToLower(strings.TrimSpace(model))
}
