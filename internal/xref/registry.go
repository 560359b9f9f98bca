package xref

import (
	"fmt"
	"strings"
)

// DataSource describes one known external database.
type DataSource struct {
	ID         string `yaml:"id"`
	FullName   string `yaml:"name"`
	URLPattern string `yaml:"url_pattern"` // $id is replaced by the identifier
	Example    string `yaml:"example"`
}

// Registry is an immutable set of data sources, keyed by ID. Build one with
// NewRegistry and pass it to whatever needs to resolve references; there is
// no global registry.
type Registry struct {
	byID    map[string]DataSource
	ordered []DataSource
}

// NewRegistry builds a registry, rejecting duplicate or empty source IDs.
func NewRegistry(sources []DataSource) (*Registry, error) {
	r := &Registry{byID: make(map[string]DataSource, len(sources))}
	var errs []string
	for i, ds := range sources {
		if ds.ID == "" {
			errs = append(errs, fmt.Sprintf("sources[%d]: id is required", i))
			continue
		}
		if _, ok := r.byID[ds.ID]; ok {
			errs = append(errs, fmt.Sprintf("duplicate data source id %q", ds.ID))
			continue
		}
		r.byID[ds.ID] = ds
		r.ordered = append(r.ordered, ds)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("data source registry:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return r, nil
}

// Lookup returns the data source registered under id.
func (r *Registry) Lookup(id string) (DataSource, bool) {
	ds, ok := r.byID[id]
	return ds, ok
}

// ResolveURL expands a reference into a browsable URL using the source's
// pattern. Returns false when the source is unknown or has no pattern.
func (r *Registry) ResolveURL(x Xref) (string, bool) {
	ds, ok := r.byID[x.DataSource]
	if !ok || ds.URLPattern == "" {
		return "", false
	}
	return strings.ReplaceAll(ds.URLPattern, "$id", x.Identifier), true
}

// Sources returns a copy of all registered data sources in file order.
func (r *Registry) Sources() []DataSource {
	out := make([]DataSource, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered data sources.
func (r *Registry) Len() int { return len(r.ordered) }
