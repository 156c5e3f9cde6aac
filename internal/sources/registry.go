package sources

import (
	"fmt"
	"sort"
)

// Registry maps sport keys to sources.
type Registry struct {
	sources map[string]Source
}

// NewRegistry registers the given sources; a later source replaces an
// earlier one with the same sport key.
func NewRegistry(srcs ...Source) *Registry {
	r := &Registry{sources: make(map[string]Source, len(srcs))}
	for _, s := range srcs {
		r.sources[s.Sport()] = s
	}
	return r
}

// Get returns the source for sport.
func (r *Registry) Get(sport string) (Source, error) {
	s, ok := r.sources[sport]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, sport)
	}
	return s, nil
}

// Sports returns the registered sport keys, sorted.
func (r *Registry) Sports() []string {
	out := make([]string, 0, len(r.sources))
	for k := range r.sources {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
