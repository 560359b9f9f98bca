package model

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// idRegistry maps elementIds to their elements. One per model; it records
// membership only and never cascades.
type idRegistry struct {
	objects map[string]PathwayElement
}

func newIDRegistry() *idRegistry {
	return &idRegistry{objects: make(map[string]PathwayElement)}
}

// add registers e under id. Both arguments are mandatory; an id already
// present is rejected.
func (r *idRegistry) add(id string, e PathwayElement) error {
	if id == "" || e == nil {
		return fmt.Errorf("id registry add: %w", ErrInvalidArgument)
	}
	if _, exists := r.objects[id]; exists {
		return fmt.Errorf("id registry add %q: %w", id, ErrDuplicateKey)
	}
	r.objects[id] = e
	return nil
}

// remove drops the mapping for id. Removing an absent id is a no-op.
func (r *idRegistry) remove(id string) {
	delete(r.objects, id)
}

func (r *idRegistry) get(id string) (PathwayElement, bool) {
	e, ok := r.objects[id]
	return e, ok
}

func (r *idRegistry) has(id string) bool {
	_, ok := r.objects[id]
	return ok
}

func (r *idRegistry) size() int { return len(r.objects) }

// generateUnique draws random hexadecimal identifiers until one is free.
// Small registries draw from a 3-hex-digit range; once that range is half
// occupied the draw widens to 8 hex digits so the retry loop terminates
// quickly instead of spinning on a crowded narrow span.
func (r *idRegistry) generateUnique() string {
	var span int64 = 0x1000
	if len(r.objects) > 0x1000/2 {
		span = 0x100000000
	}
	for {
		id := strconv.FormatInt(rand.Int64N(span), 16)
		if _, taken := r.objects[id]; !taken {
			return id
		}
	}
}
