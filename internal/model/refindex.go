package model

import "fmt"

// linkIndex is a multimap from a linkable target's elementId to the set of
// elements currently referencing it. The model keeps three independent
// instances: line-point elementRefs, group memberships and alias references.
type linkIndex struct {
	links map[string]map[string]PathwayElement // target id → linker id → linker
}

func newLinkIndex() *linkIndex {
	return &linkIndex{links: make(map[string]map[string]PathwayElement)}
}

// add inserts linker into the target's set, creating the set if absent.
func (ix *linkIndex) add(targetID string, linker PathwayElement) {
	set, ok := ix.links[targetID]
	if !ok {
		set = make(map[string]PathwayElement)
		ix.links[targetID] = set
	}
	set[linker.ElementID()] = linker
}

// remove deletes linker from the target's set, dropping the mapping entirely
// once the set empties. A target with no tracked linkers at all is an error.
func (ix *linkIndex) remove(targetID string, linker PathwayElement) error {
	set, ok := ix.links[targetID]
	if !ok {
		return fmt.Errorf("link index: no linkers tracked for %q: %w", targetID, ErrNotFound)
	}
	delete(set, linker.ElementID())
	if len(set) == 0 {
		delete(ix.links, targetID)
	}
	return nil
}

// linkers returns a snapshot copy of the target's current linker set, so
// callers may mutate the model while iterating the result.
func (ix *linkIndex) linkers(targetID string) []PathwayElement {
	set := ix.links[targetID]
	out := make([]PathwayElement, 0, len(set))
	for _, l := range set {
		out = append(out, l)
	}
	return out
}

// has reports whether any linker is tracked for the target.
func (ix *linkIndex) has(targetID string) bool {
	return len(ix.links[targetID]) > 0
}
