package model

import "github.com/pathforge/gpml/internal/metrics"

// EventKind discriminates what a ModelEvent describes.
type EventKind int

const (
	// EventElementAdded fires after an element joins the model.
	EventElementAdded EventKind = iota
	// EventElementRemoved fires after an element is terminated and detached.
	EventElementRemoved
	// EventPropertyChanged fires on a single-property mutation.
	EventPropertyChanged
	// EventCoordsChanged fires on a geometry mutation; dependents linked to
	// the source through the reference index are refreshed.
	EventCoordsChanged
)

// ModelEvent describes one observable mutation of the model.
type ModelEvent struct {
	Kind     EventKind
	Source   PathwayElement
	Property string // set for EventPropertyChanged
	Old      any
	New      any
}

// Listener receives model change events. Implementations belong to the view
// layer; the model never depends on a concrete listener.
type Listener interface {
	PathwayChanged(e ModelEvent)
}

// AddListener registers a listener for all subsequent change events.
func (m *PathwayModel) AddListener(l Listener) {
	if l == nil {
		return
	}
	m.listeners = append(m.listeners, l)
}

// RemoveListener unregisters a previously added listener.
func (m *PathwayModel) RemoveListener(l Listener) {
	for n, have := range m.listeners {
		if have == l {
			m.listeners = append(m.listeners[:n], m.listeners[n+1:]...)
			return
		}
	}
}

// Changed reports whether the model has unsaved mutations.
func (m *PathwayModel) Changed() bool { return m.changed }

// ClearChanged resets the dirty flag, typically after a save.
func (m *PathwayModel) ClearChanged() { m.changed = false }

// fire marks the model dirty and fans the event out synchronously to all
// listeners. Coordinate changes additionally refresh line points linked to
// the moved element so their absolute positions stay current.
func (m *PathwayModel) fire(e ModelEvent) {
	m.changed = true
	metrics.EventsDispatched.Inc()
	for _, l := range m.listeners {
		l.PathwayChanged(e)
	}
	if e.Kind == EventCoordsChanged {
		if target, ok := e.Source.(LinkableTo); ok {
			m.refreshDependents(target)
		}
	}
}

// refreshDependents recomputes absolute coordinates of every line point
// linked to target. The index query returns a snapshot, so refresh logic may
// touch the index safely.
func (m *PathwayModel) refreshDependents(target LinkableTo) {
	for _, linker := range m.elementRefs.linkers(target.ElementID()) {
		if p, ok := linker.(*LinePoint); ok {
			p.refresh()
		}
	}
}
