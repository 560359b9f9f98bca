package model

import (
	"fmt"

	"github.com/pathforge/gpml/internal/xref"
)

// PathwayElement is the common interface of everything a PathwayModel can hold.
type PathwayElement interface {
	// ElementID returns the element's unique identifier within its model
	// (empty while detached and not yet assigned one).
	ElementID() string
	// Model returns the owning model, or nil while detached.
	Model() *PathwayModel

	core() *elementCore
	// terminate runs the element's cascade-delete rules. Called exactly once,
	// by the model, during removal.
	terminate()
}

// LinkableTo is a target element a line point may link to: shaped elements
// and anchors.
type LinkableTo interface {
	PathwayElement
	// toAbsolute converts relative coordinates on this target into absolute
	// board coordinates.
	toAbsolute(relX, relY float64) (float64, float64)
}

// Groupable is an element that may belong to at most one group.
type Groupable interface {
	PathwayElement
	GroupRef() *Group
	SetGroupRefTo(g *Group) error
	UnsetGroupRef()
}

// Annotatable is an element that carries comments, dynamic properties and
// annotation/citation/evidence references.
type Annotatable interface {
	PathwayElement
	info() *elementInfo
}

// elementCore holds the identity fields shared by every element.
type elementCore struct {
	elementID  string
	model      *PathwayModel
	terminated bool
	self       PathwayElement // concrete element, set by constructors
}

func (c *elementCore) ElementID() string    { return c.elementID }
func (c *elementCore) Model() *PathwayModel { return c.model }
func (c *elementCore) core() *elementCore   { return c }

// SetElementID assigns an explicit identifier, typically one read from a
// document. Only detached elements may be renamed; attached elements are
// registered under their id and must keep it.
func (c *elementCore) SetElementID(id string) error {
	if id == "" {
		return fmt.Errorf("elementId: %w", ErrInvalidArgument)
	}
	if c.model != nil {
		return fmt.Errorf("elementId of an attached element is immutable: %w", ErrIllegalState)
	}
	c.elementID = id
	return nil
}

// fireProperty notifies the owning model of a single-property mutation.
// No-op while detached.
func (c *elementCore) fireProperty(property string, oldVal, newVal any) {
	if c.model != nil {
		c.model.fire(ModelEvent{Kind: EventPropertyChanged, Source: c.self, Property: property, Old: oldVal, New: newVal})
	}
}

// fireCoords notifies the owning model of a geometry mutation, triggering
// dependent refresh of any line points linked to this element.
func (c *elementCore) fireCoords() {
	if c.model != nil {
		c.model.fire(ModelEvent{Kind: EventCoordsChanged, Source: c.self})
	}
}

// Comment is a free-text remark on an element.
type Comment struct {
	Value  string
	Source string
}

// elementInfo is the shared state of first-class diagram elements: comments,
// dynamic properties, metadata references and group membership.
type elementInfo struct {
	elementCore
	comments       []*Comment
	dynamicProps   map[string]string
	annotationRefs []*AnnotationRef
	citationRefs   []*CitationRef
	evidenceRefs   []*EvidenceRef
	groupRef       *Group
}

func (i *elementInfo) info() *elementInfo { return i }

// Comments returns a copy of the element's comments.
func (i *elementInfo) Comments() []*Comment {
	out := make([]*Comment, len(i.comments))
	copy(out, i.comments)
	return out
}

// AddComment appends a comment. The value is mandatory.
func (i *elementInfo) AddComment(value, source string) (*Comment, error) {
	if value == "" {
		return nil, fmt.Errorf("comment value: %w", ErrInvalidArgument)
	}
	c := &Comment{Value: value, Source: source}
	i.comments = append(i.comments, c)
	i.fireProperty("comment", nil, c)
	return c, nil
}

// RemoveComment deletes a previously added comment. Unknown comments are ignored.
func (i *elementInfo) RemoveComment(c *Comment) {
	for n, have := range i.comments {
		if have == c {
			i.comments = append(i.comments[:n], i.comments[n+1:]...)
			i.fireProperty("comment", c, nil)
			return
		}
	}
}

// DynamicProperty returns the value stored under key.
func (i *elementInfo) DynamicProperty(key string) (string, bool) {
	v, ok := i.dynamicProps[key]
	return v, ok
}

// DynamicPropertyKeys returns a copy of all stored keys.
func (i *elementInfo) DynamicPropertyKeys() []string {
	out := make([]string, 0, len(i.dynamicProps))
	for k := range i.dynamicProps {
		out = append(out, k)
	}
	return out
}

// SetDynamicProperty stores an opaque key→value pair. The key is mandatory.
func (i *elementInfo) SetDynamicProperty(key, value string) error {
	if key == "" {
		return fmt.Errorf("dynamic property key: %w", ErrInvalidArgument)
	}
	if i.dynamicProps == nil {
		i.dynamicProps = make(map[string]string)
	}
	old := i.dynamicProps[key]
	i.dynamicProps[key] = value
	i.fireProperty("dynamicProperty:"+key, old, value)
	return nil
}

// RemoveDynamicProperty deletes the value stored under key, if any.
func (i *elementInfo) RemoveDynamicProperty(key string) {
	if old, ok := i.dynamicProps[key]; ok {
		delete(i.dynamicProps, key)
		i.fireProperty("dynamicProperty:"+key, old, "")
	}
}

// GroupRef returns the group this element belongs to, or nil.
func (i *elementInfo) GroupRef() *Group { return i.groupRef }

// SetGroupRefTo makes this element a member of g. Any previous membership is
// released first (which may auto-remove the previous group if it empties).
// If this element is attached to a model, g must be attached to the same model.
func (i *elementInfo) SetGroupRefTo(g *Group) error {
	if g == nil {
		return fmt.Errorf("groupRef: %w", ErrInvalidArgument)
	}
	if i.groupRef == g {
		return nil
	}
	if i.model != nil && g.Model() != i.model {
		return fmt.Errorf("groupRef: group not attached to this model: %w", ErrIllegalState)
	}
	i.UnsetGroupRef()
	i.groupRef = g
	if i.model != nil {
		i.model.groupRefs.add(g.ElementID(), i.self)
	}
	i.fireProperty("groupRef", nil, g)
	return nil
}

// UnsetGroupRef releases this element's group membership. If the group's
// member set empties as a result, the group itself is removed from the model.
func (i *elementInfo) UnsetGroupRef() {
	g := i.groupRef
	if g == nil {
		return
	}
	i.groupRef = nil
	if i.model != nil && g.ElementID() != "" && i.model.groupRefs.has(g.ElementID()) {
		_ = i.model.groupRefs.remove(g.ElementID(), i.self)
		if !i.model.groupRefs.has(g.ElementID()) && !g.core().terminated && g.Model() == i.model {
			// Last member left: the group no longer has a reason to exist.
			_ = i.model.RemoveGroup(g)
		}
	}
	i.fireProperty("groupRef", g, nil)
}

// terminateInfo runs the ElementInfo-level cascade: drop all metadata
// references (destroying the shared entities if these were their last
// references) and release group membership.
func (i *elementInfo) terminateInfo() {
	for _, r := range i.AnnotationRefs() {
		_ = i.RemoveAnnotationRef(r)
	}
	for _, r := range i.CitationRefs() {
		_ = i.RemoveCitationRef(r)
	}
	for _, r := range i.EvidenceRefs() {
		_ = i.RemoveEvidenceRef(r)
	}
	i.UnsetGroupRef()
}

// kindOf names an element's kind for events, metrics and error messages.
func kindOf(e PathwayElement) string {
	switch e.(type) {
	case *Pathway:
		return "pathway"
	case *DataNode:
		return "dataNode"
	case *State:
		return "state"
	case *Interaction:
		return "interaction"
	case *GraphicalLine:
		return "graphicalLine"
	case *Label:
		return "label"
	case *Shape:
		return "shape"
	case *Group:
		return "group"
	case *Annotation:
		return "annotation"
	case *Citation:
		return "citation"
	case *Evidence:
		return "evidence"
	case *LinePoint:
		return "linePoint"
	case *Anchor:
		return "anchor"
	default:
		return "unknown"
	}
}

// equalXref is a nil-safe value comparison of two optional Xrefs.
func equalXref(a, b *xref.Xref) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
