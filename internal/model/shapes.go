package model

import (
	"fmt"

	"github.com/pathforge/gpml/internal/xref"
)

// Label is a shaped element holding free text.
type Label struct {
	shapedElement
	textLabel string
	href      string
}

// NewLabel builds a detached label. The text is mandatory.
func NewLabel(textLabel string) (*Label, error) {
	if textLabel == "" {
		return nil, fmt.Errorf("label text: %w", ErrInvalidArgument)
	}
	lb := &Label{shapedElement: newShapedElement(), textLabel: textLabel}
	lb.self = lb
	return lb, nil
}

func (lb *Label) TextLabel() string { return lb.textLabel }

// SetTextLabel replaces the label text, which stays mandatory.
func (lb *Label) SetTextLabel(s string) error {
	if s == "" {
		return fmt.Errorf("label text: %w", ErrInvalidArgument)
	}
	old := lb.textLabel
	lb.textLabel = s
	lb.fireProperty("textLabel", old, s)
	return nil
}

func (lb *Label) Href() string { return lb.href }

func (lb *Label) SetHref(h string) {
	old := lb.href
	lb.href = h
	lb.fireProperty("href", old, h)
}

func (lb *Label) terminate() { lb.terminateInfo() }

// Shape is a plain graphical shape with optional text.
type Shape struct {
	shapedElement
	textLabel string
}

// NewShape builds a detached shape of the given outline type.
func NewShape(shapeType ShapeType) *Shape {
	s := &Shape{shapedElement: newShapedElement()}
	if shapeType != "" {
		s.shapeStyle.ShapeType = shapeType
	}
	s.self = s
	return s
}

func (s *Shape) TextLabel() string { return s.textLabel }

func (s *Shape) SetTextLabel(v string) {
	old := s.textLabel
	s.textLabel = v
	s.fireProperty("textLabel", old, v)
}

func (s *Shape) terminate() { s.terminateInfo() }

// Group is a shaped element whose member set is tracked through the model's
// group-reference index. A group with zero members is removed from the model.
type Group struct {
	shapedElement
	groupType GroupType
	textLabel string
	xref      *xref.Xref
}

// NewGroup builds a detached group. The type defaults to Group when blank.
func NewGroup(groupType GroupType) *Group {
	if groupType == "" {
		groupType = GroupTypeGroup
	}
	g := &Group{shapedElement: newShapedElement(), groupType: groupType}
	g.shapeStyle.ShapeType = ShapeNone
	g.self = g
	return g
}

func (g *Group) Type() GroupType { return g.groupType }

func (g *Group) SetType(t GroupType) error {
	if t == "" {
		return fmt.Errorf("group type: %w", ErrInvalidArgument)
	}
	old := g.groupType
	g.groupType = t
	g.fireProperty("type", old, t)
	return nil
}

func (g *Group) TextLabel() string { return g.textLabel }

func (g *Group) SetTextLabel(s string) {
	old := g.textLabel
	g.textLabel = s
	g.fireProperty("textLabel", old, s)
}

func (g *Group) Xref() *xref.Xref { return g.xref }
func (g *Group) SetXref(x *xref.Xref) {
	old := g.xref
	g.xref = x
	g.fireProperty("xref", old, x)
}

// Members returns a snapshot of the group's current members. Empty while the
// group is detached.
func (g *Group) Members() []Groupable {
	if g.model == nil || g.elementID == "" {
		return nil
	}
	linkers := g.model.groupRefs.linkers(g.elementID)
	out := make([]Groupable, 0, len(linkers))
	for _, l := range linkers {
		if m, ok := l.(Groupable); ok {
			out = append(out, m)
		}
	}
	return out
}

// terminate detaches all aliases pointing at this group, clears every
// member's groupRef, then runs the ElementInfo-level cascade.
func (g *Group) terminate() {
	if g.model != nil && g.elementID != "" {
		for _, l := range g.model.aliasRefs.linkers(g.elementID) {
			if dn, ok := l.(*DataNode); ok {
				dn.UnsetAliasRef()
			}
		}
		for _, l := range g.model.groupRefs.linkers(g.elementID) {
			if m, ok := l.(Groupable); ok {
				m.UnsetGroupRef()
			}
		}
	}
	g.terminateInfo()
}
