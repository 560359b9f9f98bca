package model

import (
	"fmt"

	"github.com/pathforge/gpml/internal/xref"
)

// DataNode is a shaped element representing a biological entity. A data node
// of type Alias stands in for a Group elsewhere on the board.
type DataNode struct {
	shapedElement
	textLabel string
	nodeType  DataNodeType
	xref      *xref.Xref
	aliasRef  *Group
	states    []*State
}

// NewDataNode builds a detached data node. The text label may be empty; the
// type defaults to Undefined when blank.
func NewDataNode(textLabel string, nodeType DataNodeType) *DataNode {
	if nodeType == "" {
		nodeType = DataNodeTypeUndefined
	}
	d := &DataNode{shapedElement: newShapedElement(), textLabel: textLabel, nodeType: nodeType}
	d.self = d
	return d
}

func (d *DataNode) TextLabel() string { return d.textLabel }

// SetTextLabel replaces the display text.
func (d *DataNode) SetTextLabel(s string) {
	old := d.textLabel
	d.textLabel = s
	d.fireProperty("textLabel", old, s)
}

func (d *DataNode) Type() DataNodeType { return d.nodeType }

// SetType changes the node type. Switching away from Alias releases any alias
// reference first.
func (d *DataNode) SetType(t DataNodeType) error {
	if t == "" {
		return fmt.Errorf("dataNode type: %w", ErrInvalidArgument)
	}
	if t != DataNodeTypeAlias && d.aliasRef != nil {
		d.UnsetAliasRef()
	}
	old := d.nodeType
	d.nodeType = t
	d.fireProperty("type", old, t)
	return nil
}

func (d *DataNode) Xref() *xref.Xref { return d.xref }
func (d *DataNode) SetXref(x *xref.Xref) {
	old := d.xref
	d.xref = x
	d.fireProperty("xref", old, x)
}

// AliasRef returns the group this data node aliases, or nil.
func (d *DataNode) AliasRef() *Group { return d.aliasRef }

// SetAliasRefTo marks this data node as an alias of g, recording the pairing
// in the model's alias index. The node's type becomes Alias.
func (d *DataNode) SetAliasRefTo(g *Group) error {
	if g == nil {
		return fmt.Errorf("aliasRef: %w", ErrInvalidArgument)
	}
	if d.aliasRef == g {
		return nil
	}
	if d.model != nil && g.Model() != d.model {
		return fmt.Errorf("aliasRef: group not attached to this model: %w", ErrIllegalState)
	}
	d.UnsetAliasRef()
	d.aliasRef = g
	d.nodeType = DataNodeTypeAlias
	if d.model != nil {
		d.model.aliasRefs.add(g.ElementID(), d)
	}
	d.fireProperty("aliasRef", nil, g)
	return nil
}

// UnsetAliasRef clears the alias pairing, removing it from the alias index.
func (d *DataNode) UnsetAliasRef() {
	g := d.aliasRef
	if g == nil {
		return
	}
	d.aliasRef = nil
	if d.model != nil && d.model.aliasRefs.has(g.ElementID()) {
		_ = d.model.aliasRefs.remove(g.ElementID(), d)
	}
	d.fireProperty("aliasRef", g, nil)
}

// States returns a copy of this data node's states.
func (d *DataNode) States() []*State {
	out := make([]*State, len(d.states))
	copy(out, d.states)
	return out
}

// AddState creates a state owned by this data node. If the node is attached,
// the state is registered with the model immediately.
func (d *DataNode) AddState(textLabel string, stateType StateType) (*State, error) {
	if stateType == "" {
		stateType = StateTypeUndefined
	}
	s := &State{shapedElement: newShapedElement(), textLabel: textLabel, stateType: stateType, dataNode: d}
	s.self = s
	s.rect.Width, s.rect.Height = 15, 15
	if d.model != nil {
		if err := d.model.attach(s); err != nil {
			return nil, err
		}
	}
	d.states = append(d.states, s)
	d.fireProperty("state", nil, s)
	return s, nil
}

// RemoveState terminates and detaches a state of this data node.
func (d *DataNode) RemoveState(s *State) error {
	if s == nil || s.dataNode != d {
		return fmt.Errorf("state does not belong to this data node: %w", ErrInvalidArgument)
	}
	if d.model != nil {
		d.model.cascadeRemoveChild(s)
	} else {
		s.terminate()
	}
	s.dataNode = nil
	d.states = removeRef(d.states, s)
	d.fireProperty("state", s, nil)
	return nil
}

// terminate removes all owned states, releases the alias pairing if present,
// then runs the ElementInfo-level cascade.
func (d *DataNode) terminate() {
	for _, s := range d.States() {
		if d.model != nil {
			d.model.cascadeRemoveChild(s)
		} else {
			s.terminate()
		}
		s.dataNode = nil
	}
	d.states = nil
	d.UnsetAliasRef()
	d.terminateInfo()
}

// State is a modification or variant attached to a data node, positioned
// relative to its parent's bounds.
type State struct {
	shapedElement
	textLabel string
	stateType StateType
	relX      float64
	relY      float64
	xref      *xref.Xref
	dataNode  *DataNode
}

func (s *State) TextLabel() string { return s.textLabel }

func (s *State) SetTextLabel(v string) {
	old := s.textLabel
	s.textLabel = v
	s.fireProperty("textLabel", old, v)
}

func (s *State) Type() StateType { return s.stateType }

func (s *State) SetType(t StateType) error {
	if t == "" {
		return fmt.Errorf("state type: %w", ErrInvalidArgument)
	}
	old := s.stateType
	s.stateType = t
	s.fireProperty("type", old, t)
	return nil
}

func (s *State) Xref() *xref.Xref { return s.xref }
func (s *State) SetXref(x *xref.Xref) {
	old := s.xref
	s.xref = x
	s.fireProperty("xref", old, x)
}

// DataNode returns the owning data node, or nil after removal.
func (s *State) DataNode() *DataNode { return s.dataNode }

// RelPosition returns the state's position relative to its parent's bounds.
func (s *State) RelPosition() (relX, relY float64) { return s.relX, s.relY }

// SetRelPosition moves the state on its parent. Values span -1..1.
func (s *State) SetRelPosition(relX, relY float64) error {
	if relX < -1 || relX > 1 || relY < -1 || relY > 1 {
		return fmt.Errorf("state relative position out of range: %w", ErrInvalidArgument)
	}
	s.relX, s.relY = relX, relY
	if s.dataNode != nil {
		x, y := s.dataNode.toAbsolute(relX, relY)
		s.rect.CenterX, s.rect.CenterY = x, y
	}
	s.fireCoords()
	return nil
}

func (s *State) terminate() {
	s.terminateInfo()
}
