package model

import (
	"fmt"
	"math"

	"github.com/pathforge/gpml/internal/xref"
)

// lineElement is the shared state of interactions and graphical lines: an
// ordered sequence of at least two points plus zero or more anchors.
type lineElement struct {
	elementInfo
	points    []*LinePoint
	anchors   []*Anchor
	lineStyle LineStyleProperty
}

func (l *lineElement) initLine() {
	l.lineStyle = defaultLineStyle()
	start := &LinePoint{line: l, arrowHead: ArrowHeadUndirected}
	start.self = start
	end := &LinePoint{line: l, arrowHead: ArrowHeadUndirected}
	end.self = end
	l.points = []*LinePoint{start, end}
}

// Points returns a copy of the line's ordered points.
func (l *lineElement) Points() []*LinePoint {
	out := make([]*LinePoint, len(l.points))
	copy(out, l.points)
	return out
}

// StartPoint returns the first point of the line.
func (l *lineElement) StartPoint() *LinePoint { return l.points[0] }

// EndPoint returns the last point of the line.
func (l *lineElement) EndPoint() *LinePoint { return l.points[len(l.points)-1] }

// InsertPoint adds a waypoint at index. Index 0 and the final index are the
// endpoints; inserting there is rejected so the line keeps distinct ends.
func (l *lineElement) InsertPoint(index int, x, y float64) (*LinePoint, error) {
	if index <= 0 || index >= len(l.points) {
		return nil, fmt.Errorf("waypoint index %d: %w", index, ErrInvalidArgument)
	}
	p := &LinePoint{line: l, x: x, y: y, arrowHead: ArrowHeadUndirected}
	p.self = p
	if l.model != nil {
		if err := l.model.attach(p); err != nil {
			return nil, err
		}
	}
	l.points = append(l.points[:index], append([]*LinePoint{p}, l.points[index:]...)...)
	l.fireProperty("point", nil, p)
	return p, nil
}

// Anchors returns a copy of the line's anchors.
func (l *lineElement) Anchors() []*Anchor {
	out := make([]*Anchor, len(l.anchors))
	copy(out, l.anchors)
	return out
}

// AddAnchor places an anchor on the line at the given position (0..1 along
// the line's length).
func (l *lineElement) AddAnchor(position float64, shape AnchorShapeType) (*Anchor, error) {
	if position < 0 || position > 1 {
		return nil, fmt.Errorf("anchor position %v out of range: %w", position, ErrInvalidArgument)
	}
	if shape == "" {
		shape = AnchorShapeNone
	}
	a := &Anchor{line: l, position: position, shape: shape}
	a.self = a
	if l.model != nil {
		if err := l.model.attach(a); err != nil {
			return nil, err
		}
	}
	l.anchors = append(l.anchors, a)
	l.fireProperty("anchor", nil, a)
	return a, nil
}

// RemoveAnchor terminates and detaches an anchor of this line. Points that
// were linked to the anchor are unlinked.
func (l *lineElement) RemoveAnchor(a *Anchor) error {
	if a == nil || a.line != l {
		return fmt.Errorf("anchor does not belong to this line: %w", ErrInvalidArgument)
	}
	if l.model != nil {
		l.model.cascadeRemoveChild(a)
	} else {
		a.terminate()
	}
	a.line = nil
	l.anchors = removeRef(l.anchors, a)
	l.fireProperty("anchor", a, nil)
	return nil
}

// LineStyle returns the line's stroke styling.
func (l *lineElement) LineStyle() LineStyleProperty { return l.lineStyle }

// SetLineStyle replaces the stroke styling. The line color is mandatory.
func (l *lineElement) SetLineStyle(p LineStyleProperty) error {
	if p.LineColor == "" {
		return fmt.Errorf("line style color: %w", ErrInvalidArgument)
	}
	old := l.lineStyle
	l.lineStyle = p
	l.fireProperty("lineStyle", old, p)
	return nil
}

// terminateLine removes all points and anchors, then runs the
// ElementInfo-level cascade.
func (l *lineElement) terminateLine() {
	for _, p := range l.Points() {
		if l.model != nil {
			l.model.cascadeRemoveChild(p)
		} else {
			p.terminate()
		}
		p.line = nil
	}
	l.points = nil
	for _, a := range l.Anchors() {
		if l.model != nil {
			l.model.cascadeRemoveChild(a)
		} else {
			a.terminate()
		}
		a.line = nil
	}
	l.anchors = nil
	l.terminateInfo()
}

// Interaction is a line element carrying biological meaning, optionally
// annotated with an Xref.
type Interaction struct {
	lineElement
	xref *xref.Xref
}

// NewInteraction builds a detached interaction with two endpoints at the origin.
func NewInteraction() *Interaction {
	it := &Interaction{}
	it.self = it
	it.initLine()
	return it
}

func (it *Interaction) Xref() *xref.Xref { return it.xref }
func (it *Interaction) SetXref(x *xref.Xref) {
	old := it.xref
	it.xref = x
	it.fireProperty("xref", old, x)
}

func (it *Interaction) terminate() { it.terminateLine() }

// GraphicalLine is a line element with no biological meaning.
type GraphicalLine struct {
	lineElement
}

// NewGraphicalLine builds a detached graphical line with two endpoints at the origin.
func NewGraphicalLine() *GraphicalLine {
	gl := &GraphicalLine{}
	gl.self = gl
	gl.initLine()
	return gl
}

func (gl *GraphicalLine) terminate() { gl.terminateLine() }

// LinePoint is one waypoint of a line. It may link to a LinkableTo target,
// in which case its absolute position tracks the target through relative
// coordinates.
type LinePoint struct {
	elementCore
	line       *lineElement
	x, y       float64
	arrowHead  ArrowHeadType
	elementRef LinkableTo
	relX, relY float64
}

// XY returns the point's absolute board coordinates.
func (p *LinePoint) XY() (float64, float64) { return p.x, p.y }

// SetXY moves the point.
func (p *LinePoint) SetXY(x, y float64) {
	p.x, p.y = x, y
	p.fireCoords()
}

func (p *LinePoint) ArrowHead() ArrowHeadType { return p.arrowHead }

func (p *LinePoint) SetArrowHead(t ArrowHeadType) error {
	if t == "" {
		return fmt.Errorf("arrowHead: %w", ErrInvalidArgument)
	}
	old := p.arrowHead
	p.arrowHead = t
	p.fireProperty("arrowHead", old, t)
	return nil
}

// ElementRef returns the linked target, or nil.
func (p *LinePoint) ElementRef() LinkableTo { return p.elementRef }

// RelPosition returns the point's coordinates relative to its target's bounds.
func (p *LinePoint) RelPosition() (relX, relY float64) { return p.relX, p.relY }

// LinkTo links the point to target at the given relative coordinates and
// records the link in the model's reference index. The target must be
// attached to the same model as the point's line.
func (p *LinePoint) LinkTo(target LinkableTo, relX, relY float64) error {
	if target == nil {
		return fmt.Errorf("elementRef: %w", ErrInvalidArgument)
	}
	m := p.Model()
	if m != nil && target.Model() != m {
		return fmt.Errorf("elementRef: target not attached to this model: %w", ErrIllegalState)
	}
	p.Unlink()
	p.elementRef = target
	p.relX, p.relY = relX, relY
	p.x, p.y = target.toAbsolute(relX, relY)
	if m != nil {
		m.elementRefs.add(target.ElementID(), p)
	}
	p.fireProperty("elementRef", nil, target)
	return nil
}

// Unlink clears the point's target link and its reference-index entry. The
// point keeps its last absolute coordinates.
func (p *LinePoint) Unlink() {
	target := p.elementRef
	if target == nil {
		return
	}
	p.elementRef = nil
	if m := p.Model(); m != nil && m.elementRefs.has(target.ElementID()) {
		_ = m.elementRefs.remove(target.ElementID(), p)
	}
	p.fireProperty("elementRef", target, nil)
}

// refresh recomputes the point's absolute coordinates from its target.
func (p *LinePoint) refresh() {
	if p.elementRef == nil {
		return
	}
	p.x, p.y = p.elementRef.toAbsolute(p.relX, p.relY)
}

func (p *LinePoint) terminate() {
	p.Unlink()
}

// Anchor is an attachment site on a line, placed at a fraction of the line's
// length. Anchors are linkable targets for other lines' points.
type Anchor struct {
	elementCore
	line     *lineElement
	position float64
	shape    AnchorShapeType
}

// Position returns the anchor's fraction along its line (0..1).
func (a *Anchor) Position() float64 { return a.position }

// SetPosition moves the anchor along its line.
func (a *Anchor) SetPosition(position float64) error {
	if position < 0 || position > 1 {
		return fmt.Errorf("anchor position %v out of range: %w", position, ErrInvalidArgument)
	}
	a.position = position
	a.fireCoords()
	return nil
}

func (a *Anchor) Shape() AnchorShapeType { return a.shape }

func (a *Anchor) SetShape(s AnchorShapeType) error {
	if s == "" {
		return fmt.Errorf("anchor shape: %w", ErrInvalidArgument)
	}
	old := a.shape
	a.shape = s
	a.fireProperty("shape", old, s)
	return nil
}

// toAbsolute places the anchor by linear interpolation along its line's
// polyline. Relative offsets are not meaningful for anchors and are ignored.
func (a *Anchor) toAbsolute(_, _ float64) (float64, float64) {
	pts := a.line.points
	if len(pts) < 2 {
		return 0, 0
	}
	total := 0.0
	lengths := make([]float64, len(pts)-1)
	for n := 0; n < len(pts)-1; n++ {
		x1, y1 := pts[n].XY()
		x2, y2 := pts[n+1].XY()
		lengths[n] = segLen(x1, y1, x2, y2)
		total += lengths[n]
	}
	if total == 0 {
		return pts[0].XY()
	}
	want := a.position * total
	for n, l := range lengths {
		if want <= l || n == len(lengths)-1 {
			f := 0.0
			if l > 0 {
				f = want / l
			}
			x1, y1 := pts[n].XY()
			x2, y2 := pts[n+1].XY()
			return x1 + f*(x2-x1), y1 + f*(y2-y1)
		}
		want -= l
	}
	return pts[len(pts)-1].XY()
}

func segLen(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func (a *Anchor) terminate() {}
