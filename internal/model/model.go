// Package model implements the in-memory object model for GPML pathway
// diagrams: typed elements, shared metadata entities, and the bookkeeping
// that keeps elementId-based cross-references consistent while the diagram
// is edited.
package model

import (
	"fmt"
	"log/slog"

	"github.com/pathforge/gpml/internal/metrics"
)

// PathwayModel owns all elements of one pathway diagram, the identifier
// registry, and the three reference indices. It is single-writer: concurrent
// mutation from multiple goroutines is unsupported.
type PathwayModel struct {
	pathway *Pathway

	dataNodes      []*DataNode
	interactions   []*Interaction
	graphicalLines []*GraphicalLine
	labels         []*Label
	shapes         []*Shape
	groups         []*Group
	annotations    []*Annotation
	citations      []*Citation
	evidences      []*Evidence

	ids *idRegistry

	// Independent multimap indices, one per reference kind.
	elementRefs *linkIndex // target id → line points linked to it
	groupRefs   *linkIndex // group id → member elements
	aliasRefs   *linkIndex // group id → aliasing data nodes

	listeners []Listener
	changed   bool
}

// NewPathwayModel creates an empty model holding only its Pathway metadata record.
func NewPathwayModel() *PathwayModel {
	m := &PathwayModel{
		ids:         newIDRegistry(),
		elementRefs: newLinkIndex(),
		groupRefs:   newLinkIndex(),
		aliasRefs:   newLinkIndex(),
	}
	p := newPathway()
	p.elementID = m.ids.generateUnique()
	p.model = m
	if err := m.ids.add(p.elementID, p); err != nil {
		// Unreachable: the id was just generated against an empty registry.
		panic(err)
	}
	m.pathway = p
	return m
}

// Pathway returns the model's metadata record.
func (m *PathwayModel) Pathway() *Pathway { return m.pathway }

// GetPathwayObject looks up any element by its elementId.
func (m *PathwayModel) GetPathwayObject(id string) (PathwayElement, bool) {
	return m.ids.get(id)
}

// HasPathwayObject reports whether id is registered.
func (m *PathwayModel) HasPathwayObject(id string) bool { return m.ids.has(id) }

// ObjectCount returns the number of registered elements, the pathway record included.
func (m *PathwayModel) ObjectCount() int { return m.ids.size() }

// GenerateElementID returns an identifier not currently registered.
func (m *PathwayModel) GenerateElementID() string { return m.ids.generateUnique() }

// attach wires an element into this model: back-reference, identifier, and
// inbound-link backfill. Fails fast if the element belongs to any model already.
func (m *PathwayModel) attach(e PathwayElement) error {
	c := e.core()
	if c.model == m {
		return fmt.Errorf("attach %s: already in this model: %w", kindOf(e), ErrIllegalState)
	}
	if c.model != nil {
		return fmt.Errorf("attach %s: already attached to another model: %w", kindOf(e), ErrIllegalState)
	}
	if c.elementID == "" {
		c.elementID = m.ids.generateUnique()
	}
	if err := m.ids.add(c.elementID, e); err != nil {
		return fmt.Errorf("attach %s: %w", kindOf(e), err)
	}
	c.model = m
	c.terminated = false
	if target, ok := e.(LinkableTo); ok {
		m.registerInboundLinks(target)
	}
	return nil
}

// registerInboundLinks indexes pre-declared elementRefs of already-attached
// line points that name the newly attached target.
func (m *PathwayModel) registerInboundLinks(target LinkableTo) {
	forEachLine(m, func(l *lineElement) {
		for _, p := range l.points {
			if p.elementRef == target && p.Model() == m {
				m.elementRefs.add(target.ElementID(), p)
				p.refresh()
			}
		}
	})
}

// detach reverses a successful attach while a multi-element add is being
// unwound: the registry entry and back-reference are dropped, along with any
// index entries naming the element as a link target. The element keeps its
// id, so a retry reattaches it under the same identifier.
func (m *PathwayModel) detach(e PathwayElement) {
	c := e.core()
	if c.model != m {
		return
	}
	if _, ok := e.(LinkableTo); ok {
		for _, l := range m.elementRefs.linkers(c.elementID) {
			_ = m.elementRefs.remove(c.elementID, l)
		}
	}
	m.ids.remove(c.elementID)
	c.model = nil
}

// unwind detaches, in reverse attach order, the elements of an add that
// failed partway, so a failed add leaves the model untouched.
func (m *PathwayModel) unwind(attached []PathwayElement) {
	for n := len(attached) - 1; n >= 0; n-- {
		m.detach(attached[n])
	}
}

// unlinkInbound clears every line point currently linked to e.
func (m *PathwayModel) unlinkInbound(e PathwayElement) {
	id := e.ElementID()
	if id == "" {
		return
	}
	for _, linker := range m.elementRefs.linkers(id) {
		if p, ok := linker.(*LinePoint); ok {
			p.Unlink()
		}
	}
}

// removeElement runs the cascade-delete protocol: unlink inbound references,
// terminate, drop the identifier, detach. Idempotent on an element already
// mid-termination; an element of another model is rejected.
func (m *PathwayModel) removeElement(e PathwayElement) error {
	c := e.core()
	if c.model != m {
		return fmt.Errorf("remove %s: not in this model: %w", kindOf(e), ErrIllegalState)
	}
	if c.terminated {
		return nil
	}
	c.terminated = true
	m.unlinkInbound(e)
	e.terminate()
	m.ids.remove(c.elementID)
	c.model = nil
	metrics.ElementsRemoved.WithLabelValues(kindOf(e)).Inc()
	m.fire(ModelEvent{Kind: EventElementRemoved, Source: e})
	return nil
}

// cascadeRemoveChild detaches an owned child (state, point, anchor) during a
// parent's termination. Already-detached children are left alone.
func (m *PathwayModel) cascadeRemoveChild(child PathwayElement) {
	c := child.core()
	if c.model != m || c.terminated {
		return
	}
	c.terminated = true
	m.unlinkInbound(child)
	child.terminate()
	m.ids.remove(c.elementID)
	c.model = nil
	metrics.ElementsRemoved.WithLabelValues(kindOf(child)).Inc()
	m.fire(ModelEvent{Kind: EventElementRemoved, Source: child})
}

func (m *PathwayModel) fireAdded(e PathwayElement) {
	metrics.ElementsAdded.WithLabelValues(kindOf(e)).Inc()
	m.fire(ModelEvent{Kind: EventElementAdded, Source: e})
}

// registerDeclaredRefs indexes references an element carried while detached,
// provided their targets live in this model.
func (m *PathwayModel) registerDeclaredRefs(e PathwayElement) {
	if g, ok := e.(Groupable); ok {
		if grp := g.GroupRef(); grp != nil && grp.Model() == m {
			m.groupRefs.add(grp.ElementID(), e)
		}
	}
	if dn, ok := e.(*DataNode); ok {
		if grp := dn.aliasRef; grp != nil && grp.Model() == m {
			m.aliasRefs.add(grp.ElementID(), dn)
		}
	}
}

// ---------------------------------------------------------------------------
// Typed collections
// ---------------------------------------------------------------------------

// DataNodes returns a copy of the data node collection.
func (m *PathwayModel) DataNodes() []*DataNode {
	out := make([]*DataNode, len(m.dataNodes))
	copy(out, m.dataNodes)
	return out
}

// AddDataNode attaches d and its states to this model.
func (m *PathwayModel) AddDataNode(d *DataNode) error {
	if d == nil {
		return fmt.Errorf("addDataNode: %w", ErrInvalidArgument)
	}
	if err := m.attach(d); err != nil {
		return err
	}
	attached := []PathwayElement{d}
	for _, s := range d.states {
		if err := m.attach(s); err != nil {
			m.unwind(attached)
			return err
		}
		attached = append(attached, s)
	}
	m.dataNodes = append(m.dataNodes, d)
	m.registerDeclaredRefs(d)
	m.fireAdded(d)
	return nil
}

// RemoveDataNode terminates d (states first, alias pairing, metadata refs,
// group membership) and detaches it.
func (m *PathwayModel) RemoveDataNode(d *DataNode) error {
	if err := m.removeElement(d); err != nil {
		return err
	}
	m.dataNodes = removeRef(m.dataNodes, d)
	return nil
}

// Interactions returns a copy of the interaction collection.
func (m *PathwayModel) Interactions() []*Interaction {
	out := make([]*Interaction, len(m.interactions))
	copy(out, m.interactions)
	return out
}

// AddInteraction attaches it, its points and its anchors to this model.
func (m *PathwayModel) AddInteraction(it *Interaction) error {
	if it == nil {
		return fmt.Errorf("addInteraction: %w", ErrInvalidArgument)
	}
	if err := m.attachLine(it, &it.lineElement); err != nil {
		return err
	}
	m.interactions = append(m.interactions, it)
	m.fireAdded(it)
	return nil
}

// RemoveInteraction terminates it (points and anchors first) and detaches it.
func (m *PathwayModel) RemoveInteraction(it *Interaction) error {
	if err := m.removeElement(it); err != nil {
		return err
	}
	m.interactions = removeRef(m.interactions, it)
	return nil
}

// GraphicalLines returns a copy of the graphical line collection.
func (m *PathwayModel) GraphicalLines() []*GraphicalLine {
	out := make([]*GraphicalLine, len(m.graphicalLines))
	copy(out, m.graphicalLines)
	return out
}

// AddGraphicalLine attaches gl, its points and its anchors to this model.
func (m *PathwayModel) AddGraphicalLine(gl *GraphicalLine) error {
	if gl == nil {
		return fmt.Errorf("addGraphicalLine: %w", ErrInvalidArgument)
	}
	if err := m.attachLine(gl, &gl.lineElement); err != nil {
		return err
	}
	m.graphicalLines = append(m.graphicalLines, gl)
	m.fireAdded(gl)
	return nil
}

// RemoveGraphicalLine terminates gl and detaches it.
func (m *PathwayModel) RemoveGraphicalLine(gl *GraphicalLine) error {
	if err := m.removeElement(gl); err != nil {
		return err
	}
	m.graphicalLines = removeRef(m.graphicalLines, gl)
	return nil
}

func (m *PathwayModel) attachLine(e PathwayElement, l *lineElement) error {
	if err := m.attach(e); err != nil {
		return err
	}
	attached := []PathwayElement{e}
	for _, p := range l.points {
		if err := m.attach(p); err != nil {
			m.unwind(attached)
			return err
		}
		attached = append(attached, p)
	}
	for _, a := range l.anchors {
		if err := m.attach(a); err != nil {
			m.unwind(attached)
			return err
		}
		attached = append(attached, a)
	}
	// Index elementRefs the points declared while detached.
	for _, p := range l.points {
		if t := p.elementRef; t != nil && t.Model() == m {
			m.elementRefs.add(t.ElementID(), p)
			p.refresh()
		}
	}
	m.registerDeclaredRefs(e)
	return nil
}

// Labels returns a copy of the label collection.
func (m *PathwayModel) Labels() []*Label {
	out := make([]*Label, len(m.labels))
	copy(out, m.labels)
	return out
}

// AddLabel attaches lb to this model.
func (m *PathwayModel) AddLabel(lb *Label) error {
	if lb == nil {
		return fmt.Errorf("addLabel: %w", ErrInvalidArgument)
	}
	if err := m.attach(lb); err != nil {
		return err
	}
	m.labels = append(m.labels, lb)
	m.registerDeclaredRefs(lb)
	m.fireAdded(lb)
	return nil
}

// RemoveLabel terminates lb and detaches it.
func (m *PathwayModel) RemoveLabel(lb *Label) error {
	if err := m.removeElement(lb); err != nil {
		return err
	}
	m.labels = removeRef(m.labels, lb)
	return nil
}

// Shapes returns a copy of the shape collection.
func (m *PathwayModel) Shapes() []*Shape {
	out := make([]*Shape, len(m.shapes))
	copy(out, m.shapes)
	return out
}

// AddShape attaches s to this model.
func (m *PathwayModel) AddShape(s *Shape) error {
	if s == nil {
		return fmt.Errorf("addShape: %w", ErrInvalidArgument)
	}
	if err := m.attach(s); err != nil {
		return err
	}
	m.shapes = append(m.shapes, s)
	m.registerDeclaredRefs(s)
	m.fireAdded(s)
	return nil
}

// RemoveShape terminates s and detaches it.
func (m *PathwayModel) RemoveShape(s *Shape) error {
	if err := m.removeElement(s); err != nil {
		return err
	}
	m.shapes = removeRef(m.shapes, s)
	return nil
}

// Groups returns a copy of the group collection.
func (m *PathwayModel) Groups() []*Group {
	out := make([]*Group, len(m.groups))
	copy(out, m.groups)
	return out
}

// AddGroup attaches g to this model and indexes memberships and alias
// pairings declared against g while it was detached.
func (m *PathwayModel) AddGroup(g *Group) error {
	if g == nil {
		return fmt.Errorf("addGroup: %w", ErrInvalidArgument)
	}
	if err := m.attach(g); err != nil {
		return err
	}
	m.groups = append(m.groups, g)
	m.registerDeclaredRefs(g)
	// Backfill: elements of this model may already name g.
	for _, member := range m.groupables() {
		if member.GroupRef() == g {
			m.groupRefs.add(g.ElementID(), member)
		}
	}
	for _, dn := range m.dataNodes {
		if dn.aliasRef == g {
			m.aliasRefs.add(g.ElementID(), dn)
		}
	}
	m.fireAdded(g)
	return nil
}

// RemoveGroup terminates g, clearing every member's groupRef and detaching
// dependent aliases, then removes g from the model.
func (m *PathwayModel) RemoveGroup(g *Group) error {
	if err := m.removeElement(g); err != nil {
		return err
	}
	m.groups = removeRef(m.groups, g)
	return nil
}

// ---------------------------------------------------------------------------
// De-duplicated metadata collections
// ---------------------------------------------------------------------------

// Annotations returns a copy of the annotation collection.
func (m *PathwayModel) Annotations() []*Annotation {
	out := make([]*Annotation, len(m.annotations))
	copy(out, m.annotations)
	return out
}

// AddAnnotation stores a, unless a value-equal annotation already exists, in
// which case the existing instance is returned and a is discarded. Callers
// must use the returned instance.
func (m *PathwayModel) AddAnnotation(a *Annotation) (*Annotation, error) {
	if a == nil {
		return nil, fmt.Errorf("addAnnotation: %w", ErrInvalidArgument)
	}
	if a.Model() == m {
		return a, nil
	}
	for _, have := range m.annotations {
		if have.equalsContent(a) {
			return have, nil
		}
	}
	if err := m.attach(a); err != nil {
		return nil, err
	}
	m.annotations = append(m.annotations, a)
	m.fireAdded(a)
	return a, nil
}

// RemoveAnnotation detaches a and unlinks every ref still pointing at it.
func (m *PathwayModel) RemoveAnnotation(a *Annotation) error {
	if err := m.removeElement(a); err != nil {
		return err
	}
	m.annotations = removeRef(m.annotations, a)
	return nil
}

// Citations returns a copy of the citation collection.
func (m *PathwayModel) Citations() []*Citation {
	out := make([]*Citation, len(m.citations))
	copy(out, m.citations)
	return out
}

// AddCitation stores c with the same de-duplication contract as AddAnnotation.
func (m *PathwayModel) AddCitation(c *Citation) (*Citation, error) {
	if c == nil {
		return nil, fmt.Errorf("addCitation: %w", ErrInvalidArgument)
	}
	if c.Model() == m {
		return c, nil
	}
	for _, have := range m.citations {
		if have.equalsContent(c) {
			return have, nil
		}
	}
	if err := m.attach(c); err != nil {
		return nil, err
	}
	m.citations = append(m.citations, c)
	m.fireAdded(c)
	return c, nil
}

// RemoveCitation detaches c and unlinks every ref still pointing at it.
func (m *PathwayModel) RemoveCitation(c *Citation) error {
	if err := m.removeElement(c); err != nil {
		return err
	}
	m.citations = removeRef(m.citations, c)
	return nil
}

// Evidences returns a copy of the evidence collection.
func (m *PathwayModel) Evidences() []*Evidence {
	out := make([]*Evidence, len(m.evidences))
	copy(out, m.evidences)
	return out
}

// AddEvidence stores ev with the same de-duplication contract as AddAnnotation.
func (m *PathwayModel) AddEvidence(ev *Evidence) (*Evidence, error) {
	if ev == nil {
		return nil, fmt.Errorf("addEvidence: %w", ErrInvalidArgument)
	}
	if ev.Model() == m {
		return ev, nil
	}
	for _, have := range m.evidences {
		if have.equalsContent(ev) {
			return have, nil
		}
	}
	if err := m.attach(ev); err != nil {
		return nil, err
	}
	m.evidences = append(m.evidences, ev)
	m.fireAdded(ev)
	return ev, nil
}

// RemoveEvidence detaches ev and unlinks every ref still pointing at it.
func (m *PathwayModel) RemoveEvidence(ev *Evidence) error {
	if err := m.removeElement(ev); err != nil {
		return err
	}
	m.evidences = removeRef(m.evidences, ev)
	return nil
}

// ---------------------------------------------------------------------------
// Generic removal and the dangling-reference sweep
// ---------------------------------------------------------------------------

// RemovePathwayObject removes any first-class element by dispatching to its
// typed removal. The Pathway metadata record is protected and cannot be removed.
func (m *PathwayModel) RemovePathwayObject(e PathwayElement) error {
	switch v := e.(type) {
	case nil:
		return fmt.Errorf("removePathwayObject: %w", ErrInvalidArgument)
	case *Pathway:
		return fmt.Errorf("the pathway metadata record cannot be removed: %w", ErrIllegalState)
	case *DataNode:
		return m.RemoveDataNode(v)
	case *State:
		if v.DataNode() == nil {
			return fmt.Errorf("remove state: no owning data node: %w", ErrIllegalState)
		}
		return v.DataNode().RemoveState(v)
	case *Interaction:
		return m.RemoveInteraction(v)
	case *GraphicalLine:
		return m.RemoveGraphicalLine(v)
	case *Label:
		return m.RemoveLabel(v)
	case *Shape:
		return m.RemoveShape(v)
	case *Group:
		return m.RemoveGroup(v)
	case *Annotation:
		return m.RemoveAnnotation(v)
	case *Citation:
		return m.RemoveCitation(v)
	case *Evidence:
		return m.RemoveEvidence(v)
	default:
		return fmt.Errorf("removePathwayObject: unsupported element %T: %w", e, ErrInvalidArgument)
	}
}

// groupables collects every element capable of group membership.
func (m *PathwayModel) groupables() []Groupable {
	out := make([]Groupable, 0,
		len(m.dataNodes)+len(m.labels)+len(m.shapes)+len(m.groups)+len(m.interactions)+len(m.graphicalLines))
	for _, d := range m.dataNodes {
		out = append(out, d)
	}
	for _, lb := range m.labels {
		out = append(out, lb)
	}
	for _, s := range m.shapes {
		out = append(out, s)
	}
	for _, g := range m.groups {
		out = append(out, g)
	}
	for _, it := range m.interactions {
		out = append(out, it)
	}
	for _, gl := range m.graphicalLines {
		out = append(out, gl)
	}
	return out
}

func forEachLine(m *PathwayModel, fn func(*lineElement)) {
	for _, it := range m.interactions {
		fn(&it.lineElement)
	}
	for _, gl := range m.graphicalLines {
		fn(&gl.lineElement)
	}
}

// FixDanglingRefs scans all elements for references to identifiers no longer
// present and clears them, returning the number of repairs. This is a
// pre-save safety net; with the rest of the bookkeeping correct it finds
// nothing, so every repair is logged as a warning.
func (m *PathwayModel) FixDanglingRefs() int {
	repaired := 0
	forEachLine(m, func(l *lineElement) {
		for _, p := range l.points {
			t := p.ElementRef()
			if t != nil && (t.Model() != m || !m.ids.has(t.ElementID())) {
				slog.Warn("clearing dangling elementRef", "point", p.ElementID(), "target", t.ElementID())
				p.Unlink()
				repaired++
			}
		}
	})
	for _, member := range m.groupables() {
		g := member.GroupRef()
		if g != nil && (g.Model() != m || !m.ids.has(g.ElementID())) {
			slog.Warn("clearing dangling groupRef", "member", member.ElementID(), "group", g.ElementID())
			member.UnsetGroupRef()
			repaired++
		}
	}
	for _, dn := range m.dataNodes {
		g := dn.AliasRef()
		if g != nil && (g.Model() != m || !m.ids.has(g.ElementID())) {
			slog.Warn("clearing dangling aliasRef", "dataNode", dn.ElementID(), "group", g.ElementID())
			dn.UnsetAliasRef()
			repaired++
		}
	}
	if repaired > 0 {
		metrics.DanglingRefsRepaired.Add(float64(repaired))
	}
	return repaired
}
