package gpml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/pathforge/gpml/internal/model"
	"github.com/pathforge/gpml/internal/xref"
)

// shaped is the slice of the model API the reader needs to style a shaped element.
type shaped interface {
	SetRect(model.RectProperty) error
	Font() model.FontProperty
	SetFont(model.FontProperty) error
	ShapeStyle() model.ShapeStyleProperty
	SetShapeStyle(model.ShapeStyleProperty) error
}

// line is the waypoint/anchor surface shared by interactions and graphical lines.
type line interface {
	Points() []*model.LinePoint
	StartPoint() *model.LinePoint
	EndPoint() *model.LinePoint
	InsertPoint(index int, x, y float64) (*model.LinePoint, error)
	AddAnchor(position float64, shape model.AnchorShapeType) (*model.Anchor, error)
	Anchors() []*model.Anchor
	LineStyle() model.LineStyleProperty
	SetLineStyle(model.LineStyleProperty) error
}

// annotated covers the comment/property/metadata-ref surface shared by
// first-class elements.
type annotated interface {
	AddComment(value, source string) (*model.Comment, error)
	SetDynamicProperty(key, value string) error
	AddAnnotationRef(*model.Annotation) (*model.AnnotationRef, error)
	AddCitationRef(*model.Citation) (*model.CitationRef, error)
	AddEvidenceRef(*model.Evidence) (*model.EvidenceRef, error)
}

// pending cross-references, resolved after every element is registered so
// forward references in the document work.
type pendingLink struct {
	point      *model.LinePoint
	targetID   string
	relX, relY float64
}

type pendingGroupRef struct {
	member  model.Groupable
	groupID string
}

type pendingAlias struct {
	dataNode *model.DataNode
	groupID  string
}

type pendingRefs struct {
	owner model.PathwayElement
	refs  xmlRefs
}

type readState struct {
	m           *model.PathwayModel
	links       []pendingLink
	memberships []pendingGroupRef
	aliases     []pendingAlias
	metadata    []pendingRefs

	// metadataByID maps file elementIds of annotations, citations and
	// evidences to the instance that survived de-duplication, so refs naming
	// a discarded duplicate still resolve.
	metadataByID map[string]model.PathwayElement
}

// ReadFile loads a GPML document from disk.
func ReadFile(path string) (*model.PathwayModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read gpml %s: %w", path, err)
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read gpml %s: %w", path, err)
	}
	return m, nil
}

// Read decodes a GPML document into a fresh PathwayModel. Elements are added
// first, keeping their file elementIds; cross-references (groupRef, aliasRef,
// elementRef, metadata refs) resolve in a second pass.
func Read(r io.Reader) (*model.PathwayModel, error) {
	var doc xmlPathway
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	st := &readState{m: model.NewPathwayModel(), metadataByID: make(map[string]model.PathwayElement)}
	if err := st.readPathway(doc); err != nil {
		return nil, err
	}
	if err := st.readGroups(doc.Groups); err != nil {
		return nil, err
	}
	if err := st.readMetadata(doc); err != nil {
		return nil, err
	}
	if err := st.readDataNodes(doc.DataNodes); err != nil {
		return nil, err
	}
	if err := st.readLabels(doc.Labels); err != nil {
		return nil, err
	}
	if err := st.readShapes(doc.Shapes); err != nil {
		return nil, err
	}
	if err := st.readLines(doc); err != nil {
		return nil, err
	}
	if err := st.resolve(); err != nil {
		return nil, err
	}
	st.m.ClearChanged()
	return st.m, nil
}

func (st *readState) readPathway(doc xmlPathway) error {
	p := st.m.Pathway()
	if doc.Title != "" {
		if err := p.SetTitle(doc.Title); err != nil {
			return err
		}
	}
	p.SetOrganism(doc.Organism)
	p.SetSource(doc.Source)
	p.SetVersion(doc.Version)
	p.SetLicense(doc.License)
	p.SetDescription(doc.Description)
	if doc.Graphics.BoardWidth > 0 && doc.Graphics.BoardHeight > 0 {
		return p.SetBoardSize(doc.Graphics.BoardWidth, doc.Graphics.BoardHeight)
	}
	return nil
}

func (st *readState) readGroups(groups []xmlGroup) error {
	for _, xg := range groups {
		g := model.NewGroup(model.GroupType(xg.Type))
		if err := prepare(g, xg.ElementID); err != nil {
			return err
		}
		g.SetTextLabel(xg.TextLabel)
		if err := applyShaped(g, xg.Graphics); err != nil {
			return fmt.Errorf("group %s: %w", xg.ElementID, err)
		}
		g.SetXref(toXref(xg.Xref))
		if err := st.m.AddGroup(g); err != nil {
			return err
		}
		st.member(g, xg.GroupRef)
		st.metadata = append(st.metadata, pendingRefs{owner: g, refs: xg.xmlRefs})
	}
	return nil
}

func (st *readState) readMetadata(doc xmlPathway) error {
	for _, xa := range doc.Annotations {
		a, err := model.NewAnnotation(xa.Value, model.AnnotationType(xa.Type))
		if err != nil {
			return fmt.Errorf("annotation %s: %w", xa.ElementID, err)
		}
		if err := prepare(a, xa.ElementID); err != nil {
			return err
		}
		a.SetXref(toXref(xa.Xref))
		a.SetURLLink(xa.URLLink)
		stored, err := st.m.AddAnnotation(a)
		if err != nil {
			return err
		}
		if xa.ElementID != "" {
			st.metadataByID[xa.ElementID] = stored
		}
	}
	for _, xc := range doc.Citations {
		c, err := model.NewCitation(toXref(xc.Xref), xc.URLLink)
		if err != nil {
			return fmt.Errorf("citation %s: %w", xc.ElementID, err)
		}
		if err := prepare(c, xc.ElementID); err != nil {
			return err
		}
		stored, err := st.m.AddCitation(c)
		if err != nil {
			return err
		}
		if xc.ElementID != "" {
			st.metadataByID[xc.ElementID] = stored
		}
	}
	for _, xe := range doc.Evidences {
		ev, err := model.NewEvidence(xe.Value, toXref(xe.Xref), xe.URLLink)
		if err != nil {
			return fmt.Errorf("evidence %s: %w", xe.ElementID, err)
		}
		if err := prepare(ev, xe.ElementID); err != nil {
			return err
		}
		stored, err := st.m.AddEvidence(ev)
		if err != nil {
			return err
		}
		if xe.ElementID != "" {
			st.metadataByID[xe.ElementID] = stored
		}
	}
	return nil
}

func (st *readState) readDataNodes(nodes []xmlDataNode) error {
	for _, xd := range nodes {
		d := model.NewDataNode(xd.TextLabel, model.DataNodeType(xd.Type))
		if err := prepare(d, xd.ElementID); err != nil {
			return err
		}
		if err := applyShaped(d, xd.Graphics); err != nil {
			return fmt.Errorf("dataNode %s: %w", xd.ElementID, err)
		}
		d.SetXref(toXref(xd.Xref))
		for _, xs := range xd.States {
			s, err := d.AddState(xs.TextLabel, model.StateType(xs.Type))
			if err != nil {
				return fmt.Errorf("state %s: %w", xs.ElementID, err)
			}
			if err := prepare(s, xs.ElementID); err != nil {
				return err
			}
			if err := applyShaped(s, xs.Graphics); err != nil {
				return fmt.Errorf("state %s: %w", xs.ElementID, err)
			}
			if err := s.SetRelPosition(xs.RelX, xs.RelY); err != nil {
				return fmt.Errorf("state %s: %w", xs.ElementID, err)
			}
			s.SetXref(toXref(xs.Xref))
		}
		if err := st.m.AddDataNode(d); err != nil {
			return err
		}
		st.member(d, xd.GroupRef)
		if xd.AliasRef != "" {
			st.aliases = append(st.aliases, pendingAlias{dataNode: d, groupID: xd.AliasRef})
		}
		st.metadata = append(st.metadata, pendingRefs{owner: d, refs: xd.xmlRefs})
	}
	return nil
}

func (st *readState) readLabels(labels []xmlLabel) error {
	for _, xl := range labels {
		lb, err := model.NewLabel(xl.TextLabel)
		if err != nil {
			return fmt.Errorf("label %s: %w", xl.ElementID, err)
		}
		if err := prepare(lb, xl.ElementID); err != nil {
			return err
		}
		lb.SetHref(xl.Href)
		if err := applyShaped(lb, xl.Graphics); err != nil {
			return fmt.Errorf("label %s: %w", xl.ElementID, err)
		}
		if err := st.m.AddLabel(lb); err != nil {
			return err
		}
		st.member(lb, xl.GroupRef)
		st.metadata = append(st.metadata, pendingRefs{owner: lb, refs: xl.xmlRefs})
	}
	return nil
}

func (st *readState) readShapes(shapes []xmlShape) error {
	for _, xs := range shapes {
		s := model.NewShape(model.ShapeType(xs.Graphics.ShapeType))
		if err := prepare(s, xs.ElementID); err != nil {
			return err
		}
		s.SetTextLabel(xs.TextLabel)
		if err := applyShaped(s, xs.Graphics); err != nil {
			return fmt.Errorf("shape %s: %w", xs.ElementID, err)
		}
		if err := st.m.AddShape(s); err != nil {
			return err
		}
		st.member(s, xs.GroupRef)
		st.metadata = append(st.metadata, pendingRefs{owner: s, refs: xs.xmlRefs})
	}
	return nil
}

func (st *readState) readLines(doc xmlPathway) error {
	for _, xi := range doc.Interactions {
		it := model.NewInteraction()
		if err := prepare(it, xi.ElementID); err != nil {
			return err
		}
		it.SetXref(toXref(xi.Xref))
		if err := st.buildLine(it, xi.Points, xi.Anchors, xi.Graphics); err != nil {
			return fmt.Errorf("interaction %s: %w", xi.ElementID, err)
		}
		if err := st.m.AddInteraction(it); err != nil {
			return err
		}
		st.member(it, xi.GroupRef)
		st.metadata = append(st.metadata, pendingRefs{owner: it, refs: xi.xmlRefs})
	}
	for _, xg := range doc.GraphicalLines {
		gl := model.NewGraphicalLine()
		if err := prepare(gl, xg.ElementID); err != nil {
			return err
		}
		if err := st.buildLine(gl, xg.Points, xg.Anchors, xg.Graphics); err != nil {
			return fmt.Errorf("graphicalLine %s: %w", xg.ElementID, err)
		}
		if err := st.m.AddGraphicalLine(gl); err != nil {
			return err
		}
		st.member(gl, xg.GroupRef)
		st.metadata = append(st.metadata, pendingRefs{owner: gl, refs: xg.xmlRefs})
	}
	return nil
}

// buildLine wires a detached line's waypoints, anchors and styling from the
// document. Endpoints map onto the line's two constructor points; extra
// waypoints are inserted between them.
func (st *readState) buildLine(l line, points []xmlPoint, anchors []xmlAnchor, g xmlLineGraphics) error {
	if len(points) < 2 {
		return fmt.Errorf("line needs at least 2 points, found %d", len(points))
	}
	modelPoints := make([]*model.LinePoint, 0, len(points))
	modelPoints = append(modelPoints, l.StartPoint())
	for i := 1; i < len(points)-1; i++ {
		p, err := l.InsertPoint(i, points[i].X, points[i].Y)
		if err != nil {
			return err
		}
		modelPoints = append(modelPoints, p)
	}
	modelPoints = append(modelPoints, l.EndPoint())

	for i, xp := range points {
		p := modelPoints[i]
		if err := prepare(p, xp.ElementID); err != nil {
			return err
		}
		p.SetXY(xp.X, xp.Y)
		if xp.ArrowHead != "" {
			if err := p.SetArrowHead(model.ArrowHeadType(xp.ArrowHead)); err != nil {
				return err
			}
		}
		if xp.ElementRef != "" {
			st.links = append(st.links, pendingLink{point: p, targetID: xp.ElementRef, relX: xp.RelX, relY: xp.RelY})
		}
	}

	for _, xa := range anchors {
		a, err := l.AddAnchor(xa.Position, model.AnchorShapeType(xa.Shape))
		if err != nil {
			return err
		}
		if err := prepare(a, xa.ElementID); err != nil {
			return err
		}
	}

	style := l.LineStyle()
	if g.LineColor != "" {
		style.LineColor = g.LineColor
	}
	if g.LineWidth > 0 {
		style.LineWidth = g.LineWidth
	}
	if g.ConnectorType != "" {
		style.ConnectorType = model.ConnectorType(g.ConnectorType)
	}
	style.ZOrder = g.ZOrder
	return l.SetLineStyle(style)
}

// resolve wires up the deferred cross-references now that every elementId is
// registered.
func (st *readState) resolve() error {
	for _, mr := range st.memberships {
		e, ok := st.m.GetPathwayObject(mr.groupID)
		if !ok {
			return fmt.Errorf("groupRef %q of %s: %w", mr.groupID, mr.member.ElementID(), model.ErrNotFound)
		}
		g, ok := e.(*model.Group)
		if !ok {
			return fmt.Errorf("groupRef %q of %s: not a group", mr.groupID, mr.member.ElementID())
		}
		if err := mr.member.SetGroupRefTo(g); err != nil {
			return err
		}
	}
	for _, al := range st.aliases {
		e, ok := st.m.GetPathwayObject(al.groupID)
		if !ok {
			return fmt.Errorf("aliasRef %q of %s: %w", al.groupID, al.dataNode.ElementID(), model.ErrNotFound)
		}
		g, ok := e.(*model.Group)
		if !ok {
			return fmt.Errorf("aliasRef %q of %s: not a group", al.groupID, al.dataNode.ElementID())
		}
		if err := al.dataNode.SetAliasRefTo(g); err != nil {
			return err
		}
	}
	for _, ln := range st.links {
		e, ok := st.m.GetPathwayObject(ln.targetID)
		if !ok {
			return fmt.Errorf("elementRef %q of point %s: %w", ln.targetID, ln.point.ElementID(), model.ErrNotFound)
		}
		target, ok := e.(model.LinkableTo)
		if !ok {
			return fmt.Errorf("elementRef %q of point %s: not linkable", ln.targetID, ln.point.ElementID())
		}
		if err := ln.point.LinkTo(target, ln.relX, ln.relY); err != nil {
			return err
		}
	}
	for _, pr := range st.metadata {
		if err := st.applyRefs(pr.owner, pr.refs); err != nil {
			return err
		}
	}
	return nil
}

func (st *readState) applyRefs(owner model.PathwayElement, refs xmlRefs) error {
	a, ok := owner.(annotated)
	if !ok {
		return nil
	}
	for _, xc := range refs.Comments {
		if xc.Value == "" {
			continue
		}
		if _, err := a.AddComment(xc.Value, xc.Source); err != nil {
			return err
		}
	}
	for _, xp := range refs.Properties {
		if err := a.SetDynamicProperty(xp.Key, xp.Value); err != nil {
			return err
		}
	}
	for _, xr := range refs.AnnotationRefs {
		ann, err := resolveAs[*model.Annotation](st, xr.ElementRef, "annotationRef")
		if err != nil {
			return err
		}
		if _, err := a.AddAnnotationRef(ann); err != nil {
			return err
		}
	}
	for _, xr := range refs.CitationRefs {
		cit, err := resolveAs[*model.Citation](st, xr.ElementRef, "citationRef")
		if err != nil {
			return err
		}
		if _, err := a.AddCitationRef(cit); err != nil {
			return err
		}
	}
	for _, xr := range refs.EvidenceRefs {
		ev, err := resolveAs[*model.Evidence](st, xr.ElementRef, "evidenceRef")
		if err != nil {
			return err
		}
		if _, err := a.AddEvidenceRef(ev); err != nil {
			return err
		}
	}
	return nil
}

// resolveAs resolves a metadata reference, honouring the de-duplication that
// may have replaced the named file id's entity with an earlier equal one.
func resolveAs[T model.PathwayElement](st *readState, id, what string) (T, error) {
	if e, ok := st.metadataByID[id]; ok {
		t, ok := e.(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("%s %q: wrong element kind %T", what, id, e)
		}
		return t, nil
	}
	return lookupAs[T](st.m, id, what)
}

func lookupAs[T model.PathwayElement](m *model.PathwayModel, id, what string) (T, error) {
	var zero T
	e, ok := m.GetPathwayObject(id)
	if !ok {
		return zero, fmt.Errorf("%s %q: %w", what, id, model.ErrNotFound)
	}
	t, ok := e.(T)
	if !ok {
		return zero, fmt.Errorf("%s %q: wrong element kind %T", what, id, e)
	}
	return t, nil
}

func (st *readState) member(member model.Groupable, groupID string) {
	if groupID != "" {
		st.memberships = append(st.memberships, pendingGroupRef{member: member, groupID: groupID})
	}
}

// prepare assigns an element's file elementId while it is still detached.
// Elements without one keep the registry-generated id they get on attach.
func prepare(e interface{ SetElementID(string) error }, id string) error {
	if id == "" {
		return nil
	}
	return e.SetElementID(id)
}

// applyShaped styles a shaped element from its Graphics child, keeping model
// defaults for attributes the document omits.
func applyShaped(s shaped, g xmlShapedGraphics) error {
	if err := s.SetRect(model.RectProperty{CenterX: g.CenterX, CenterY: g.CenterY, Width: g.Width, Height: g.Height}); err != nil {
		return err
	}
	font := s.Font()
	if g.TextColor != "" {
		font.TextColor = g.TextColor
	}
	if g.FontName != "" {
		font.FontName = g.FontName
	}
	if g.FontSize > 0 {
		font.FontSize = g.FontSize
	}
	if err := s.SetFont(font); err != nil {
		return err
	}
	style := s.ShapeStyle()
	if g.BorderColor != "" {
		style.BorderColor = g.BorderColor
	}
	if g.FillColor != "" {
		style.FillColor = g.FillColor
	}
	if g.ShapeType != "" {
		style.ShapeType = model.ShapeType(g.ShapeType)
	}
	style.ZOrder = g.ZOrder
	return s.SetShapeStyle(style)
}

func toXref(x *xmlXref) *xref.Xref {
	if x == nil || (x.Identifier == "" && x.DataSource == "") {
		return nil
	}
	return &xref.Xref{Identifier: x.Identifier, DataSource: x.DataSource}
}
