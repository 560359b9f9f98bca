package gpml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/pathforge/gpml/internal/model"
	"github.com/pathforge/gpml/internal/xref"
)

// WriteFile saves a model as a GPML document on disk.
func WriteFile(path string, m *model.PathwayModel) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write gpml %s: %w", path, err)
	}
	defer f.Close()
	if err := Write(f, m); err != nil {
		return fmt.Errorf("write gpml %s: %w", path, err)
	}
	return nil
}

// Write encodes a model as a GPML document. A dangling-reference sweep runs
// first as a pre-save safety net, so the document never carries references
// to identifiers the model no longer knows.
func Write(w io.Writer, m *model.PathwayModel) error {
	m.FixDanglingRefs()

	p := m.Pathway()
	bw, bh := p.BoardSize()
	doc := xmlPathway{
		Xmlns:       namespace,
		Title:       p.Title(),
		Organism:    p.Organism(),
		Source:      p.Source(),
		Version:     p.Version(),
		License:     p.License(),
		Description: p.Description(),
		Graphics:    xmlBoard{BoardWidth: bw, BoardHeight: bh},
	}

	for _, d := range m.DataNodes() {
		xd := xmlDataNode{
			ElementID: d.ElementID(),
			TextLabel: d.TextLabel(),
			Type:      string(d.Type()),
			GroupRef:  groupID(d.GroupRef()),
			Graphics:  shapedGraphics(d),
			Xref:      fromXref(d.Xref()),
			xmlRefs:   collectRefs(d),
		}
		if a := d.AliasRef(); a != nil {
			xd.AliasRef = a.ElementID()
		}
		for _, s := range d.States() {
			relX, relY := s.RelPosition()
			xd.States = append(xd.States, xmlState{
				ElementID: s.ElementID(),
				TextLabel: s.TextLabel(),
				Type:      string(s.Type()),
				RelX:      relX,
				RelY:      relY,
				Graphics:  shapedGraphics(s),
				Xref:      fromXref(s.Xref()),
			})
		}
		doc.DataNodes = append(doc.DataNodes, xd)
	}

	for _, it := range m.Interactions() {
		doc.Interactions = append(doc.Interactions, xmlInteraction{
			ElementID: it.ElementID(),
			GroupRef:  groupID(it.GroupRef()),
			Graphics:  lineGraphics(it),
			Xref:      fromXref(it.Xref()),
			Points:    collectPoints(it),
			Anchors:   collectAnchors(it),
			xmlRefs:   collectRefs(it),
		})
	}

	for _, gl := range m.GraphicalLines() {
		doc.GraphicalLines = append(doc.GraphicalLines, xmlGraphicalLine{
			ElementID: gl.ElementID(),
			GroupRef:  groupID(gl.GroupRef()),
			Graphics:  lineGraphics(gl),
			Points:    collectPoints(gl),
			Anchors:   collectAnchors(gl),
			xmlRefs:   collectRefs(gl),
		})
	}

	for _, lb := range m.Labels() {
		doc.Labels = append(doc.Labels, xmlLabel{
			ElementID: lb.ElementID(),
			TextLabel: lb.TextLabel(),
			Href:      lb.Href(),
			GroupRef:  groupID(lb.GroupRef()),
			Graphics:  shapedGraphics(lb),
			xmlRefs:   collectRefs(lb),
		})
	}

	for _, s := range m.Shapes() {
		doc.Shapes = append(doc.Shapes, xmlShape{
			ElementID: s.ElementID(),
			TextLabel: s.TextLabel(),
			GroupRef:  groupID(s.GroupRef()),
			Graphics:  shapedGraphics(s),
			xmlRefs:   collectRefs(s),
		})
	}

	for _, g := range m.Groups() {
		doc.Groups = append(doc.Groups, xmlGroup{
			ElementID: g.ElementID(),
			Type:      string(g.Type()),
			TextLabel: g.TextLabel(),
			GroupRef:  groupID(g.GroupRef()),
			Graphics:  shapedGraphics(g),
			Xref:      fromXref(g.Xref()),
			xmlRefs:   collectRefs(g),
		})
	}

	for _, a := range m.Annotations() {
		doc.Annotations = append(doc.Annotations, xmlAnnotation{
			ElementID: a.ElementID(),
			Value:     a.Value(),
			Type:      string(a.AnnotationType()),
			URLLink:   a.URLLink(),
			Xref:      fromXref(a.Xref()),
		})
	}
	for _, c := range m.Citations() {
		doc.Citations = append(doc.Citations, xmlCitation{
			ElementID: c.ElementID(),
			URLLink:   c.URLLink(),
			Xref:      fromXref(c.Xref()),
		})
	}
	for _, ev := range m.Evidences() {
		doc.Evidences = append(doc.Evidences, xmlEvidence{
			ElementID: ev.ElementID(),
			Value:     ev.Value(),
			URLLink:   ev.URLLink(),
			Xref:      fromXref(ev.Xref()),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// shapedLike is the read surface of a shaped element.
type shapedLike interface {
	Rect() model.RectProperty
	Font() model.FontProperty
	ShapeStyle() model.ShapeStyleProperty
}

func shapedGraphics(s shapedLike) xmlShapedGraphics {
	r := s.Rect()
	f := s.Font()
	st := s.ShapeStyle()
	return xmlShapedGraphics{
		CenterX:     r.CenterX,
		CenterY:     r.CenterY,
		Width:       r.Width,
		Height:      r.Height,
		TextColor:   f.TextColor,
		FontName:    f.FontName,
		FontSize:    f.FontSize,
		BorderColor: st.BorderColor,
		FillColor:   st.FillColor,
		ShapeType:   string(st.ShapeType),
		ZOrder:      st.ZOrder,
	}
}

func lineGraphics(l line) xmlLineGraphics {
	st := l.LineStyle()
	return xmlLineGraphics{
		LineColor:     st.LineColor,
		LineWidth:     st.LineWidth,
		ConnectorType: string(st.ConnectorType),
		ZOrder:        st.ZOrder,
	}
}

func collectPoints(l line) []xmlPoint {
	var out []xmlPoint
	for _, p := range l.Points() {
		x, y := p.XY()
		xp := xmlPoint{ElementID: p.ElementID(), X: x, Y: y, ArrowHead: string(p.ArrowHead())}
		if t := p.ElementRef(); t != nil {
			xp.ElementRef = t.ElementID()
			xp.RelX, xp.RelY = p.RelPosition()
		}
		out = append(out, xp)
	}
	return out
}

func collectAnchors(l line) []xmlAnchor {
	var out []xmlAnchor
	for _, a := range l.Anchors() {
		out = append(out, xmlAnchor{ElementID: a.ElementID(), Position: a.Position(), Shape: string(a.Shape())})
	}
	return out
}

// refsLike is the read surface of an element's comments, properties and
// metadata refs.
type refsLike interface {
	Comments() []*model.Comment
	DynamicPropertyKeys() []string
	DynamicProperty(key string) (string, bool)
	AnnotationRefs() []*model.AnnotationRef
	CitationRefs() []*model.CitationRef
	EvidenceRefs() []*model.EvidenceRef
}

func collectRefs(e refsLike) xmlRefs {
	var out xmlRefs
	for _, c := range e.Comments() {
		out.Comments = append(out.Comments, xmlComment{Source: c.Source, Value: c.Value})
	}
	for _, k := range e.DynamicPropertyKeys() {
		v, _ := e.DynamicProperty(k)
		out.Properties = append(out.Properties, xmlProperty{Key: k, Value: v})
	}
	for _, r := range e.AnnotationRefs() {
		out.AnnotationRefs = append(out.AnnotationRefs, xmlAnnotationRef{ElementRef: r.Annotation().ElementID()})
	}
	for _, r := range e.CitationRefs() {
		out.CitationRefs = append(out.CitationRefs, xmlCitationRef{ElementRef: r.Citation().ElementID()})
	}
	for _, r := range e.EvidenceRefs() {
		out.EvidenceRefs = append(out.EvidenceRefs, xmlEvidenceRef{ElementRef: r.Evidence().ElementID()})
	}
	return out
}

func groupID(g *model.Group) string {
	if g == nil {
		return ""
	}
	return g.ElementID()
}

func fromXref(x *xref.Xref) *xmlXref {
	if x == nil {
		return nil
	}
	return &xmlXref{Identifier: x.Identifier, DataSource: x.DataSource}
}
