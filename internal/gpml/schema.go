// Package gpml reads and writes GPML 2021 documents into and out of the
// in-memory pathway model. The wire format is handled entirely here; the
// model package knows nothing about XML.
package gpml

import "encoding/xml"

const namespace = "http://pathvisio.org/GPML/2021"

type xmlPathway struct {
	XMLName  xml.Name `xml:"Pathway"`
	Xmlns    string   `xml:"xmlns,attr"`
	Title    string   `xml:"title,attr"`
	Organism string   `xml:"organism,attr,omitempty"`
	Source   string   `xml:"source,attr,omitempty"`
	Version  string   `xml:"version,attr,omitempty"`
	License  string   `xml:"license,attr,omitempty"`

	Description string   `xml:"Description,omitempty"`
	Graphics    xmlBoard `xml:"Graphics"`

	DataNodes      []xmlDataNode      `xml:"DataNodes>DataNode"`
	Interactions   []xmlInteraction   `xml:"Interactions>Interaction"`
	GraphicalLines []xmlGraphicalLine `xml:"GraphicalLines>GraphicalLine"`
	Labels         []xmlLabel         `xml:"Labels>Label"`
	Shapes         []xmlShape         `xml:"Shapes>Shape"`
	Groups         []xmlGroup         `xml:"Groups>Group"`
	Annotations    []xmlAnnotation    `xml:"Annotations>Annotation"`
	Citations      []xmlCitation      `xml:"Citations>Citation"`
	Evidences      []xmlEvidence      `xml:"Evidences>Evidence"`
}

type xmlBoard struct {
	BoardWidth  float64 `xml:"boardWidth,attr"`
	BoardHeight float64 `xml:"boardHeight,attr"`
}

type xmlXref struct {
	Identifier string `xml:"identifier,attr"`
	DataSource string `xml:"dataSource,attr"`
}

type xmlShapedGraphics struct {
	CenterX     float64 `xml:"centerX,attr"`
	CenterY     float64 `xml:"centerY,attr"`
	Width       float64 `xml:"width,attr"`
	Height      float64 `xml:"height,attr"`
	TextColor   string  `xml:"textColor,attr,omitempty"`
	FontName    string  `xml:"fontName,attr,omitempty"`
	FontSize    float64 `xml:"fontSize,attr,omitempty"`
	BorderColor string  `xml:"borderColor,attr,omitempty"`
	FillColor   string  `xml:"fillColor,attr,omitempty"`
	ShapeType   string  `xml:"shapeType,attr,omitempty"`
	ZOrder      int     `xml:"zOrder,attr,omitempty"`
}

type xmlLineGraphics struct {
	LineColor     string  `xml:"lineColor,attr,omitempty"`
	LineWidth     float64 `xml:"lineWidth,attr,omitempty"`
	ConnectorType string  `xml:"connectorType,attr,omitempty"`
	ZOrder        int     `xml:"zOrder,attr,omitempty"`
}

type xmlAnnotationRef struct {
	ElementRef string `xml:"elementRef,attr"`
}

type xmlCitationRef struct {
	ElementRef string `xml:"elementRef,attr"`
}

type xmlEvidenceRef struct {
	ElementRef string `xml:"elementRef,attr"`
}

type xmlComment struct {
	Source string `xml:"source,attr,omitempty"`
	Value  string `xml:",chardata"`
}

type xmlProperty struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

type xmlRefs struct {
	Comments       []xmlComment       `xml:"Comment,omitempty"`
	Properties     []xmlProperty      `xml:"Property,omitempty"`
	AnnotationRefs []xmlAnnotationRef `xml:"AnnotationRef,omitempty"`
	CitationRefs   []xmlCitationRef   `xml:"CitationRef,omitempty"`
	EvidenceRefs   []xmlEvidenceRef   `xml:"EvidenceRef,omitempty"`
}

type xmlDataNode struct {
	ElementID string            `xml:"elementId,attr"`
	TextLabel string            `xml:"textLabel,attr"`
	Type      string            `xml:"type,attr,omitempty"`
	GroupRef  string            `xml:"groupRef,attr,omitempty"`
	AliasRef  string            `xml:"aliasRef,attr,omitempty"`
	Graphics  xmlShapedGraphics `xml:"Graphics"`
	Xref      *xmlXref          `xml:"Xref,omitempty"`
	States    []xmlState        `xml:"States>State"`
	xmlRefs
}

type xmlState struct {
	ElementID string            `xml:"elementId,attr"`
	TextLabel string            `xml:"textLabel,attr,omitempty"`
	Type      string            `xml:"type,attr,omitempty"`
	RelX      float64           `xml:"relX,attr"`
	RelY      float64           `xml:"relY,attr"`
	Graphics  xmlShapedGraphics `xml:"Graphics"`
	Xref      *xmlXref          `xml:"Xref,omitempty"`
}

type xmlPoint struct {
	ElementID  string  `xml:"elementId,attr"`
	X          float64 `xml:"x,attr"`
	Y          float64 `xml:"y,attr"`
	ArrowHead  string  `xml:"arrowHead,attr,omitempty"`
	ElementRef string  `xml:"elementRef,attr,omitempty"`
	RelX       float64 `xml:"relX,attr,omitempty"`
	RelY       float64 `xml:"relY,attr,omitempty"`
}

type xmlAnchor struct {
	ElementID string  `xml:"elementId,attr"`
	Position  float64 `xml:"position,attr"`
	Shape     string  `xml:"shapeType,attr,omitempty"`
}

type xmlInteraction struct {
	ElementID string          `xml:"elementId,attr"`
	GroupRef  string          `xml:"groupRef,attr,omitempty"`
	Graphics  xmlLineGraphics `xml:"Graphics"`
	Xref      *xmlXref        `xml:"Xref,omitempty"`
	Points    []xmlPoint      `xml:"Waypoints>Point"`
	Anchors   []xmlAnchor     `xml:"Waypoints>Anchor"`
	xmlRefs
}

type xmlGraphicalLine struct {
	ElementID string          `xml:"elementId,attr"`
	GroupRef  string          `xml:"groupRef,attr,omitempty"`
	Graphics  xmlLineGraphics `xml:"Graphics"`
	Points    []xmlPoint      `xml:"Waypoints>Point"`
	Anchors   []xmlAnchor     `xml:"Waypoints>Anchor"`
	xmlRefs
}

type xmlLabel struct {
	ElementID string            `xml:"elementId,attr"`
	TextLabel string            `xml:"textLabel,attr"`
	Href      string            `xml:"href,attr,omitempty"`
	GroupRef  string            `xml:"groupRef,attr,omitempty"`
	Graphics  xmlShapedGraphics `xml:"Graphics"`
	xmlRefs
}

type xmlShape struct {
	ElementID string            `xml:"elementId,attr"`
	TextLabel string            `xml:"textLabel,attr,omitempty"`
	GroupRef  string            `xml:"groupRef,attr,omitempty"`
	Graphics  xmlShapedGraphics `xml:"Graphics"`
	xmlRefs
}

type xmlGroup struct {
	ElementID string            `xml:"elementId,attr"`
	Type      string            `xml:"type,attr,omitempty"`
	TextLabel string            `xml:"textLabel,attr,omitempty"`
	GroupRef  string            `xml:"groupRef,attr,omitempty"`
	Graphics  xmlShapedGraphics `xml:"Graphics"`
	Xref      *xmlXref          `xml:"Xref,omitempty"`
	xmlRefs
}

type xmlAnnotation struct {
	ElementID string   `xml:"elementId,attr"`
	Value     string   `xml:"value,attr"`
	Type      string   `xml:"type,attr"`
	URLLink   string   `xml:"urlLink,attr,omitempty"`
	Xref      *xmlXref `xml:"Xref,omitempty"`
}

type xmlCitation struct {
	ElementID string   `xml:"elementId,attr"`
	URLLink   string   `xml:"urlLink,attr,omitempty"`
	Xref      *xmlXref `xml:"Xref,omitempty"`
}

type xmlEvidence struct {
	ElementID string   `xml:"elementId,attr"`
	Value     string   `xml:"value,attr,omitempty"`
	URLLink   string   `xml:"urlLink,attr,omitempty"`
	Xref      *xmlXref `xml:"Xref,omitempty"`
}
