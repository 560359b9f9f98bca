package model

import "fmt"

// RectProperty is the bounding box of a shaped element, centered at
// (CenterX, CenterY) in board coordinates.
type RectProperty struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// FontProperty holds the text styling of a shaped element.
type FontProperty struct {
	TextColor      string
	FontName       string
	FontWeight     bool // bold
	FontStyle      bool // italic
	FontDecoration bool // underline
	FontStrikethru bool
	FontSize       float64
	HAlign         HAlignType
	VAlign         VAlignType
}

// ShapeStyleProperty holds the outline and fill styling of a shaped element.
type ShapeStyleProperty struct {
	BorderColor string
	BorderStyle LineStyleType
	BorderWidth float64
	FillColor   string
	ShapeType   ShapeType
	ZOrder      int
	Rotation    float64 // radians
}

// LineStyleProperty holds the stroke styling of a line element.
type LineStyleProperty struct {
	LineColor     string
	LineStyle     LineStyleType
	LineWidth     float64
	ConnectorType ConnectorType
	ZOrder        int
}

func defaultFont() FontProperty {
	return FontProperty{
		TextColor: "Black",
		FontName:  "Arial",
		FontSize:  12,
		HAlign:    HAlignCenter,
		VAlign:    VAlignMiddle,
	}
}

func defaultShapeStyle() ShapeStyleProperty {
	return ShapeStyleProperty{
		BorderColor: "Black",
		BorderStyle: LineStyleSolid,
		BorderWidth: 1,
		FillColor:   "White",
		ShapeType:   ShapeRectangle,
	}
}

func defaultLineStyle() LineStyleProperty {
	return LineStyleProperty{
		LineColor:     "Black",
		LineStyle:     LineStyleSolid,
		LineWidth:     1,
		ConnectorType: ConnectorStraight,
	}
}

// shapedElement is the shared state of elements with a bounding box:
// data nodes, states, labels, shapes and groups.
type shapedElement struct {
	elementInfo
	rect       RectProperty
	font       FontProperty
	shapeStyle ShapeStyleProperty
}

func newShapedElement() shapedElement {
	return shapedElement{
		font:       defaultFont(),
		shapeStyle: defaultShapeStyle(),
	}
}

// Rect returns the element's bounding box.
func (s *shapedElement) Rect() RectProperty { return s.rect }

// SetRect moves and resizes the element, firing a coordinate-change event so
// linked line points recompute their absolute positions.
func (s *shapedElement) SetRect(r RectProperty) error {
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("rect dimensions: %w", ErrInvalidArgument)
	}
	s.rect = r
	s.fireCoords()
	return nil
}

// SetCenter moves the element without resizing it.
func (s *shapedElement) SetCenter(x, y float64) {
	s.rect.CenterX = x
	s.rect.CenterY = y
	s.fireCoords()
}

// Font returns the element's font properties.
func (s *shapedElement) Font() FontProperty { return s.font }

// SetFont replaces the font properties. Text color and font name are mandatory.
func (s *shapedElement) SetFont(f FontProperty) error {
	if f.TextColor == "" {
		return fmt.Errorf("font textColor: %w", ErrInvalidArgument)
	}
	if f.FontName == "" {
		return fmt.Errorf("font fontName: %w", ErrInvalidArgument)
	}
	old := s.font
	s.font = f
	s.fireProperty("font", old, f)
	return nil
}

// ShapeStyle returns the element's shape styling.
func (s *shapedElement) ShapeStyle() ShapeStyleProperty { return s.shapeStyle }

// SetShapeStyle replaces the shape styling. Border and fill colors are mandatory.
func (s *shapedElement) SetShapeStyle(p ShapeStyleProperty) error {
	if p.BorderColor == "" || p.FillColor == "" {
		return fmt.Errorf("shape style colors: %w", ErrInvalidArgument)
	}
	old := s.shapeStyle
	s.shapeStyle = p
	s.fireProperty("shapeStyle", old, p)
	return nil
}

// toAbsolute converts coordinates relative to this element's bounds
// (-1..1 spans the box) into absolute board coordinates.
func (s *shapedElement) toAbsolute(relX, relY float64) (float64, float64) {
	return s.rect.CenterX + relX*s.rect.Width/2, s.rect.CenterY + relY*s.rect.Height/2
}
