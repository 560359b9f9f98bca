package model

// DataNodeType classifies what biological entity a data node represents.
type DataNodeType string

const (
	DataNodeTypeUndefined   DataNodeType = "Undefined"
	DataNodeTypeGeneProduct DataNodeType = "GeneProduct"
	DataNodeTypeDNA         DataNodeType = "DNA"
	DataNodeTypeRNA         DataNodeType = "RNA"
	DataNodeTypeProtein     DataNodeType = "Protein"
	DataNodeTypeComplex     DataNodeType = "Complex"
	DataNodeTypeMetabolite  DataNodeType = "Metabolite"
	DataNodeTypePathway     DataNodeType = "Pathway"
	DataNodeTypeAlias       DataNodeType = "Alias"
)

// StateType classifies a state attached to a data node.
type StateType string

const (
	StateTypeUndefined              StateType = "Undefined"
	StateTypeProteinModification    StateType = "ProteinModification"
	StateTypeGeneticVariant         StateType = "GeneticVariant"
	StateTypeEpigeneticModification StateType = "EpigeneticModification"
)

// GroupType describes how the members of a group relate to each other.
type GroupType string

const (
	GroupTypeGroup       GroupType = "Group"
	GroupTypeComplex     GroupType = "Complex"
	GroupTypePathway     GroupType = "Pathway"
	GroupTypeTransparent GroupType = "Transparent"
)

// AnnotationType classifies an annotation's vocabulary.
type AnnotationType string

const (
	AnnotationTypeUndefined AnnotationType = "Undefined"
	AnnotationTypeOntology  AnnotationType = "Ontology"
	AnnotationTypeTaxonomy  AnnotationType = "Taxonomy"
)

// ArrowHeadType decorates the start or end of a line point.
type ArrowHeadType string

const (
	ArrowHeadUndirected  ArrowHeadType = "Undirected"
	ArrowHeadDirected    ArrowHeadType = "Directed"
	ArrowHeadConversion  ArrowHeadType = "Conversion"
	ArrowHeadInhibition  ArrowHeadType = "Inhibition"
	ArrowHeadCatalysis   ArrowHeadType = "Catalysis"
	ArrowHeadStimulation ArrowHeadType = "Stimulation"
	ArrowHeadBinding     ArrowHeadType = "Binding"
)

// AnchorShapeType is the visual marker of an anchor on a line.
type AnchorShapeType string

const (
	AnchorShapeNone   AnchorShapeType = "None"
	AnchorShapeSquare AnchorShapeType = "Square"
	AnchorShapeCircle AnchorShapeType = "Circle"
)

// ConnectorType is the routing style of a line.
type ConnectorType string

const (
	ConnectorStraight  ConnectorType = "Straight"
	ConnectorElbow     ConnectorType = "Elbow"
	ConnectorCurved    ConnectorType = "Curved"
	ConnectorSegmented ConnectorType = "Segmented"
)

// LineStyleType is the stroke style of a border or line.
type LineStyleType string

const (
	LineStyleSolid  LineStyleType = "Solid"
	LineStyleDashed LineStyleType = "Dashed"
	LineStyleDouble LineStyleType = "Double"
)

// ShapeType is the geometric outline of a shaped element.
type ShapeType string

const (
	ShapeRectangle        ShapeType = "Rectangle"
	ShapeRoundedRectangle ShapeType = "RoundedRectangle"
	ShapeOval             ShapeType = "Oval"
	ShapeTriangle         ShapeType = "Triangle"
	ShapeHexagon          ShapeType = "Hexagon"
	ShapeNone             ShapeType = "None"
)

// HAlignType and VAlignType position text within a shaped element.
type HAlignType string

const (
	HAlignLeft   HAlignType = "Left"
	HAlignCenter HAlignType = "Center"
	HAlignRight  HAlignType = "Right"
)

type VAlignType string

const (
	VAlignTop    VAlignType = "Top"
	VAlignMiddle VAlignType = "Middle"
	VAlignBottom VAlignType = "Bottom"
)
