package draw

import (
	"geofence/internal/geom"
	"geofence/internal/primitive"
	"geofence/internal/scene"
)

type Tool int

const (
	ToolCircle Tool = iota
	ToolSquare
	ToolPolygon
	ToolCheckingPoint
)

// Tools lists the tools in selector order.
var Tools = []Tool{ToolCircle, ToolSquare, ToolPolygon, ToolCheckingPoint}

func (t Tool) String() string {
	switch t {
	case ToolCircle:
		return "Circle"
	case ToolSquare:
		return "Square"
	case ToolPolygon:
		return "Polygon"
	case ToolCheckingPoint:
		return "Checking Point"
	}
	return "Unknown"
}

// State is the externally visible interaction state.
type State int

const (
	Idle State = iota
	PlacingCircleCenter
	DraggingCircleRadius
	PlacingRectangleCorner
	DraggingRectangleOpposite
	BuildingPolygon
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PlacingCircleCenter:
		return "placing circle center"
	case DraggingCircleRadius:
		return "dragging circle radius"
	case PlacingRectangleCorner:
		return "placing rectangle corner"
	case DraggingRectangleOpposite:
		return "dragging rectangle corner"
	case BuildingPolygon:
		return "building polygon"
	}
	return "unknown"
}

// drawState is one of idle, *circleDrag, *rectangleDrag or *polygonBuild.
type drawState interface {
	isDrawState()
}

type idle struct{}

type circleDrag struct {
	center  geom.Position
	preview *primitive.Polygon
	label   *scene.Label
}

type rectangleDrag struct {
	corner  geom.Position
	preview *primitive.Polygon
	label   *scene.Label
}

type polygonBuild struct {
	vertices []geom.Position
	// moving is set while the last vertex is a cursor preview.
	moving  bool
	fill    *primitive.Polygon
	outline *primitive.Polyline
}

func (idle) isDrawState()           {}
func (*circleDrag) isDrawState()    {}
func (*rectangleDrag) isDrawState() {}
func (*polygonBuild) isDrawState()  {}
