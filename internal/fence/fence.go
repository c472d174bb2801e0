// Package fence holds committed geofences and answers which of them contain
// a point.
package fence

import (
	"math"

	"github.com/paulmach/orb"

	"geofence/internal/geom"
	"geofence/internal/typeid"
)

type Kind string

const (
	KindCircle    Kind = "circle"
	KindRectangle Kind = "rectangle"
	KindPolygon   Kind = "polygon"
)

// Fence is a committed, immutable geofence.
type Fence interface {
	ID() string
	Name() string
	Kind() Kind
	// Contains is boundary inclusive.
	Contains(p geom.Position) bool
	// Bound encloses the fence in lon/lat degrees.
	Bound() orb.Bound
}

type Circle struct {
	id, name string
	Center   geom.Position
	Radius   float64 // metres
}

// NewCircle generates an id when id is empty.
func NewCircle(id, name string, center geom.Position, radius float64) *Circle {
	if id == "" {
		id = typeid.NewCircleID()
	}
	return &Circle{id: id, name: name, Center: center, Radius: radius}
}

func (c *Circle) ID() string   { return c.id }
func (c *Circle) Name() string { return c.name }
func (c *Circle) Kind() Kind   { return KindCircle }

func (c *Circle) Contains(p geom.Position) bool {
	return geom.PointInCircle(c.Center, c.Radius, p)
}

// latitudeSlack exceeds the largest gap between geodetic and geocentric
// latitude on WGS84 (about 0.1924 degrees).
const latitudeSlack = 0.2

// Bound over-estimates the set of points within chord distance Radius. The
// longitude range is centred on the circle and may run past ±180; the store
// wraps it.
func (c *Circle) Bound() orb.Bound {
	theta := geom.ChordAngle(c.Radius).Degrees()*1.001 + 1e-9
	lon := geom.ToCartographic(c.Center).Lon.Degrees()
	glat := geom.GeocentricLatitude(c.Center).Degrees()
	south := math.Max(-90, glat-theta-latitudeSlack)
	north := math.Min(90, glat+theta+latitudeSlack)
	if math.Abs(glat)+theta >= 90 {
		return orb.Bound{Min: orb.Point{-180, south}, Max: orb.Point{180, north}}
	}
	sin := math.Sin(theta*math.Pi/180) / math.Cos(glat*math.Pi/180)
	if sin >= 1 {
		return orb.Bound{Min: orb.Point{-180, south}, Max: orb.Point{180, north}}
	}
	dLon := math.Asin(sin)*180/math.Pi*1.001 + 1e-9
	return orb.Bound{
		Min: orb.Point{lon - dLon, south},
		Max: orb.Point{lon + dLon, north},
	}
}

// Ring is the circle outline for drawing, at the arc distance whose chord is
// Radius.
func (c *Circle) Ring(n int) []geom.Position {
	arc := 2 * geom.EarthRadius * math.Asin(math.Min(1, c.Radius/(2*geom.EarthRadius)))
	return geom.CirclePositions(c.Center, arc, n)
}

type Rectangle struct {
	id, name string
	Region   geom.Region
}

func NewRectangle(id, name string, r geom.Region) *Rectangle {
	if id == "" {
		id = typeid.NewRectangleID()
	}
	return &Rectangle{id: id, name: name, Region: r}
}

func (r *Rectangle) ID() string   { return r.id }
func (r *Rectangle) Name() string { return r.name }
func (r *Rectangle) Kind() Kind   { return KindRectangle }

func (r *Rectangle) Contains(p geom.Position) bool {
	return geom.PointInRegion(r.Region, geom.ToCartographic(p))
}

func (r *Rectangle) Bound() orb.Bound { return r.Region.Bound() }

type Polygon struct {
	id, name string
	Vertices []geom.Position
	ring     []orb.Point
}

// NewPolygon copies vertices; a repeated closing vertex is kept as given.
func NewPolygon(id, name string, vertices []geom.Position) *Polygon {
	if id == "" {
		id = typeid.NewPolygonID()
	}
	p := &Polygon{id: id, name: name, Vertices: append([]geom.Position(nil), vertices...)}
	p.ring = make([]orb.Point, len(vertices))
	for i, v := range vertices {
		p.ring[i] = geom.ToCartographic(v).Point()
	}
	return p
}

func (p *Polygon) ID() string   { return p.id }
func (p *Polygon) Name() string { return p.name }
func (p *Polygon) Kind() Kind   { return KindPolygon }

// Contains tests the lon/lat projection of the vertices.
func (p *Polygon) Contains(pos geom.Position) bool {
	return geom.PointInPolygon(p.ring, geom.ToCartographic(pos).Point())
}

func (p *Polygon) Bound() orb.Bound {
	if len(p.ring) == 0 {
		return orb.Bound{}
	}
	return orb.MultiPoint(p.ring).Bound()
}

// Ring returns the lon/lat ring in degrees.
func (p *Polygon) Ring() []orb.Point { return p.ring }
