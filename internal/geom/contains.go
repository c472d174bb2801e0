package geom

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// RegionEpsilon is the narrowest axis, in radians, a Region may have.
const RegionEpsilon = 1e-7

// Region is an axis-aligned longitude/latitude box in radians.
type Region struct {
	West, South, East, North float64
}

// PointInPolygon applies the even-odd rule to the implicitly closed ring.
// Points on an edge or vertex count as inside.
func PointInPolygon(vertices []orb.Point, p orb.Point) bool {
	if len(vertices) < 3 {
		return false
	}
	ring := make(orb.Ring, len(vertices), len(vertices)+1)
	copy(ring, vertices)
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}
	if len(ring) < 4 {
		return false
	}
	return planar.RingContains(ring, p)
}

// PointInCircle reports whether p is within radius metres of center,
// boundary inclusive.
func PointInCircle(center Position, radius float64, p Position) bool {
	return Distance(center, p) <= radius
}

// PointInRegion is inclusive on all four edges.
func PointInRegion(r Region, c Cartographic) bool {
	lon, lat := c.Lon.Radians(), c.Lat.Radians()
	return lon >= r.West && lon <= r.East && lat >= r.South && lat <= r.North
}

// NormalizeRegion builds the region spanned by two opposite corners.
func NormalizeRegion(a, b Cartographic) Region {
	r := Region{
		West:  math.Min(a.Lon.Radians(), b.Lon.Radians()),
		East:  math.Max(a.Lon.Radians(), b.Lon.Radians()),
		South: math.Min(a.Lat.Radians(), b.Lat.Radians()),
		North: math.Max(a.Lat.Radians(), b.Lat.Radians()),
	}
	if r.East-r.West < RegionEpsilon {
		r.East += RegionEpsilon * 2
	}
	if r.North-r.South < RegionEpsilon {
		r.North += RegionEpsilon * 2
	}
	return r
}

func RegionFromDegrees(west, south, east, north float64) Region {
	d := math.Pi / 180
	return Region{West: west * d, South: south * d, East: east * d, North: north * d}
}

func (r Region) Center() Cartographic {
	return Cartographic{Lon: s1.Angle((r.West + r.East) / 2), Lat: s1.Angle((r.South + r.North) / 2)}
}

// Corners returns SW, SE, NE, NW at the given height.
func (r Region) Corners(height float64) []Position {
	return []Position{
		FromCartographic(Cartographic{Lon: s1.Angle(r.West), Lat: s1.Angle(r.South), Height: height}),
		FromCartographic(Cartographic{Lon: s1.Angle(r.East), Lat: s1.Angle(r.South), Height: height}),
		FromCartographic(Cartographic{Lon: s1.Angle(r.East), Lat: s1.Angle(r.North), Height: height}),
		FromCartographic(Cartographic{Lon: s1.Angle(r.West), Lat: s1.Angle(r.North), Height: height}),
	}
}

// Bound is the region in degrees.
func (r Region) Bound() orb.Bound {
	d := 180 / math.Pi
	return orb.Bound{Min: orb.Point{r.West * d, r.South * d}, Max: orb.Point{r.East * d, r.North * d}}
}

// Size returns the east-west width along the south edge and the north-south
// length along the west edge, in metres.
func (r Region) Size() (width, length float64) {
	sw := Cartographic{Lon: s1.Angle(r.West), Lat: s1.Angle(r.South)}
	se := Cartographic{Lon: s1.Angle(r.East), Lat: s1.Angle(r.South)}
	nw := Cartographic{Lon: s1.Angle(r.West), Lat: s1.Angle(r.North)}
	return Distance(FromCartographic(sw), FromCartographic(se)), Distance(FromCartographic(sw), FromCartographic(nw))
}
