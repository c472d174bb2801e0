package scene

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"geofence/internal/geom"
)

// Primitive is anything a Collection can render once per frame.
type Primitive interface {
	Render(f *Frame)
	Destroy()
	IsDestroyed() bool
}

// Appearance selects how a geometry instance's colour is applied.
type Appearance struct {
	Translucent bool
}

// Material colours ground polylines.
type Material struct {
	Color  Color
	Dashed bool
}

type PolygonInstance struct {
	ID             string
	Positions      []geom.Position
	Color          Color
	DepthFailColor Color
}

type PolylineInstance struct {
	ID        string
	Positions []geom.Position
	Width     float64
	Color     Color
}

// Builder constructs immutable renderer geometry. Construction is
// synchronous; a built primitive never changes and must be destroyed and
// rebuilt to reflect new inputs.
type Builder interface {
	// GroundPolygon drapes the polygon on the surface: edges follow great
	// circles and the fill overwrites whatever is below.
	GroundPolygon(inst PolygonInstance, app Appearance) Primitive
	// CoplanarPolygon fills the straight-edged polygon through the raw
	// positions; cells already drawn by others take the depth-fail colour.
	CoplanarPolygon(inst PolygonInstance, app, depthFail Appearance) Primitive
	GroundPolyline(inst PolylineInstance, mat Material) Primitive
	// Polyline draws straight projected segments. A translucent appearance
	// stipples the dots it applies to.
	Polyline(inst PolylineInstance, app, depthFail Appearance) Primitive
}

// maxArc is the longest great-circle step drawn as a straight segment.
const maxArc = 0.05 * s1.Degree

// Raster is the braille rendering engine.
type Raster struct {
	next  int
	built int
	live  int
}

func NewRaster() *Raster { return &Raster{} }

// Stats reports how many primitives were ever built and how many are alive.
func (r *Raster) Stats() (built, live int) { return r.built, r.live }

func (r *Raster) newPrimitive() *rasterPrimitive {
	r.next++
	r.built++
	r.live++
	return &rasterPrimitive{engine: r, owner: r.next}
}

func (r *Raster) GroundPolygon(inst PolygonInstance, app Appearance) Primitive {
	p := r.newPrimitive()
	p.path = densify(inst.Positions, true)
	p.fill = true
	p.stroke = stroke{color: inst.Color, stipple: app.Translucent}
	return p
}

func (r *Raster) CoplanarPolygon(inst PolygonInstance, app, depthFail Appearance) Primitive {
	p := r.newPrimitive()
	p.path = lonLats(inst.Positions)
	p.fill = true
	p.stroke = stroke{
		color:     inst.Color,
		stipple:   app.Translucent,
		depthTest:   true,
		depthFail:   inst.DepthFailColor,
		failStipple: depthFail.Translucent,
	}
	return p
}

func (r *Raster) GroundPolyline(inst PolylineInstance, mat Material) Primitive {
	p := r.newPrimitive()
	p.path = densify(inst.Positions, false)
	p.width = int(math.Round(inst.Width))
	p.stroke = stroke{color: mat.Color, dashed: mat.Dashed}
	return p
}

func (r *Raster) Polyline(inst PolylineInstance, app, depthFail Appearance) Primitive {
	p := r.newPrimitive()
	p.path = lonLats(inst.Positions)
	p.width = int(math.Round(inst.Width))
	p.stroke = stroke{
		color:       inst.Color,
		stipple:     app.Translucent,
		depthTest:   true,
		depthFail:   inst.Color,
		failStipple: depthFail.Translucent,
	}
	return p
}

type rasterPrimitive struct {
	engine    *Raster
	owner     int
	path      [][2]float64 // lon/lat degrees
	fill      bool
	width     int
	stroke    stroke
	destroyed bool
}

func (p *rasterPrimitive) Render(f *Frame) {
	if p.destroyed || len(p.path) == 0 {
		return
	}
	pts := make([]pt, len(p.path))
	for i, ll := range p.path {
		x, y := f.Viewport.ToDot(ll[0], ll[1])
		pts[i] = pt{x, y}
	}
	s := p.stroke
	s.owner = p.owner
	if p.fill {
		f.fillRing(pts, s)
		return
	}
	f.drawPath(pts, max(1, p.width), s)
}

func (p *rasterPrimitive) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.engine.live--
}

func (p *rasterPrimitive) IsDestroyed() bool { return p.destroyed }

func lonLats(positions []geom.Position) [][2]float64 {
	out := make([][2]float64, len(positions))
	for i, pos := range positions {
		c := geom.ToCartographic(pos)
		out[i] = [2]float64{c.Lon.Degrees(), c.Lat.Degrees()}
	}
	return out
}

// densify subdivides each edge along its great circle so that draped
// geometry follows the surface. closed also subdivides the closing edge,
// which is left implicit in the output.
func densify(positions []geom.Position, closed bool) [][2]float64 {
	if len(positions) == 0 {
		return nil
	}
	pts := make([]s2.Point, len(positions))
	for i, pos := range positions {
		pts[i] = s2.PointFromLatLng(geom.ToCartographic(pos).LatLng())
	}
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	out := make([][2]float64, 0, len(pts))
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		steps := int(math.Ceil(float64(a.Distance(b) / maxArc)))
		steps = max(1, min(steps, 256))
		for k := 0; k < steps; k++ {
			ll := s2.LatLngFromPoint(s2.Interpolate(float64(k)/float64(steps), a, b))
			out = append(out, [2]float64{ll.Lng.Degrees(), ll.Lat.Degrees()})
		}
	}
	if !closed {
		ll := s2.LatLngFromPoint(pts[len(pts)-1])
		out = append(out, [2]float64{ll.Lng.Degrees(), ll.Lat.Degrees()})
	}
	return out
}
