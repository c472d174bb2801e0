package tui

import (
	"math"

	"github.com/paulmach/orb"

	"geofence/internal/geom"
	"geofence/internal/metrics"
	"geofence/internal/primitive"
	"geofence/internal/scene"
)

// backdrop draws reference data loaded from files underneath the geofences:
// polygon rings and line strings as thin gray lines, points as dots.
type backdrop struct {
	builder   scene.Builder
	lines     *scene.Collection
	points    *scene.PointCollection
	data      geom.Data
	destroyed bool
}

func newBackdrop(b scene.Builder) *backdrop {
	return &backdrop{builder: b, lines: scene.NewCollection(), points: scene.NewPointCollection()}
}

func ringPositions(ls []orb.Point) []geom.Position {
	out := make([]geom.Position, len(ls))
	for i, p := range ls {
		out[i] = geom.FromDegrees(p[0], p[1], 0)
	}
	return out
}

// set replaces the backdrop with d.
func (b *backdrop) set(d geom.Data) {
	b.lines.RemoveAll()
	b.points.RemoveAll()
	b.data = d
	add := func(ps []orb.Point, loop bool) {
		b.lines.Add(primitive.NewPolyline(b.builder, primitive.PolylineOptions{
			Positions: ringPositions(ps),
			Color:     scene.Gray,
			Width:     1,
			Loop:      loop,
			Flat:      true,
		}))
	}
	for _, poly := range d.Polygons {
		for _, ring := range poly {
			add(ring, !ring.Closed())
		}
	}
	for _, ls := range d.Lines {
		add(ls, false)
	}
	for _, p := range d.Points {
		b.points.Add(scene.Point{Show: true, Position: geom.FromDegrees(p[0], p[1], 0), Color: scene.Gray, Glyph: '·'})
	}
}

func (b *backdrop) empty() bool { return b.data.Empty() }

func (b *backdrop) Render(f *scene.Frame) {
	if b.destroyed {
		return
	}
	b.lines.Render(f)
	b.points.Render(f)
}

func (b *backdrop) Destroy() {
	b.lines.Destroy()
	b.points.Destroy()
	b.destroyed = true
}

func (b *backdrop) IsDestroyed() bool { return b.destroyed }

// renderFrame advances the scene by one frame and caches the canvas.
func (m *Model) renderFrame() {
	m.frameNo++
	f := scene.NewFrame(m.frameNo, *m.vp)
	m.backdrop.Render(f)
	m.session.Render(f)
	m.canvas = f.String()
	metrics.FramesTotal.Inc()
}

// fitBBox centres the viewport on b with a small margin.
func (m *Model) fitBBox(b geom.BBox) {
	if !b.Valid() {
		return
	}
	c := b.Center()
	aspect := float64(m.vp.Width*2) / float64(m.vp.Height*4)
	span := math.Max(b.MaxX-b.MinX, (b.MaxY-b.MinY)*aspect) * 1.2
	*m.vp = scene.NewViewport(c[0], c[1], math.Min(span, 360), m.vp.Width, m.vp.Height)
}
