package primitive

import (
	"log/slog"

	"geofence/internal/geom"
	"geofence/internal/logger"
	"geofence/internal/metrics"
	"geofence/internal/scene"
	"geofence/internal/typeid"
)

const (
	minPolylinePositions = 2
	defaultPolylineWidth = 3
)

// PolylineOptions configures a Polyline. A zero Width means 3 and a zero
// Color means white.
type PolylineOptions struct {
	ID        string
	Positions []geom.Position
	Color     scene.Color
	Width     float64
	Loop      bool
	Dashed    bool
	Hidden    bool
	Flat      bool
	Logger    *slog.Logger
}

// Polyline is a path with the same lazy rebuild contract as Polygon.
type Polyline struct {
	builder scene.Builder
	log     *slog.Logger

	id        string
	positions []geom.Position
	color     scene.Color
	width     float64
	loop      bool
	dashed    bool
	visible   bool
	clamp     bool

	dirty     bool
	bounds    geom.BoundingSphere
	handle    slot
	destroyed bool
}

func NewPolyline(b scene.Builder, opts PolylineOptions) *Polyline {
	p := &Polyline{
		builder:   b,
		log:       opts.Logger,
		id:        opts.ID,
		positions: opts.Positions,
		color:     opts.Color,
		width:     opts.Width,
		loop:      opts.Loop,
		dashed:    opts.Dashed,
		visible:   !opts.Hidden,
		clamp:     !opts.Flat,
		dirty:     true,
	}
	if p.id == "" {
		p.id = typeid.NewPolylineID()
	}
	if p.color == (scene.Color{}) {
		p.color = scene.White
	}
	if p.width <= 0 {
		p.width = defaultPolylineWidth
	}
	if p.log == nil {
		p.log = logger.L()
	}
	return p
}

func (p *Polyline) markDirty() { p.dirty = true }

func (p *Polyline) ID() string { return p.id }

func (p *Polyline) Positions() []geom.Position { return p.positions }

func (p *Polyline) SetPositions(positions []geom.Position) {
	p.positions = positions
	p.markDirty()
}

func (p *Polyline) Color() scene.Color { return p.color }

func (p *Polyline) SetColor(c scene.Color) {
	p.color = c
	p.markDirty()
}

func (p *Polyline) Width() float64 { return p.width }

func (p *Polyline) SetWidth(w float64) {
	p.width = w
	p.markDirty()
}

func (p *Polyline) Loop() bool { return p.loop }

func (p *Polyline) SetLoop(loop bool) {
	p.loop = loop
	p.markDirty()
}

func (p *Polyline) Dashed() bool { return p.dashed }

func (p *Polyline) ClampToSurface() bool { return p.clamp }

func (p *Polyline) SetClampToSurface(clamp bool) {
	p.clamp = clamp
	p.markDirty()
}

func (p *Polyline) Visible() bool { return p.visible }

func (p *Polyline) SetVisible(v bool) { p.visible = v }

func (p *Polyline) Dirty() bool { return p.dirty }

func (p *Polyline) BoundingVolume() geom.BoundingSphere { return p.bounds }

func (p *Polyline) Drawable() bool { return p.handle.live() }

func (p *Polyline) Render(f *scene.Frame) {
	if p.destroyed || !p.visible {
		return
	}
	if len(p.positions) < minPolylinePositions {
		p.handle.release()
		return
	}
	if p.dirty {
		positions := clonePositions(p.positions)
		if p.loop {
			positions = append(positions, positions[0])
		}
		inst := scene.PolylineInstance{
			ID:        p.id,
			Positions: positions,
			Width:     p.width,
			Color:     p.color,
		}
		p.handle.acquire(func() scene.Primitive {
			if p.clamp {
				return p.builder.GroundPolyline(inst, scene.Material{Color: p.color, Dashed: p.dashed})
			}
			app := scene.Appearance{Translucent: p.color.Translucent()}
			return p.builder.Polyline(inst, app, app)
		})
		p.bounds = geom.BoundingSphereFromPoints(positions)
		p.dirty = false
		metrics.PrimitiveRebuilds.WithLabelValues("polyline").Inc()
		p.log.Debug("polyline rebuilt", "id", p.id, "positions", len(positions), "loop", p.loop)
	}
	p.handle.handle.Render(f)
}

// Destroy releases the renderer handle. Calling it again is a no-op.
func (p *Polyline) Destroy() {
	if p.destroyed {
		return
	}
	p.handle.release()
	p.destroyed = true
}

func (p *Polyline) IsDestroyed() bool { return p.destroyed }
