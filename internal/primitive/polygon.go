package primitive

import (
	"log/slog"

	"geofence/internal/geom"
	"geofence/internal/logger"
	"geofence/internal/metrics"
	"geofence/internal/scene"
	"geofence/internal/typeid"
)

const minPolygonPositions = 3

// PolygonOptions configures a Polygon. The zero value is a visible, white,
// surface-clamped polygon with a generated id.
type PolygonOptions struct {
	ID             string
	Positions      []geom.Position
	Color          scene.Color
	DepthFailColor scene.Color // defaults to Color
	Hidden         bool
	Flat           bool
	Logger         *slog.Logger
}

// Polygon is a filled shape whose renderer geometry is rebuilt on the first
// render after any setter runs.
type Polygon struct {
	builder scene.Builder
	log     *slog.Logger

	id             string
	positions      []geom.Position
	color          scene.Color
	depthFailColor scene.Color
	visible        bool
	clamp          bool

	dirty     bool
	bounds    geom.BoundingSphere
	handle    slot
	destroyed bool
}

func NewPolygon(b scene.Builder, opts PolygonOptions) *Polygon {
	p := &Polygon{
		builder:        b,
		log:            opts.Logger,
		id:             opts.ID,
		positions:      opts.Positions,
		color:          opts.Color,
		depthFailColor: opts.DepthFailColor,
		visible:        !opts.Hidden,
		clamp:          !opts.Flat,
		dirty:          true,
	}
	if p.id == "" {
		p.id = typeid.NewPolygonID()
	}
	if p.color == (scene.Color{}) {
		p.color = scene.White
	}
	if p.log == nil {
		p.log = logger.L()
	}
	return p
}

func (p *Polygon) markDirty() { p.dirty = true }

func (p *Polygon) ID() string { return p.id }

// Positions returns the current list; callers must not modify it.
func (p *Polygon) Positions() []geom.Position { return p.positions }

// SetPositions replaces the list. Length is only checked on render.
func (p *Polygon) SetPositions(positions []geom.Position) {
	p.positions = positions
	p.markDirty()
}

func (p *Polygon) Color() scene.Color { return p.color }

func (p *Polygon) SetColor(c scene.Color) {
	p.color = c
	p.markDirty()
}

func (p *Polygon) SetDepthFailColor(c scene.Color) {
	p.depthFailColor = c
	p.markDirty()
}

func (p *Polygon) ClampToSurface() bool { return p.clamp }

func (p *Polygon) SetClampToSurface(clamp bool) {
	p.clamp = clamp
	p.markDirty()
}

func (p *Polygon) Visible() bool { return p.visible }

// SetVisible does not invalidate the geometry.
func (p *Polygon) SetVisible(v bool) { p.visible = v }

// Dirty reports whether the next render rebuilds.
func (p *Polygon) Dirty() bool { return p.dirty }

// BoundingVolume is the sphere computed at the last rebuild.
func (p *Polygon) BoundingVolume() geom.BoundingSphere { return p.bounds }

// Drawable reports whether a renderer handle currently exists.
func (p *Polygon) Drawable() bool { return p.handle.live() }

func (p *Polygon) Render(f *scene.Frame) {
	if p.destroyed || !p.visible {
		return
	}
	if len(p.positions) < minPolygonPositions {
		p.handle.release()
		return
	}
	if p.dirty {
		positions := clonePositions(p.positions)
		depthFail := p.depthFailColor
		if depthFail == (scene.Color{}) {
			depthFail = p.color
		}
		inst := scene.PolygonInstance{
			ID:             p.id,
			Positions:      positions,
			Color:          p.color,
			DepthFailColor: depthFail,
		}
		p.handle.acquire(func() scene.Primitive {
			if p.clamp {
				return p.builder.GroundPolygon(inst, scene.Appearance{Translucent: p.color.Translucent()})
			}
			return p.builder.CoplanarPolygon(inst,
				scene.Appearance{Translucent: p.color.Translucent()},
				scene.Appearance{Translucent: depthFail.Translucent()})
		})
		p.bounds = geom.BoundingSphereFromPoints(positions)
		p.dirty = false
		metrics.PrimitiveRebuilds.WithLabelValues("polygon").Inc()
		p.log.Debug("polygon rebuilt", "id", p.id, "positions", len(positions), "clamp", p.clamp)
	}
	p.handle.handle.Render(f)
}

// Destroy releases the renderer handle. Calling it again is a no-op.
func (p *Polygon) Destroy() {
	if p.destroyed {
		return
	}
	p.handle.release()
	p.destroyed = true
}

func (p *Polygon) IsDestroyed() bool { return p.destroyed }
