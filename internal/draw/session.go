// Package draw turns screen gestures into geofences: it runs the per-tool
// drawing state machine, keeps live previews and answers checking point
// queries against the committed fences.
package draw

import (
	"fmt"
	"log/slog"

	"geofence/internal/fence"
	"geofence/internal/geom"
	"geofence/internal/logger"
	"geofence/internal/metrics"
	"geofence/internal/primitive"
	"geofence/internal/scene"
)

const (
	// minCircleRadius keeps the circle preview drawable before the first move.
	minCircleRadius = 0.1
	circleSegments  = 64
)

// DefaultColor is translucent red.
var DefaultColor = scene.Red.WithAlpha(0.3)

// Picker converts a map cell to a surface position.
type Picker interface {
	Pick(cx, cy int) (geom.Position, bool)
}

type Options struct {
	Builder        scene.Builder
	Picker         Picker
	Store          *fence.Store
	Color          scene.Color // defaults to DefaultColor
	ClampToSurface bool
	Logger         *slog.Logger
}

// drawing is what a committed fence puts on the map.
type drawing struct {
	prims []scene.Primitive
	label *scene.Label
}

// Session owns the active tool, the in-progress shape and every committed
// fence's primitives. All methods run on the UI goroutine.
type Session struct {
	builder scene.Builder
	picker  Picker
	store   *fence.Store
	log     *slog.Logger
	input   *scene.InputHandler

	tool  Tool
	state drawState
	color scene.Color
	clamp bool
	seq   int

	root    *scene.Collection
	shapes  *scene.Collection
	labels  *scene.LabelCollection
	probes  *scene.PointCollection
	markers *scene.PointCollection

	drawn map[string]*drawing

	checkPoint *scene.Point
	checkLabel *scene.Label
	lastCheck  *CheckResult
}

func NewSession(opts Options) *Session {
	s := &Session{
		builder: opts.Builder,
		picker:  opts.Picker,
		store:   opts.Store,
		log:     opts.Logger,
		state:   idle{},
		color:   opts.Color,
		clamp:   opts.ClampToSurface,
		root:    scene.NewCollection(),
		shapes:  scene.NewCollection(),
		labels:  scene.NewLabelCollection(),
		probes:  scene.NewPointCollection(),
		markers: scene.NewPointCollection(),
		drawn:   make(map[string]*drawing),
	}
	if s.log == nil {
		s.log = logger.L()
	}
	if s.store == nil {
		s.store = fence.NewStore(s.log)
	}
	if s.color == (scene.Color{}) {
		s.color = DefaultColor
	}
	s.root.Add(s.shapes)
	s.root.Add(s.probes)
	s.root.Add(s.markers)
	s.root.Add(s.labels)
	s.checkPoint = s.markers.Add(scene.Point{Color: scene.Green})
	s.checkLabel = s.labels.Add(scene.Label{Color: scene.Green, Origin: scene.OriginLeft, OffsetX: 1})
	return s
}

// Bind registers the session's gesture handlers, replacing earlier ones.
func (s *Session) Bind(h *scene.InputHandler) {
	s.input = h
	h.SetInputAction(scene.LeftClick, func(cx, cy int) { s.LeftClick(cx, cy) })
	h.SetInputAction(scene.MouseMove, func(cx, cy int) { s.MouseMove(cx, cy) })
	h.SetInputAction(scene.RightClick, func(cx, cy int) { s.RightClick(cx, cy) })
}

// Render draws shapes, probe points, the checking marker and labels.
func (s *Session) Render(f *scene.Frame) { s.root.Render(f) }

var gestures = []scene.InputKind{scene.LeftClick, scene.MouseMove, scene.RightClick}

// Destroy releases every primitive and unregisters the gesture handlers.
func (s *Session) Destroy() {
	if s.input != nil {
		for _, k := range gestures {
			s.input.RemoveInputAction(k)
		}
		s.input = nil
	}
	s.root.Destroy()
}

func (s *Session) Tool() Tool { return s.tool }

// SetTool switches tools and cancels any shape in progress.
func (s *Session) SetTool(t Tool) {
	if t == s.tool {
		return
	}
	s.Cancel()
	s.tool = t
}

func (s *Session) Color() scene.Color { return s.color }

// SetColor applies to shapes started afterwards.
func (s *Session) SetColor(c scene.Color) { s.color = c }

func (s *Session) ClampToSurface() bool { return s.clamp }

// SetClampToSurface applies to shapes started afterwards.
func (s *Session) SetClampToSurface(b bool) { s.clamp = b }

func (s *Session) State() State {
	switch s.state.(type) {
	case *circleDrag:
		return DraggingCircleRadius
	case *rectangleDrag:
		return DraggingRectangleOpposite
	case *polygonBuild:
		return BuildingPolygon
	}
	switch s.tool {
	case ToolCircle:
		return PlacingCircleCenter
	case ToolSquare:
		return PlacingRectangleCorner
	}
	return Idle
}

// Drawing reports whether a shape is in progress.
func (s *Session) Drawing() bool {
	_, ok := s.state.(idle)
	return !ok
}

// Cancel discards the shape in progress.
func (s *Session) Cancel() {
	switch st := s.state.(type) {
	case *circleDrag:
		s.shapes.Remove(st.preview)
		s.labels.Remove(st.label)
	case *rectangleDrag:
		s.shapes.Remove(st.preview)
		s.labels.Remove(st.label)
	case *polygonBuild:
		s.shapes.Remove(st.fill)
		s.shapes.Remove(st.outline)
	default:
		return
	}
	s.log.Debug("drawing cancelled", "tool", s.tool)
	s.state = idle{}
}

// LeftClick places or commits depending on tool and state. A click off the
// map is ignored.
func (s *Session) LeftClick(cx, cy int) {
	pos, ok := s.picker.Pick(cx, cy)
	if !ok {
		return
	}
	switch s.tool {
	case ToolCheckingPoint:
		s.Check(pos)
	case ToolCircle:
		if st, ok := s.state.(*circleDrag); ok {
			s.commitCircle(st, geom.Distance(st.center, pos))
			return
		}
		s.startCircle(pos)
	case ToolSquare:
		if st, ok := s.state.(*rectangleDrag); ok {
			s.commitRectangle(st, geom.NormalizeRegion(geom.ToCartographic(st.corner), geom.ToCartographic(pos)))
			return
		}
		s.startRectangle(pos)
	case ToolPolygon:
		st, ok := s.state.(*polygonBuild)
		if !ok {
			st = s.startPolygon()
		}
		if st.moving {
			st.vertices[len(st.vertices)-1] = pos
			st.moving = false
		} else {
			st.vertices = append(st.vertices, pos)
		}
		st.sync()
	}
}

// MouseMove updates the preview of the shape in progress.
func (s *Session) MouseMove(cx, cy int) {
	if !s.Drawing() {
		return
	}
	pos, ok := s.picker.Pick(cx, cy)
	if !ok {
		return
	}
	switch st := s.state.(type) {
	case *circleDrag:
		r := geom.Distance(st.center, pos)
		st.preview.SetPositions(geom.CirclePositions(st.center, max(r, minCircleRadius), circleSegments))
		st.label.Text = radiusText(r)
	case *rectangleDrag:
		region := geom.NormalizeRegion(geom.ToCartographic(st.corner), geom.ToCartographic(pos))
		st.preview.SetPositions(region.Corners(0))
		st.label.Text = sizeText(region)
		st.label.Position = geom.FromCartographic(region.Center())
	case *polygonBuild:
		if st.moving {
			st.vertices[len(st.vertices)-1] = pos
		} else {
			st.vertices = append(st.vertices, pos)
			st.moving = true
		}
		st.sync()
	}
}

// RightClick closes the polygon in progress at the clicked point. Other
// tools ignore it.
func (s *Session) RightClick(cx, cy int) {
	st, ok := s.state.(*polygonBuild)
	if !ok {
		return
	}
	pos, ok := s.picker.Pick(cx, cy)
	if !ok {
		return
	}
	if st.moving {
		st.vertices = st.vertices[:len(st.vertices)-1]
	}
	st.vertices = append(st.vertices, pos)
	st.vertices = append(st.vertices, st.vertices[0])
	st.sync()
	s.state = idle{}

	if distinct(st.vertices) < 3 {
		s.shapes.Remove(st.fill)
		s.shapes.Remove(st.outline)
		s.log.Debug("degenerate polygon discarded", "vertices", len(st.vertices))
		return
	}
	f := fence.NewPolygon(st.fill.ID(), s.nextName("Polygon"), st.vertices)
	s.commit(f, &drawing{prims: []scene.Primitive{st.fill, st.outline}})
}

func (s *Session) startCircle(center geom.Position) {
	preview := primitive.NewPolygon(s.builder, primitive.PolygonOptions{
		Positions: geom.CirclePositions(center, minCircleRadius, circleSegments),
		Color:     s.color,
		Flat:      !s.clamp,
		Logger:    s.log,
	})
	s.shapes.Add(preview)
	label := s.labels.Add(scene.Label{Show: true, Position: center, Text: radiusText(0), Color: scene.White})
	s.state = &circleDrag{center: center, preview: preview, label: label}
}

func (s *Session) commitCircle(st *circleDrag, radius float64) {
	s.shapes.Remove(st.preview)
	c := fence.NewCircle("", s.nextName("Circle"), st.center, radius)
	st.label.Text = radiusText(radius)
	s.commit(c, s.drawFence(c, st.label))
	s.state = idle{}
}

func (s *Session) startRectangle(corner geom.Position) {
	c := geom.ToCartographic(corner)
	preview := primitive.NewPolygon(s.builder, primitive.PolygonOptions{
		Positions: geom.NormalizeRegion(c, c).Corners(0),
		Color:     s.color,
		Flat:      !s.clamp,
		Logger:    s.log,
	})
	s.shapes.Add(preview)
	label := s.labels.Add(scene.Label{Show: true, Position: corner, Color: scene.White})
	s.state = &rectangleDrag{corner: corner, preview: preview, label: label}
}

func (s *Session) commitRectangle(st *rectangleDrag, region geom.Region) {
	s.shapes.Remove(st.preview)
	r := fence.NewRectangle("", s.nextName("Square"), region)
	st.label.Text = sizeText(region)
	st.label.Position = geom.FromCartographic(region.Center())
	s.commit(r, s.drawFence(r, st.label))
	s.state = idle{}
}

func (s *Session) startPolygon() *polygonBuild {
	fill := primitive.NewPolygon(s.builder, primitive.PolygonOptions{
		Color:  s.color,
		Flat:   !s.clamp,
		Logger: s.log,
	})
	outline := primitive.NewPolyline(s.builder, primitive.PolylineOptions{
		Color:  s.color.WithAlpha(1),
		Width:  1,
		Loop:   true,
		Flat:   !s.clamp,
		Logger: s.log,
	})
	s.shapes.Add(fill)
	s.shapes.Add(outline)
	st := &polygonBuild{fill: fill, outline: outline}
	s.state = st
	return st
}

// sync hands both primitives their own copy of the vertex list.
func (st *polygonBuild) sync() {
	st.fill.SetPositions(append([]geom.Position(nil), st.vertices...))
	st.outline.SetPositions(append([]geom.Position(nil), st.vertices...))
}

func (s *Session) commit(f fence.Fence, d *drawing) {
	s.store.Add(f)
	s.drawn[f.ID()] = d
	metrics.FencesCommitted.WithLabelValues(string(f.Kind())).Inc()
	s.log.Info("geofence committed", "id", f.ID(), "name", f.Name(), "kind", f.Kind())
}

// drawFence builds the primitives that show a committed fence.
func (s *Session) drawFence(f fence.Fence, label *scene.Label) *drawing {
	var positions []geom.Position
	switch f := f.(type) {
	case *fence.Circle:
		positions = f.Ring(circleSegments)
	case *fence.Rectangle:
		positions = f.Region.Corners(0)
	case *fence.Polygon:
		positions = f.Vertices
	}
	d := &drawing{label: label}
	d.prims = append(d.prims, s.shapes.Add(primitive.NewPolygon(s.builder, primitive.PolygonOptions{
		ID:        f.ID(),
		Positions: positions,
		Color:     s.color,
		Flat:      !s.clamp,
		Logger:    s.log,
	})))
	if f.Kind() == fence.KindPolygon {
		d.prims = append(d.prims, s.shapes.Add(primitive.NewPolyline(s.builder, primitive.PolylineOptions{
			Positions: positions,
			Color:     s.color.WithAlpha(1),
			Width:     1,
			Loop:      true,
			Flat:      !s.clamp,
			Logger:    s.log,
		})))
	}
	return d
}

// Import adds fences loaded from a file and draws them.
func (s *Session) Import(fences []fence.Fence) {
	for _, f := range fences {
		if old, ok := s.drawn[f.ID()]; ok {
			s.undraw(old)
		}
		s.commit(f, s.drawFence(f, nil))
	}
}

// Remove deletes a committed fence and its primitives.
func (s *Session) Remove(id string) bool {
	if !s.store.Remove(id) {
		return false
	}
	if d, ok := s.drawn[id]; ok {
		s.undraw(d)
		delete(s.drawn, id)
	}
	s.log.Info("geofence removed", "id", id)
	return true
}

func (s *Session) undraw(d *drawing) {
	for _, p := range d.prims {
		s.shapes.Remove(p)
	}
	if d.label != nil {
		s.labels.Remove(d.label)
	}
}

// Fences returns the committed fences in commit order.
func (s *Session) Fences() []fence.Fence { return s.store.All() }

func (s *Session) nextName(kind string) string {
	s.seq++
	return fmt.Sprintf("%s %d", kind, s.seq)
}

func radiusText(r float64) string { return fmt.Sprintf("%.2f km", r/1000) }

func sizeText(r geom.Region) string {
	w, l := r.Size()
	return fmt.Sprintf("%.2f km X %.2f km", w/1000, l/1000)
}

func distinct(ps []geom.Position) int {
	seen := make(map[geom.Position]struct{}, len(ps))
	for _, p := range ps {
		seen[p] = struct{}{}
	}
	return len(seen)
}
