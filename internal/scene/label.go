package scene

import (
	"github.com/mattn/go-runewidth"

	"geofence/internal/geom"
)

// Origin anchors a label horizontally on its position.
type Origin int

const (
	OriginCenter Origin = iota
	OriginLeft
)

// Label is text pinned to a world position.
type Label struct {
	Show     bool
	Position geom.Position
	Text     string
	Color    Color
	Origin   Origin
	OffsetX  int // cells
	OffsetY  int
}

// LabelCollection draws labels over the map.
type LabelCollection struct {
	labels    []*Label
	destroyed bool
}

func NewLabelCollection() *LabelCollection { return &LabelCollection{} }

func (c *LabelCollection) Add(l Label) *Label {
	lp := &l
	c.labels = append(c.labels, lp)
	return lp
}

func (c *LabelCollection) Remove(l *Label) bool {
	for i, it := range c.labels {
		if it == l {
			c.labels = append(c.labels[:i], c.labels[i+1:]...)
			return true
		}
	}
	return false
}

func (c *LabelCollection) Len() int { return len(c.labels) }

func (c *LabelCollection) Render(f *Frame) {
	if c.destroyed {
		return
	}
	for _, l := range c.labels {
		if !l.Show || l.Text == "" {
			continue
		}
		cx, cy, _ := f.Viewport.ProjectCell(l.Position)
		if l.Origin == OriginCenter {
			cx -= runewidth.StringWidth(l.Text) / 2
		}
		f.Overlay(cx+l.OffsetX, cy+l.OffsetY, l.Text, l.Color)
	}
}

func (c *LabelCollection) Destroy() {
	c.labels = nil
	c.destroyed = true
}

func (c *LabelCollection) IsDestroyed() bool { return c.destroyed }

// Point is a marker glyph at a world position.
type Point struct {
	Show     bool
	Position geom.Position
	Color    Color
	Glyph    rune
}

// PointCollection draws point markers; a zero Glyph draws '●'.
type PointCollection struct {
	points    []*Point
	destroyed bool
}

func NewPointCollection() *PointCollection { return &PointCollection{} }

func (c *PointCollection) Add(p Point) *Point {
	pp := &p
	c.points = append(c.points, pp)
	return pp
}

func (c *PointCollection) Len() int { return len(c.points) }

// RemoveAll drops every marker.
func (c *PointCollection) RemoveAll() { c.points = nil }

func (c *PointCollection) Render(f *Frame) {
	if c.destroyed {
		return
	}
	for _, p := range c.points {
		if !p.Show {
			continue
		}
		cx, cy, ok := f.Viewport.ProjectCell(p.Position)
		if !ok {
			continue
		}
		g := p.Glyph
		if g == 0 {
			g = '●'
		}
		f.Overlay(cx, cy, string(g), p.Color)
	}
}

func (c *PointCollection) Destroy() {
	c.points = nil
	c.destroyed = true
}

func (c *PointCollection) IsDestroyed() bool { return c.destroyed }
