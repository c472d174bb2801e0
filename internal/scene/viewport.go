package scene

import (
	"math"

	"geofence/internal/geom"
)

// Viewport maps lon/lat degrees onto the braille dot grid of a map canvas.
// Each cell holds 2x4 dots and dots are treated as square, so one
// DegPerDot applies to both axes.
type Viewport struct {
	CenterLon float64
	CenterLat float64
	DegPerDot float64
	Width     int // cells
	Height    int // cells
}

// NewViewport centres the map on lon/lat with span degrees across the width.
func NewViewport(lon, lat, span float64, w, h int) Viewport {
	v := Viewport{CenterLon: lon, CenterLat: lat, Width: max(1, w), Height: max(1, h)}
	v.DegPerDot = span / float64(v.Width*2)
	return v
}

func (v Viewport) Span() float64 { return v.DegPerDot * float64(v.Width*2) }

// ToDot projects lon/lat into fractional dot coordinates.
func (v Viewport) ToDot(lon, lat float64) (float64, float64) {
	x := (lon-v.CenterLon)/v.DegPerDot + float64(v.Width*2)/2
	y := (v.CenterLat-lat)/v.DegPerDot + float64(v.Height*4)/2
	return x, y
}

func (v Viewport) FromDot(x, y float64) (lon, lat float64) {
	lon = v.CenterLon + (x-float64(v.Width*2)/2)*v.DegPerDot
	lat = v.CenterLat - (y-float64(v.Height*4)/2)*v.DegPerDot
	return lon, lat
}

// ProjectCell returns the cell a position falls in; ok is false outside the
// canvas.
func (v Viewport) ProjectCell(p geom.Position) (cx, cy int, ok bool) {
	c := geom.ToCartographic(p)
	x, y := v.ToDot(c.Lon.Degrees(), c.Lat.Degrees())
	cx, cy = int(math.Floor(x/2)), int(math.Floor(y/4))
	return cx, cy, cx >= 0 && cy >= 0 && cx < v.Width && cy < v.Height
}

// CellToLonLat converts a map cell back to the lon/lat at its centre.
func (v Viewport) CellToLonLat(cx, cy int) (lon, lat float64, ok bool) {
	if cx < 0 || cy < 0 || cx >= v.Width || cy >= v.Height {
		return 0, 0, false
	}
	lon, lat = v.FromDot(float64(cx*2)+1, float64(cy*4)+2)
	if lat < -90 || lat > 90 {
		return 0, 0, false
	}
	lon = math.Remainder(lon, 360)
	return lon, lat, true
}

// Pick is the terrain pick: the surface position under a cell, or false when
// the cell is off the map.
func (v Viewport) Pick(cx, cy int) (geom.Position, bool) {
	lon, lat, ok := v.CellToLonLat(cx, cy)
	if !ok {
		return geom.Position{}, false
	}
	return geom.FromDegrees(lon, lat, 0), true
}

// Zoom scales the map; factor > 1 zooms in.
func (v *Viewport) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	d := v.DegPerDot / factor
	maxD := 360 / float64(v.Width*2)
	v.DegPerDot = math.Max(1e-7, math.Min(d, maxD))
}

// Pan moves the centre by whole cells.
func (v *Viewport) Pan(dx, dy int) {
	v.CenterLon += float64(dx*2) * v.DegPerDot
	v.CenterLat -= float64(dy*4) * v.DegPerDot
	v.CenterLat = math.Max(-90, math.Min(90, v.CenterLat))
	v.CenterLon = math.Remainder(v.CenterLon, 360)
}

// Resize keeps the scale and centre.
func (v *Viewport) Resize(w, h int) {
	v.Width, v.Height = max(1, w), max(1, h)
}
