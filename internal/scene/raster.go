package scene

import (
	"math"
	"sort"
)

// pt is a projected point in fractional dot coordinates.
type pt struct{ x, y float64 }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// clip cuts segment a-b to the rectangle [x0,x1]x[y0,y1] (Liang-Barsky).
func clip(a, b pt, x0, y0, x1, y1 float64) (pt, pt, bool) {
	dx, dy := b.x-a.x, b.y-a.y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.x - x0},
		{dx, x1 - a.x},
		{-dy, a.y - y0},
		{dy, y1 - a.y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return pt{a.x + t0*dx, a.y + t0*dy}, pt{a.x + t1*dx, a.y + t1*dy}, true
}

// drawLine draws a Bresenham line on the dot grid. width thickens the line
// into a square brush; dashed skips every other run of four dots along the
// major axis, keyed on the dot position so the pattern continues across
// segments.
func (f *Frame) drawLine(a, b pt, width int, s stroke) {
	w, h := float64(f.Viewport.Width*2), float64(f.Viewport.Height*4)
	a, b, ok := clip(a, b, -2, -2, w+2, h+2)
	if !ok {
		return
	}
	x0, y0 := int(math.Floor(a.x)), int(math.Floor(a.y))
	x1, y1 := int(math.Floor(b.x)), int(math.Floor(b.y))
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	k := max(0, (width-1)/2)
	steep := -dy > dx
	err := dx + dy
	for {
		major := x0
		if steep {
			major = y0
		}
		if !s.dashed || (major>>2)&1 == 0 {
			for ox := -k; ox <= k; ox++ {
				for oy := -k; oy <= k; oy++ {
					f.plot(x0+ox, y0+oy, s)
				}
			}
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawPath connects consecutive points.
func (f *Frame) drawPath(path []pt, width int, s stroke) {
	if len(path) == 1 {
		f.drawLine(path[0], path[0], width, s)
		return
	}
	for i := 0; i+1 < len(path); i++ {
		f.drawLine(path[i], path[i+1], width, s)
	}
}

// fillRing fills a ring with the even-odd rule per dot scanline, then
// strokes its edges so thin slivers stay visible.
func (f *Frame) fillRing(ring []pt, s stroke) {
	if len(ring) < 3 {
		return
	}
	hDots := f.Viewport.Height * 4
	wDots := f.Viewport.Width * 2
	minY, maxY := ring[0].y, ring[0].y
	for _, p := range ring {
		minY = math.Min(minY, p.y)
		maxY = math.Max(maxY, p.y)
	}
	var xs []float64
	for y := max(0, int(math.Floor(minY))); y <= min(hDots-1, int(math.Ceil(maxY))); y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a.y == b.y {
				continue
			}
			if (yc >= a.y && yc < b.y) || (yc >= b.y && yc < a.y) {
				t := (yc - a.y) / (b.y - a.y)
				xs = append(xs, a.x+t*(b.x-a.x))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			from := int(math.Max(0, math.Round(xs[i])))
			to := int(math.Min(float64(wDots-1), math.Round(xs[i+1])))
			for x := from; x <= to; x++ {
				f.plot(x, y, s)
			}
		}
	}
	edge := s
	edge.stipple = false
	closed := append(append([]pt(nil), ring...), ring[0])
	f.drawPath(closed, 1, edge)
}
