package scene

import (
	"testing"

	"geofence/internal/geom"
)

func square(west, south, east, north float64) []geom.Position {
	return []geom.Position{
		geom.FromDegrees(west, south, 0),
		geom.FromDegrees(east, south, 0),
		geom.FromDegrees(east, north, 0),
		geom.FromDegrees(west, north, 0),
	}
}

// testViewport is 80x80 dots at 0.25 degrees per dot centred on 0,0.
func testViewport() Viewport { return NewViewport(0, 0, 20, 40, 20) }

func TestGroundPolygonFills(t *testing.T) {
	r := NewRaster()
	p := r.GroundPolygon(PolygonInstance{ID: "a", Positions: square(-5, -5, 5, 5), Color: Red}, Appearance{})
	f := NewFrame(1, testViewport())
	p.Render(f)

	g, c := f.Cell(20, 10)
	if g == ' ' {
		t.Fatal("centre cell is empty")
	}
	if c != Red {
		t.Fatalf("centre colour = %v, want red", c)
	}
	if f.Owner(20, 10) == 0 {
		t.Fatal("centre cell has no owner")
	}
	if g, _ := f.Cell(2, 2); g != ' ' {
		t.Fatalf("cell outside the square drawn as %q", g)
	}
}

func TestTranslucentFillIsStippled(t *testing.T) {
	r := NewRaster()
	p := r.GroundPolygon(PolygonInstance{Positions: square(-5, -5, 5, 5), Color: Red.WithAlpha(0.3)}, Appearance{Translucent: true})
	f := NewFrame(1, testViewport())
	p.Render(f)
	g, _ := f.Cell(20, 10)
	if g == ' ' || g == '⣿' {
		t.Fatalf("translucent interior = %q, want a partial pattern", g)
	}
}

func TestCoplanarDepthFail(t *testing.T) {
	r := NewRaster()
	ground := r.GroundPolygon(PolygonInstance{Positions: square(-5, -5, 5, 5), Color: Red}, Appearance{})
	flat := r.CoplanarPolygon(PolygonInstance{
		Positions:      square(-2, -2, 8, 8),
		Color:          Blue,
		DepthFailColor: Green,
	}, Appearance{}, Appearance{})

	f := NewFrame(1, testViewport())
	ground.Render(f)
	owner := f.Owner(20, 10)
	flat.Render(f)

	if _, c := f.Cell(20, 10); c != Green {
		t.Fatalf("overlapped cell colour = %v, want depth-fail green", c)
	}
	if got := f.Owner(20, 10); got != owner {
		t.Fatalf("overlapped cell owner changed from %d to %d", owner, got)
	}
	// lon 7, lat 7 is only covered by the flat polygon.
	if _, c := f.Cell(34, 3); c != Blue {
		t.Fatalf("uncovered cell colour = %v, want blue", c)
	}
}

func TestFlatPolylineAppearance(t *testing.T) {
	line := []geom.Position{geom.FromDegrees(-9.9, 0.1, 0), geom.FromDegrees(9.9, 0.1, 0)}
	inst := PolylineInstance{Positions: line, Width: 1, Color: White}
	r := NewRaster()

	opaque := NewFrame(1, testViewport())
	r.Polyline(inst, Appearance{}, Appearance{}).Render(opaque)
	translucent := NewFrame(2, testViewport())
	r.Polyline(inst, Appearance{Translucent: true}, Appearance{Translucent: true}).Render(translucent)

	og, _ := opaque.Cell(20, 9)
	tg, _ := translucent.Cell(20, 9)
	if og == ' ' || tg == ' ' {
		t.Fatalf("line not drawn: opaque %q, translucent %q", og, tg)
	}
	if og == tg {
		t.Fatalf("translucent line not stippled: both %q", og)
	}

	// Over a stippled fill, a translucent depth-fail appearance only
	// recolours dots the fill already set.
	under := func(fail Appearance) (rune, Color) {
		f := NewFrame(3, testViewport())
		r.GroundPolygon(PolygonInstance{Positions: square(-5, -5, 5, 5), Color: Red.WithAlpha(0.3)}, Appearance{Translucent: true}).Render(f)
		r.Polyline(inst, Appearance{}, fail).Render(f)
		return f.Cell(20, 9)
	}
	base := NewFrame(4, testViewport())
	r.GroundPolygon(PolygonInstance{Positions: square(-5, -5, 5, 5), Color: Red.WithAlpha(0.3)}, Appearance{Translucent: true}).Render(base)
	fill, _ := base.Cell(20, 9)

	g, c := under(Appearance{Translucent: true})
	if g != fill || c != White {
		t.Fatalf("translucent depth fail = %q %v, want %q in white", g, c, fill)
	}
	if g, _ := under(Appearance{}); g == fill {
		t.Fatal("opaque depth fail left the fill pattern unchanged")
	}
}

func TestGroundPolylineDashed(t *testing.T) {
	line := []geom.Position{geom.FromDegrees(-9.9, 0.1, 0), geom.FromDegrees(9.9, 0.1, 0)}
	r := NewRaster()

	solid := NewFrame(1, testViewport())
	r.GroundPolyline(PolylineInstance{Positions: line, Width: 1}, Material{Color: White}).Render(solid)
	dashed := NewFrame(1, testViewport())
	r.GroundPolyline(PolylineInstance{Positions: line, Width: 1}, Material{Color: White, Dashed: true}).Render(dashed)

	for _, cx := range []int{1, 3, 5, 7} {
		if g, _ := solid.Cell(cx, 9); g == ' ' {
			t.Fatalf("solid line missing at cell %d", cx)
		}
	}
	for _, cx := range []int{1, 5} {
		if g, _ := dashed.Cell(cx, 9); g == ' ' {
			t.Fatalf("dash missing at cell %d", cx)
		}
	}
	for _, cx := range []int{3, 7} {
		if g, _ := dashed.Cell(cx, 9); g != ' ' {
			t.Fatalf("gap at cell %d drawn as %q", cx, g)
		}
	}
}

func TestRasterStats(t *testing.T) {
	r := NewRaster()
	a := r.Polyline(PolylineInstance{Positions: square(0, 0, 1, 1), Width: 2, Color: White}, Appearance{}, Appearance{})
	b := r.CoplanarPolygon(PolygonInstance{Positions: square(0, 0, 1, 1), Color: White}, Appearance{}, Appearance{})
	if built, live := r.Stats(); built != 2 || live != 2 {
		t.Fatalf("stats = %d/%d, want 2/2", built, live)
	}
	a.Destroy()
	a.Destroy()
	if built, live := r.Stats(); built != 2 || live != 1 {
		t.Fatalf("stats after destroy = %d/%d, want 2/1", built, live)
	}
	if !a.IsDestroyed() || b.IsDestroyed() {
		t.Fatal("destroyed flags wrong")
	}

	f := NewFrame(1, testViewport())
	a.Render(f)
	for _, line := range f.PlainLines() {
		for _, g := range line {
			if g != ' ' {
				t.Fatal("destroyed primitive drew into the frame")
			}
		}
	}
}

func TestLineClipsOffCanvas(t *testing.T) {
	r := NewRaster()
	p := r.Polyline(PolylineInstance{
		Positions: []geom.Position{geom.FromDegrees(-170, -0.00001, 0), geom.FromDegrees(170, -0.00001, 0)},
		Width:     1,
		Color:     White,
	}, Appearance{}, Appearance{})
	f := NewFrame(1, NewViewport(0, 0, 0.001, 40, 20))
	p.Render(f)
	if g, _ := f.Cell(0, 10); g == ' ' {
		t.Fatal("clipped line missing at the canvas edge")
	}
}
