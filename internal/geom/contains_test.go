package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

func TestPointInPolygon(t *testing.T) {
	square := []orb.Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	concave := []orb.Point{{0, 0}, {6, 0}, {6, 6}, {3, 2}, {0, 6}}
	tests := []struct {
		name     string
		vertices []orb.Point
		p        orb.Point
		want     bool
	}{
		{"centre", square, orb.Point{2, 2}, true},
		{"outside", square, orb.Point{5, 5}, false},
		{"left of square", square, orb.Point{-1, 2}, false},
		{"closed ring input", append(square, square[0]), orb.Point{1, 3}, true},
		{"concave notch", concave, orb.Point{3, 4}, false},
		{"concave arm", concave, orb.Point{1, 4}, true},
		{"too few vertices", square[:2], orb.Point{1, 0}, false},
		{"empty", nil, orb.Point{0, 0}, false},
		{"edge counts inside", square, orb.Point{4, 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.vertices, tt.p); got != tt.want {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointInPolygonDoesNotMutate(t *testing.T) {
	in := []orb.Point{{0, 0}, {4, 0}, {4, 4}}
	PointInPolygon(in, orb.Point{1, 1})
	if len(in) != 3 || in[0] != (orb.Point{0, 0}) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestPointInCircle(t *testing.T) {
	c := r3.Vector{}
	if !PointInCircle(c, 10, r3.Vector{Y: 10}) {
		t.Error("boundary should be inside")
	}
	if PointInCircle(c, 10, r3.Vector{Y: 10.0001}) {
		t.Error("just outside should be outside")
	}
	if !PointInCircle(c, 10, r3.Vector{X: 3, Y: 4}) {
		t.Error("interior should be inside")
	}
}

func TestNormalizeRegionReversedCorners(t *testing.T) {
	a := CartographicFromDegrees(10, 5, 0)
	b := CartographicFromDegrees(-10, -5, 0)
	r := NormalizeRegion(a, b)
	if !(r.West <= r.East && r.South <= r.North) {
		t.Fatalf("region not ordered: %+v", r)
	}
	want := RegionFromDegrees(-10, -5, 10, 5)
	if math.Abs(r.West-want.West) > 1e-12 || math.Abs(r.North-want.North) > 1e-12 {
		t.Errorf("region = %+v, want %+v", r, want)
	}
}

func TestNormalizeRegionDegenerate(t *testing.T) {
	a := CartographicFromDegrees(10, 5, 0)
	r := NormalizeRegion(a, a)
	if got := r.East - r.West; math.Abs(got-2*RegionEpsilon) > 1e-15 {
		t.Errorf("width = %v, want %v", got, 2*RegionEpsilon)
	}
	if got := r.North - r.South; math.Abs(got-2*RegionEpsilon) > 1e-15 {
		t.Errorf("height = %v, want %v", got, 2*RegionEpsilon)
	}
	if !PointInRegion(r, a) {
		t.Error("corner should lie inside its own region")
	}
}

func TestPointInRegion(t *testing.T) {
	r := RegionFromDegrees(0, 0, 10, 10)
	tests := []struct {
		lon, lat float64
		want     bool
	}{
		{5, 5, true},
		{0, 0, true},
		{10, 10, true},
		{10.001, 5, false},
		{5, -0.001, false},
	}
	for _, tt := range tests {
		if got := PointInRegion(r, CartographicFromDegrees(tt.lon, tt.lat, 0)); got != tt.want {
			t.Errorf("PointInRegion(%v,%v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
		}
	}
}

func TestRegionHelpers(t *testing.T) {
	r := RegionFromDegrees(20, 38, 22, 40)
	c := r.Center()
	if math.Abs(c.Lon.Degrees()-21) > 1e-9 || math.Abs(c.Lat.Degrees()-39) > 1e-9 {
		t.Errorf("center = %v,%v", c.Lon.Degrees(), c.Lat.Degrees())
	}
	b := r.Bound()
	if math.Abs(b.Min[0]-20) > 1e-9 || math.Abs(b.Max[1]-40) > 1e-9 {
		t.Errorf("bound = %v", b)
	}
	if len(r.Corners(0)) != 4 {
		t.Error("expected four corners")
	}
	w, l := r.Size()
	// two degrees of latitude is roughly 222 km; longitude shrinks with cos(lat)
	if l < 220e3 || l > 224e3 || w >= l {
		t.Errorf("size = %v x %v", w, l)
	}
}
