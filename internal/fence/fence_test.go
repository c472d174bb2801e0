package fence

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"geofence/internal/geom"
	"geofence/internal/typeid"
)

func deg(lon, lat float64) geom.Position { return geom.FromDegrees(lon, lat, 0) }

func squareFence(name string, west, south, east, north float64) *Polygon {
	return NewPolygon("", name, []geom.Position{
		deg(west, south), deg(east, south), deg(east, north), deg(west, north),
	})
}

func TestFenceContains(t *testing.T) {
	circle := NewCircle("", "Circle 1", deg(21.8, 39.0), 5000)
	rect := NewRectangle("", "Square 1", geom.RegionFromDegrees(21, 38, 22, 39))
	poly := squareFence("Polygon 1", 0, 0, 4, 4)

	tests := []struct {
		name  string
		fence Fence
		p     geom.Position
		want  bool
	}{
		{"circle centre", circle, deg(21.8, 39.0), true},
		{"circle outside", circle, deg(21.8, 39.1), false},
		{"rectangle inside", rect, deg(21.5, 38.5), true},
		{"rectangle outside", rect, deg(22.5, 38.5), false},
		{"polygon inside", poly, deg(2, 2), true},
		{"polygon outside", poly, deg(5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fence.Contains(tt.p); got != tt.want {
				t.Fatalf("Contains = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFenceIDs(t *testing.T) {
	if err := typeid.Validate(NewCircle("", "", deg(0, 0), 1).ID(), typeid.PrefixCircle); err != nil {
		t.Fatal(err)
	}
	if err := typeid.Validate(NewRectangle("", "", geom.Region{}).ID(), typeid.PrefixRectangle); err != nil {
		t.Fatal(err)
	}
	if got := NewPolygon("keep", "", nil).ID(); got != "keep" {
		t.Fatalf("explicit id replaced with %q", got)
	}
}

func TestStoreCheckMatchesContains(t *testing.T) {
	centres := [][2]float64{
		{0, 0}, {45, 60}, {179.9, 0}, {-179.95, 10}, {180, -30},
		{0, 89.5}, {10, -88}, {-120, 75},
	}
	radii := []float64{1e3, 5e4, 5e5, 3e6, 8e6, 1e7}

	s := NewStore(nil)
	var circles []*Circle
	for _, c := range centres {
		for _, r := range radii {
			f := NewCircle("", "", deg(c[0], c[1]), r)
			circles = append(circles, f)
			s.Add(f)
		}
	}

	var samples []geom.Position
	for lat := -90.0; lat <= 90; lat += 7.5 {
		for lon := -180.0; lon <= 180; lon += 7.5 {
			samples = append(samples, deg(lon, lat))
		}
	}
	for _, c := range circles {
		// arc radii just inside and just outside the chord radius
		arc := 2 * geom.EarthRadius * math.Asin(math.Min(1, c.Radius/(2*geom.EarthRadius)))
		samples = append(samples, c.Center)
		samples = append(samples, geom.CirclePositions(c.Center, arc*0.99, 24)...)
		samples = append(samples, geom.CirclePositions(c.Center, arc*1.01, 24)...)
	}

	for _, p := range samples {
		want := make(map[Fence]bool)
		for _, f := range s.All() {
			if f.Contains(p) {
				want[f] = true
			}
		}
		got := s.Check(p)
		if len(got) != len(want) {
			pc := geom.ToCartographic(p)
			t.Fatalf("check (%.4f, %.4f) matched %d fences, direct test %d",
				pc.Lon.Degrees(), pc.Lat.Degrees(), len(got), len(want))
		}
		for _, f := range got {
			if !want[f] {
				t.Fatalf("check returned %s which does not contain the point", f.ID())
			}
		}
	}
}

func TestStoreCheckCircleEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		circle *Circle
		p      geom.Position
	}{
		{"across the antimeridian", NewCircle("", "", deg(179.9, 0), 5e4), deg(-179.9, 0)},
		{"chord radius beyond arc bound", NewCircle("", "", deg(0, 0), 8e6), deg(0, 76)},
		{"cap over the pole", NewCircle("", "", deg(0, 85), 1e6), deg(180, 88)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.circle.Contains(tt.p) {
				t.Fatal("point should be inside the circle")
			}
			s := NewStore(nil)
			s.Add(tt.circle)
			if got := s.Check(tt.p); len(got) != 1 {
				t.Fatalf("check matched %d fences, want 1 (bound %v)", len(got), tt.circle.Bound())
			}
		})
	}
	huge := NewCircle("", "", deg(50, 0), 3e7).Bound()
	if huge.Min[0] != -180 || huge.Max[0] != 180 {
		t.Fatalf("globe-sized circle bound = %v", huge)
	}
}

func TestCircleRingFollowsChordRadius(t *testing.T) {
	c := NewCircle("", "", deg(30, 45), 3e6)
	for _, p := range c.Ring(32) {
		if d := geom.Distance(c.Center, p); math.Abs(d-c.Radius) > 0.02*c.Radius {
			t.Fatalf("ring point at %.0f m, want about %.0f m", d, c.Radius)
		}
	}
}

func TestWrapBound(t *testing.T) {
	east := wrapBound(orb.Bound{Min: orb.Point{179, -1}, Max: orb.Point{181, 1}})
	if len(east) != 2 || east[0].Max[0] != 180 || east[1].Min[0] != -180 || east[1].Max[0] != -179 {
		t.Fatalf("east overflow split = %v", east)
	}
	west := wrapBound(orb.Bound{Min: orb.Point{-182, -1}, Max: orb.Point{-178, 1}})
	if len(west) != 2 || west[0].Min[0] != 178 || west[1].Max[0] != -178 {
		t.Fatalf("west overflow split = %v", west)
	}
	if got := wrapBound(orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{2, 2}}); len(got) != 1 {
		t.Fatalf("in-range bound split into %v", got)
	}
}

func TestStoreCheck(t *testing.T) {
	s := NewStore(nil)
	a := squareFence("A", 0, 0, 4, 4)
	b := squareFence("B", 2, 2, 6, 6)
	c := NewCircle("", "C", deg(3, 3), 50000)
	s.Add(a)
	s.Add(b)
	s.Add(c)

	got := s.Check(deg(3, 3))
	if len(got) != 3 || got[0] != Fence(a) || got[1] != Fence(b) || got[2] != Fence(c) {
		t.Fatalf("check returned %v, want A, B, C in order", names(got))
	}
	if got := s.Check(deg(1, 1)); len(got) != 1 || got[0].Name() != "A" {
		t.Fatalf("check (1,1) = %v", names(got))
	}
	if got := s.Check(deg(40, 40)); len(got) != 0 {
		t.Fatalf("check far away = %v", names(got))
	}

	if !s.Remove(a.ID()) || s.Remove(a.ID()) {
		t.Fatal("remove reported wrong result")
	}
	if got := s.Check(deg(1, 1)); len(got) != 0 {
		t.Fatalf("removed fence still matched: %v", names(got))
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if _, ok := s.Get(b.ID()); !ok {
		t.Fatal("get missed a stored fence")
	}
}

func TestStoreAddReplacesID(t *testing.T) {
	s := NewStore(nil)
	s.Add(NewPolygon("p", "old", []geom.Position{deg(0, 0), deg(1, 0), deg(1, 1)}))
	s.Add(NewPolygon("p", "new", []geom.Position{deg(10, 10), deg(11, 10), deg(11, 11)}))
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if f, _ := s.Get("p"); f.Name() != "new" {
		t.Fatalf("name = %q, want new", f.Name())
	}
	if got := s.Check(deg(0.9, 0.1)); len(got) != 0 {
		t.Fatal("replaced fence still indexed")
	}
}

func TestGeoJSONRoundTrip(t *testing.T) {
	in := []Fence{
		NewCircle("", "Circle 1", deg(21.8, 39.07), 1200),
		NewRectangle("", "Square 2", geom.RegionFromDegrees(21, 38, 22, 39)),
		squareFence("Polygon 3", 0, 0, 4, 4),
	}
	path := filepath.Join(t.TempDir(), "fences.geojson")
	if err := WriteFile(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("read %d fences, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].ID() != in[i].ID() || out[i].Name() != in[i].Name() || out[i].Kind() != in[i].Kind() {
			t.Fatalf("fence %d: got %s/%s/%s", i, out[i].ID(), out[i].Name(), out[i].Kind())
		}
	}
	if r := out[0].(*Circle).Radius; r != 1200 {
		t.Fatalf("radius = %v", r)
	}
	probes := []geom.Position{deg(21.8, 39.07), deg(21.5, 38.5), deg(2, 2), deg(30, 30)}
	for _, p := range probes {
		for i := range in {
			if in[i].Contains(p) != out[i].Contains(p) {
				t.Fatalf("fence %d disagrees after round trip", i)
			}
		}
	}
}

func TestUnmarshalForeignGeoJSON(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
	 {"type":"Feature","properties":{},"geometry":{"type":"MultiPolygon","coordinates":[
	   [[[0,0],[1,0],[1,1],[0,0]]],
	   [[[5,5],[6,5],[6,6],[5,5]]]]}},
	 {"type":"Feature","properties":{"name":"pin"},"geometry":{"type":"Point","coordinates":[3,3]}},
	 {"type":"Feature","properties":{"name":"road"},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}
	]}`
	fences, err := UnmarshalGeoJSON([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(fences) != 2 || fences[0].Kind() != KindPolygon || fences[1].Name() != "Feature 1 2" {
		t.Fatalf("got %v", names(fences))
	}

	if _, err := UnmarshalGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`)); err == nil {
		t.Fatal("empty collection accepted")
	}
	if _, err := UnmarshalGeoJSON([]byte(`not json`)); err == nil {
		t.Fatal("garbage accepted")
	}
}

func TestFromData(t *testing.T) {
	d, err := geom.ParseWKTData("POLYGON((0 0, 2 0, 2 2, 0 2, 0 0))")
	if err != nil {
		t.Fatal(err)
	}
	fences := FromData(d, "WKT")
	if len(fences) != 1 || fences[0].Name() != "WKT 1" {
		t.Fatalf("got %v", names(fences))
	}
	if !fences[0].Contains(deg(1, 1)) {
		t.Fatal("imported polygon misses its centre")
	}
}

func names(fs []Fence) string {
	var out []string
	for _, f := range fs {
		out = append(out, f.Name())
	}
	return strings.Join(out, ", ")
}
