package fence

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geofence/internal/geom"
)

// MarshalGeoJSON writes fences as a FeatureCollection. Circles become Point
// features with a radius property in metres.
func MarshalGeoJSON(fences []Fence) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, f := range fences {
		var g orb.Geometry
		switch f := f.(type) {
		case *Circle:
			g = geom.ToCartographic(f.Center).Point()
		case *Rectangle:
			b := f.Region.Bound()
			g = orb.Polygon{b.ToRing()}
		case *Polygon:
			ring := append(orb.Ring(nil), f.Ring()...)
			if len(ring) > 0 && !ring.Closed() {
				ring = append(ring, ring[0])
			}
			g = orb.Polygon{ring}
		default:
			return nil, fmt.Errorf("marshal fence %s: unsupported type %T", f.ID(), f)
		}
		feat := geojson.NewFeature(g)
		feat.ID = f.ID()
		feat.Properties["id"] = f.ID()
		feat.Properties["name"] = f.Name()
		feat.Properties["kind"] = string(f.Kind())
		if c, ok := f.(*Circle); ok {
			feat.Properties["radius"] = c.Radius
		}
		fc.Append(feat)
	}
	return fc.MarshalJSON()
}

// UnmarshalGeoJSON reads a FeatureCollection. Features written by
// MarshalGeoJSON keep their kind; other Polygon and MultiPolygon features
// become polygons and Point features with a radius become circles.
// Anything else is skipped.
func UnmarshalGeoJSON(data []byte) ([]Fence, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	var out []Fence
	for i, feat := range fc.Features {
		id := feat.Properties.MustString("id", "")
		name := feat.Properties.MustString("name", fmt.Sprintf("Feature %d", i+1))
		kind := Kind(feat.Properties.MustString("kind", ""))
		switch g := feat.Geometry.(type) {
		case orb.Point:
			radius := feat.Properties.MustFloat64("radius", 0)
			if radius <= 0 {
				continue
			}
			out = append(out, NewCircle(id, name, geom.FromDegrees(g[0], g[1], 0), radius))
		case orb.Polygon:
			if f := polygonFence(id, name, kind, g); f != nil {
				out = append(out, f)
			}
		case orb.MultiPolygon:
			for j, p := range g {
				pid := ""
				if id != "" {
					pid = fmt.Sprintf("%s_%d", id, j)
				}
				if f := polygonFence(pid, fmt.Sprintf("%s %d", name, j+1), KindPolygon, p); f != nil {
					out = append(out, f)
				}
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no geofences found")
	}
	return out, nil
}

func polygonFence(id, name string, kind Kind, p orb.Polygon) Fence {
	if len(p) == 0 || len(p[0]) < 3 {
		return nil
	}
	if kind == KindRectangle {
		b := p[0].Bound()
		return NewRectangle(id, name, geom.RegionFromDegrees(b.Min[0], b.Min[1], b.Max[0], b.Max[1]))
	}
	return NewPolygon(id, name, ringPositions(p[0]))
}

func ringPositions(r orb.Ring) []geom.Position {
	out := make([]geom.Position, len(r))
	for i, pt := range r {
		out[i] = geom.FromDegrees(pt[0], pt[1], 0)
	}
	return out
}

// FromData turns the polygons of a loaded file into polygon fences named
// prefix 1, prefix 2, ... Holes are ignored.
func FromData(d geom.Data, prefix string) []Fence {
	var out []Fence
	for _, p := range d.Polygons {
		if f := polygonFence("", fmt.Sprintf("%s %d", prefix, len(out)+1), KindPolygon, p); f != nil {
			out = append(out, f)
		}
	}
	return out
}

// WriteFile exports fences to path.
func WriteFile(path string, fences []Fence) error {
	b, err := MarshalGeoJSON(fences)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile imports fences from a GeoJSON file.
func ReadFile(path string) ([]Fence, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalGeoJSON(b)
}
