package geom

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// LoadGeo reads a GeoJSON file (FeatureCollection, Feature or bare geometry).
func LoadGeo(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseGeoJSON(b)
}

func ParseGeoJSON(b []byte) (Data, error) {
	var d Data
	if fc, err := geojson.UnmarshalFeatureCollection(b); err == nil {
		for _, f := range fc.Features {
			d.add(f.Geometry)
		}
	} else if f, err := geojson.UnmarshalFeature(b); err == nil {
		d.add(f.Geometry)
	} else if g, err := geojson.UnmarshalGeometry(b); err == nil && g.Geometry() != nil {
		d.add(g.Geometry())
	} else {
		return Data{}, fmt.Errorf("geojson: unrecognised document")
	}
	if d.Empty() {
		return Data{}, errors.New("no geometries found")
	}
	d.updateBBox()
	return d, nil
}
