package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPlacemark struct {
	Point *kmlPoint `xml:"Point"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Document   *kmlDoc        `xml:"Document"`
	Folders    []kmlDoc       `xml:"Folder"`
}

func (k *kmlDoc) placemarks() []kmlPlacemark {
	out := k.Placemarks
	if k.Document != nil {
		out = append(out, k.Document.placemarks()...)
	}
	for i := range k.Folders {
		out = append(out, k.Folders[i].placemarks()...)
	}
	return out
}

// LoadKML extracts Placemark Point coordinates. KML tuples are
// "lon,lat[,alt]"; altitude is dropped.
func LoadKML(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	var doc kmlDoc
	if err := xml.Unmarshal(b, &doc); err != nil {
		return Data{}, fmt.Errorf("kml: %w", err)
	}
	var d Data
	for _, pm := range doc.placemarks() {
		if pm.Point == nil {
			continue
		}
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			d.Points = append(d.Points, orb.Point{lon, lat})
		}
	}
	if len(d.Points) == 0 {
		return Data{}, errors.New("kml: no points found")
	}
	d.updateBBox()
	return d, nil
}
