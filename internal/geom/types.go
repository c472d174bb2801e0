package geom

import "github.com/paulmach/orb"

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a positive extent on both axes.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

func (b BBox) Center() orb.Point {
	return orb.Point{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

func bboxFromBound(bd orb.Bound) BBox {
	return BBox{MinX: bd.Min[0], MinY: bd.Min[1], MaxX: bd.Max[0], MaxY: bd.Max[1]}
}

// Data is a minimal geometry container for loaded files, lon/lat degrees.
type Data struct {
	Points   []orb.Point
	Lines    []orb.LineString
	Polygons []orb.Polygon // first ring outer, following rings holes
	BBox     BBox
}

func (d *Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

// add appends a geometry, flattening multi geometries and collections.
func (d *Data) add(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		d.Points = append(d.Points, g)
	case orb.MultiPoint:
		d.Points = append(d.Points, g...)
	case orb.LineString:
		d.Lines = append(d.Lines, g)
	case orb.MultiLineString:
		for _, ls := range g {
			d.Lines = append(d.Lines, ls)
		}
	case orb.Ring:
		d.Polygons = append(d.Polygons, orb.Polygon{g})
	case orb.Polygon:
		d.Polygons = append(d.Polygons, g)
	case orb.MultiPolygon:
		for _, p := range g {
			d.Polygons = append(d.Polygons, p)
		}
	case orb.Collection:
		for _, c := range g {
			d.add(c)
		}
	}
}

// updateBBox recomputes BBox over every loaded coordinate.
func (d *Data) updateBBox() {
	var c orb.Collection
	for _, p := range d.Points {
		c = append(c, p)
	}
	for _, l := range d.Lines {
		c = append(c, l)
	}
	for _, p := range d.Polygons {
		c = append(c, p)
	}
	if len(c) == 0 {
		d.BBox = BBox{}
		return
	}
	d.BBox = bboxFromBound(c.Bound())
}
