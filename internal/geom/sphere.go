package geom

import "github.com/golang/geo/r3"

type BoundingSphere struct {
	Center r3.Vector
	Radius float64
}

// BoundingSphereFromPoints encloses every point in the sphere centred on
// their axis-aligned bounding box. An empty input yields the zero sphere.
func BoundingSphereFromPoints(points []Position) BoundingSphere {
	if len(points) == 0 {
		return BoundingSphere{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = r3.Vector{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = r3.Vector{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	center := lo.Add(hi).Mul(0.5)
	var r float64
	for _, p := range points {
		r = max(r, p.Sub(center).Norm())
	}
	return BoundingSphere{Center: center, Radius: r}
}

func (s BoundingSphere) Contains(p Position) bool {
	return p.Sub(s.Center).Norm() <= s.Radius
}
