package geom

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// WGS84 ellipsoid.
const (
	wgs84A  = 6378137.0
	wgs84F  = 1 / 298.257223563
	wgs84B  = wgs84A * (1 - wgs84F)
	wgs84E2 = wgs84F * (2 - wgs84F)

	// EarthRadius is the mean radius used for spherical approximations.
	EarthRadius = 6371008.8
)

// Position is an earth-centred, earth-fixed point in metres.
type Position = r3.Vector

type Cartographic struct {
	Lon    s1.Angle
	Lat    s1.Angle
	Height float64
}

func CartographicFromDegrees(lon, lat, height float64) Cartographic {
	return Cartographic{Lon: s1.Angle(lon) * s1.Degree, Lat: s1.Angle(lat) * s1.Degree, Height: height}
}

func (c Cartographic) LatLng() s2.LatLng {
	return s2.LatLng{Lat: c.Lat, Lng: c.Lon}
}

// Point is the planar lon/lat projection in degrees.
func (c Cartographic) Point() orb.Point {
	return orb.Point{c.Lon.Degrees(), c.Lat.Degrees()}
}

func FromDegrees(lon, lat, height float64) Position {
	return FromCartographic(CartographicFromDegrees(lon, lat, height))
}

func FromCartographic(c Cartographic) Position {
	sinLat, cosLat := math.Sincos(c.Lat.Radians())
	sinLon, cosLon := math.Sincos(c.Lon.Radians())
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
	return r3.Vector{
		X: (n + c.Height) * cosLat * cosLon,
		Y: (n + c.Height) * cosLat * sinLon,
		Z: (n*(1-wgs84E2) + c.Height) * sinLat,
	}
}

// ToCartographic inverts FromCartographic by fixed-point iteration on the
// latitude, which converges to sub-millimetre precision well within the
// iteration budget for terrestrial heights.
func ToCartographic(p Position) Cartographic {
	lon := math.Atan2(p.Y, p.X)
	rho := math.Hypot(p.X, p.Y)
	if rho < 1e-9 {
		lat := math.Pi / 2
		if p.Z < 0 {
			lat = -lat
		}
		return Cartographic{Lon: 0, Lat: s1.Angle(lat), Height: math.Abs(p.Z) - wgs84B}
	}
	lat := math.Atan2(p.Z, rho*(1-wgs84E2))
	var h float64
	for i := 0; i < 10; i++ {
		sinLat := math.Sin(lat)
		n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
		h = rho/math.Cos(lat) - n
		next := math.Atan2(p.Z, rho*(1-wgs84E2*n/(n+h)))
		if math.Abs(next-lat) < 1e-14 {
			lat = next
			break
		}
		lat = next
	}
	sinLat := math.Sin(lat)
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
	h = rho/math.Cos(lat) - n
	return Cartographic{Lon: s1.Angle(lon), Lat: s1.Angle(lat), Height: h}
}

// ChordAngle bounds the geocentric angle between two points on or above the
// ellipsoid whose straight-line distance is chord.
func ChordAngle(chord float64) s1.Angle {
	return s1.Angle(2 * math.Asin(math.Min(1, chord/(2*wgs84B))))
}

// GeocentricLatitude is the angle between p and the equatorial plane.
func GeocentricLatitude(p Position) s1.Angle {
	return s1.Angle(math.Atan2(p.Z, math.Hypot(p.X, p.Y)))
}

// Distance is the straight-line distance in metres.
func Distance(a, b Position) float64 {
	return a.Sub(b).Norm()
}

// CirclePositions returns n points on the surface at arc distance radius
// around center, counter-clockwise starting north, at the center's height.
func CirclePositions(center Position, radius float64, n int) []Position {
	if n < 3 {
		n = 3
	}
	c := ToCartographic(center)
	u := s2.PointFromLatLng(c.LatLng()).Vector
	east := r3.Vector{Z: 1}.Cross(u)
	if east.Norm() < 1e-12 {
		east = r3.Vector{Y: 1}
	}
	east = east.Normalize()
	north := u.Cross(east)
	alpha := radius / EarthRadius
	sinA, cosA := math.Sincos(alpha)
	out := make([]Position, 0, n)
	for i := 0; i < n; i++ {
		sinT, cosT := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		d := north.Mul(cosT).Sub(east.Mul(sinT))
		v := u.Mul(cosA).Add(d.Mul(sinA))
		ll := s2.LatLngFromPoint(s2.Point{Vector: v})
		out = append(out, FromCartographic(Cartographic{Lon: ll.Lng, Lat: ll.Lat, Height: c.Height}))
	}
	return out
}
