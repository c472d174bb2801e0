package tui

import "geofence/internal/geom"

func testPos(lon, lat float64) geom.Position { return geom.FromDegrees(lon, lat, 0) }

func hasBraille(s string) bool {
	for _, r := range s {
		if r > 0x2800 && r <= 0x28FF {
			return true
		}
	}
	return false
}
