package draw

import (
	"geofence/internal/fence"
	"geofence/internal/geom"
	"geofence/internal/metrics"
	"geofence/internal/scene"
)

const (
	insideText  = "inside geofence"
	outsideText = "outside geofence"
)

// CheckResult is the outcome of one checking point query.
type CheckResult struct {
	Position geom.Position
	Inside   bool
	Matches  []fence.Fence
}

// Check tests p against every committed fence and moves the checking marker
// there, blue when inside any fence and red otherwise.
func (s *Session) Check(p geom.Position) CheckResult {
	res := s.evaluate(p)
	c, text := scene.Red, outsideText
	if res.Inside {
		c, text = scene.Blue, insideText
	}
	s.checkPoint.Show = true
	s.checkPoint.Position = p
	s.checkPoint.Color = c
	s.checkLabel.Show = true
	s.checkLabel.Position = p
	s.checkLabel.Text = text
	s.checkLabel.Color = c
	s.lastCheck = &res

	names := make([]string, len(res.Matches))
	for i, f := range res.Matches {
		names[i] = f.Name()
	}
	s.log.Info("checking point", "inside", res.Inside, "matches", names)
	return res
}

func (s *Session) evaluate(p geom.Position) CheckResult {
	matches := s.store.Check(p)
	res := CheckResult{Position: p, Inside: len(matches) > 0, Matches: matches}
	result := "outside"
	if res.Inside {
		result = "inside"
	}
	metrics.ChecksTotal.WithLabelValues(result).Inc()
	return res
}

// LastCheck returns the most recent checking point result.
func (s *Session) LastCheck() (CheckResult, bool) {
	if s.lastCheck == nil {
		return CheckResult{}, false
	}
	return *s.lastCheck, true
}

// CheckAll tests a batch of probe points, replacing the previous batch's
// markers with blue or red dots.
func (s *Session) CheckAll(points []geom.Position) (inside, outside int) {
	s.probes.RemoveAll()
	for _, p := range points {
		res := s.evaluate(p)
		c := scene.Red
		if res.Inside {
			c = scene.Blue
			inside++
		} else {
			outside++
		}
		s.probes.Add(scene.Point{Show: true, Position: p, Color: c, Glyph: '•'})
	}
	s.log.Info("probe batch checked", "inside", inside, "outside", outside)
	return inside, outside
}

// ClearProbes removes the probe markers.
func (s *Session) ClearProbes() { s.probes.RemoveAll() }
