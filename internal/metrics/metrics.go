package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PrimitiveRebuilds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geofence_primitive_rebuilds_total",
		Help: "Renderer geometry rebuilds by shape kind",
	}, []string{"kind"})
	FencesCommitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geofence_fences_committed_total",
		Help: "Geofences committed by kind",
	}, []string{"kind"})
	ChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geofence_checks_total",
		Help: "Checking point evaluations by result",
	}, []string{"result"})
	FramesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geofence_frames_total",
		Help: "Rendered frames",
	})
)

func init() {
	prometheus.MustRegister(PrimitiveRebuilds)
	prometheus.MustRegister(FencesCommitted)
	prometheus.MustRegister(ChecksTotal)
	prometheus.MustRegister(FramesTotal)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
