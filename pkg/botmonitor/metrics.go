package botmonitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evo_relay",
		Name:      "events_total",
		Help:      "Relay processing stages by outcome.",
	}, []string{"stage", "status"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "evo_relay",
		Name:      "stage_duration_seconds",
		Help:      "Duration of outbound relay stages (reply, forward).",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})
)

func observe(e Event) {
	eventsTotal.WithLabelValues(e.Stage, e.Status).Inc()
	if e.Stage != StageInbound && e.Status != StatusSkipped {
		stageDuration.WithLabelValues(e.Stage).Observe(float64(e.DurationMs) / 1000)
	}
}
