// Package telemetry defines the Prometheus collectors of the apply
// service.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors the HTTP adapter records into.
type Metrics struct {
	AppliesTotal  *prometheus.CounterVec
	ApplyDuration *prometheus.HistogramVec
	RowsOut       prometheus.Counter
}

// New registers and returns the service collectors.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AppliesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "espalier",
				Name:      "applies_total",
				Help:      "Recipe apply calls, by recipe ID and result.",
			},
			[]string{"recipe", "result"},
		),
		ApplyDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "espalier",
				Name:      "apply_duration_seconds",
				Help:      "Time spent applying a fitted recipe.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"recipe"},
		),
		RowsOut: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "espalier",
				Name:      "rows_transformed_total",
				Help:      "Rows emitted by apply calls.",
			},
		),
	}
	reg.MustRegister(m.AppliesTotal, m.ApplyDuration, m.RowsOut)
	return m
}
