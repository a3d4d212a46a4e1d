// Package metrics instruments polytope constructions with Prometheus
// collectors on a private registry.
package metrics

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Recorder holds the construction metrics.
type Recorder struct {
	Constructions *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	GroupOrder    prometheus.Gauge
	Elements      *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewRecorder registers every collector on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		Constructions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polytope_constructions_total",
				Help: "Constructions by operation and result",
			},
			[]string{"op", "result"},
		),
		Duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polytope_construction_seconds",
				Help:    "Construction time in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"op"},
		),
		GroupOrder: f.NewGauge(prometheus.GaugeOpts{
			Name: "polytope_group_order",
			Help: "Order of the last generated reflection group",
		}),
		Elements: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "polytope_elements",
				Help: "Element counts of the last constructed polytope by rank",
			},
			[]string{"rank"},
		),
		registry: reg,
	}
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Observe records one construction of op that took d and failed when err
// is non-nil.
func (r *Recorder) Observe(op string, d time.Duration, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.Constructions.WithLabelValues(op, result).Inc()
	r.Duration.WithLabelValues(op).Observe(d.Seconds())
}

// Track runs fn as op and records it.
func (r *Recorder) Track(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.Observe(op, time.Since(start), err)

	return err
}

// SetCounts replaces the element gauges with counts[k] for rank k.
func (r *Recorder) SetCounts(counts []int) {
	r.Elements.Reset()
	for k, n := range counts {
		r.Elements.WithLabelValues(strconv.Itoa(k)).Set(float64(n))
	}
}

// Dump writes every metric in the text exposition format.
func (r *Recorder) Dump(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics.Dump: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err = enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics.Dump: %w", err)
		}
	}

	return nil
}
