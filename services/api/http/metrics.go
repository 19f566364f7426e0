package http

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/02loveslollipop/polar-ec-dashboard/internal/dataset"
	"github.com/02loveslollipop/polar-ec-dashboard/internal/log"
)

type metrics struct {
	registry *prometheus.Registry
	loads    *prometheus.CounterVec
	duration prometheus.Histogram
	records  *prometheus.GaugeVec
	warnings prometheus.Gauge
}

func newMetrics(reg *prometheus.Registry) *metrics {
	m := &metrics{
		registry: reg,
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecdash_dataset_loads_total",
			Help: "Dataset loads by outcome (ok or the fatal error kind).",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ecdash_dataset_load_duration_seconds",
			Help:    "Time spent reading and parsing the data directory.",
			Buckets: prometheus.DefBuckets,
		}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ecdash_dataset_records",
			Help: "Rows in the most recently loaded dataset.",
		}, []string{"table"}),
		warnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ecdash_dataset_warnings",
			Help: "Warnings reported by the most recent load.",
		}),
	}
	reg.MustRegister(m.loads, m.duration, m.records, m.warnings)
	return m
}

func (s *Server) observeLoad(elapsed time.Duration, snap dataset.Snapshot, err error) {
	s.metrics.duration.Observe(elapsed.Seconds())

	if err != nil {
		result := "error"
		var loadErr *dataset.LoadError
		if errors.As(err, &loadErr) {
			result = string(loadErr.Kind)
		}
		s.metrics.loads.WithLabelValues(result).Inc()
		log.Errorw("dataset load failed", "dir", s.cache.Dir(), "error", err)
		return
	}

	s.metrics.loads.WithLabelValues("ok").Inc()
	s.metrics.records.WithLabelValues("environment").Set(float64(len(snap.Dataset.Environment)))
	s.metrics.records.WithLabelValues("growth").Set(float64(len(snap.Dataset.Growth)))
	s.metrics.warnings.Set(float64(len(snap.Warnings)))

	log.Infow("dataset loaded",
		"dir", s.cache.Dir(),
		"environment_rows", len(snap.Dataset.Environment),
		"growth_rows", len(snap.Dataset.Growth),
		"warnings", len(snap.Warnings),
		"duration_ms", elapsed.Milliseconds(),
	)
	for _, w := range snap.Warnings {
		log.Warnw("dataset warning", "kind", w.Kind, "condition", w.Condition, "message", w.Message)
	}
}
