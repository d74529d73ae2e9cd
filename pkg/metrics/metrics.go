// Package metrics exposes Prometheus metrics for conversion runs.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// File outcome labels.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
)

// Metrics holds all Prometheus metrics for the conversion pipeline.
type Metrics struct {
	filesTotal   *prometheus.CounterVec
	fileDuration prometheus.Histogram
	framesTotal  prometheus.Counter
	rowsTotal    prometheus.Counter
	bytesMapped  prometheus.Counter
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Default returns the process-wide metrics instance. Collectors can only be
// registered once per process, so every pipeline shares it.
func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = newMetrics()
	})
	return defaultMetrics
}

func newMetrics() *Metrics {
	return &Metrics{
		filesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vhr_files_total",
				Help: "Total number of input files handled, by outcome",
			},
			[]string{"status"},
		),

		fileDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vhr_file_duration_seconds",
				Help:    "Time spent converting a single input file",
				Buckets: prometheus.DefBuckets,
			},
		),

		framesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vhr_frames_extracted_total",
				Help: "Total number of bus frames extracted from containers",
			},
		),

		rowsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vhr_rows_decoded_total",
				Help: "Total number of rows produced by the frame decoder",
			},
		),

		bytesMapped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vhr_bytes_mapped_total",
				Help: "Total bytes of input memory-mapped for extraction",
			},
		),
	}
}

// RecordFile records one completed file with its outcome and duration.
func (m *Metrics) RecordFile(status string, duration time.Duration) {
	m.filesTotal.WithLabelValues(status).Inc()
	if status != StatusSkipped {
		m.fileDuration.Observe(duration.Seconds())
	}
}

// AddFrames adds to the extracted-frame count.
func (m *Metrics) AddFrames(n int) {
	m.framesTotal.Add(float64(n))
}

// AddRows adds to the decoded-row count.
func (m *Metrics) AddRows(n int) {
	m.rowsTotal.Add(float64(n))
}

// AddBytesMapped adds to the mapped-input byte count.
func (m *Metrics) AddBytesMapped(n int) {
	m.bytesMapped.Add(float64(n))
}
