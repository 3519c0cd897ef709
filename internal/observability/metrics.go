package observability

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kjstillabower/environment-data-generator/internal/models"
)

var (
	registry *prometheus.Registry

	// Records produced per location. Watch for: a location missing from the last run.
	RecordsGeneratedTotal *prometheus.CounterVec

	// Wall time of one Generate call.
	GenerationDuration prometheus.Histogram

	// Distribution of generated composite index values. Watch for: shifts after sampling-range changes.
	CompositeIndexValue prometheus.Histogram

	// Size of the last CSV written.
	OutputBytes prometheus.Gauge

	// Unix time of the last run that wrote its file. Watch for: staleness in downstream fixtures.
	LastSuccessTimestamp prometheus.Gauge
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	RecordsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recordsGeneratedTotal",
			Help: "Total number of synthetic records generated",
		},
		[]string{"location"},
	)
	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generationDurationSeconds",
			Help:    "Dataset generation latency in seconds (per run)",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)
	CompositeIndexValue = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compositeIndexValue",
			Help:    "Composite index of generated records",
			Buckets: []float64{25, 50, 75, 100, 150},
		},
	)
	OutputBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "outputBytes",
			Help: "Size in bytes of the last CSV written",
		},
	)
	LastSuccessTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lastSuccessTimestampSeconds",
			Help: "Unix time of the last successful run",
		},
	)

	registry.MustRegister(
		RecordsGeneratedTotal, GenerationDuration, CompositeIndexValue,
		OutputBytes, LastSuccessTimestamp,
	)
}

// RecordGeneration records the records in ds and how long generating them took.
func RecordGeneration(ds models.Dataset, elapsed time.Duration) {
	GenerationDuration.Observe(elapsed.Seconds())
	for _, r := range ds {
		RecordsGeneratedTotal.WithLabelValues(r.Location).Inc()
		CompositeIndexValue.Observe(float64(r.CompositeIndex))
	}
}

// RecordOutput records a completed file write.
func RecordOutput(bytes int64, at time.Time) {
	OutputBytes.Set(float64(bytes))
	LastSuccessTimestamp.Set(float64(at.Unix()))
}

// WriteMetricsTextfile writes the registry in Prometheus text format to path, for a
// node_exporter textfile collector. The parent directory is created if absent.
func WriteMetricsTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
