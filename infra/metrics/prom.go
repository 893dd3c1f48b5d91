package metrics

import (
	coremetrics "github.com/maelc07/gridsig/core/metrics"
	"github.com/maelc07/gridsig/core/model"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records pipeline events in Prometheus metrics.
type PromSink struct {
	readings    *prometheus.CounterVec
	extractions *prometheus.HistogramVec
	batchSize   prometheus.Gauge
}

// NewPromSink registers pipeline metrics on the default Prometheus
// registerer. The scrape server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	readings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gridsig_readings_generated_total",
		Help: "Total number of synthetic readings generated",
	}, []string{"anomaly_type", "severity"})
	extractions := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gridsig_extraction_duration_seconds",
		Help:    "Time spent extracting features from one reading",
		Buckets: prometheus.DefBuckets,
	}, []string{"anomaly_type"})
	batchSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gridsig_batch_size",
		Help: "Size of the most recently generated batch",
	})

	if err := reg.Register(readings); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			readings = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(extractions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			extractions = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(batchSize); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			batchSize = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{readings: readings, extractions: extractions, batchSize: batchSize}, nil
}

// RecordReading increments the generation counter for the reading's labels.
func (s *PromSink) RecordReading(anomaly model.AnomalyType, severity model.Severity) error {
	s.readings.WithLabelValues(string(anomaly), string(severity)).Inc()
	return nil
}

// RecordExtraction observes the extraction duration histogram.
func (s *PromSink) RecordExtraction(ev coremetrics.ExtractionEvent) error {
	s.extractions.WithLabelValues(string(ev.Features.AnomalyType)).Observe(ev.Duration.Seconds())
	return nil
}

// RecordBatchSize sets the gauge to the size of the latest batch.
func (s *PromSink) RecordBatchSize(n int) error {
	if s.batchSize != nil {
		s.batchSize.Set(float64(n))
	}
	return nil
}
