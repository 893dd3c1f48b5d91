package metrics

import (
	"time"

	"github.com/maelc07/gridsig/core/model"
)

// Config selects the metrics backends.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
}

// ExtractionEvent captures one reading's trip through the feature pipeline.
type ExtractionEvent struct {
	Features model.FeatureVector
	Duration time.Duration
}

// Sink records pipeline events for observability purposes.
type Sink interface {
	// RecordReading counts a generated reading by its ground-truth labels.
	RecordReading(anomaly model.AnomalyType, severity model.Severity) error
	// RecordExtraction records a completed feature extraction.
	RecordExtraction(ev ExtractionEvent) error
	// RecordBatchSize sets the size of the most recent batch.
	RecordBatchSize(n int) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordReading(model.AnomalyType, model.Severity) error { return nil }
func (NopSink) RecordExtraction(ExtractionEvent) error                { return nil }
func (NopSink) RecordBatchSize(int) error                             { return nil }
