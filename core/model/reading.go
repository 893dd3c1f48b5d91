package model

import "fmt"

// AnomalyType labels the ground-truth fault class injected into a reading.
type AnomalyType string

const (
	AnomalyNone  AnomalyType = "none"
	AnomalyPoint AnomalyType = "point"
	AnomalyTrend AnomalyType = "trend"
)

// Severity grades how pronounced an injected anomaly is.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Reading is a single PMU-style measurement window: one voltage waveform and
// one frequency trace of equal length, plus the ground truth used to label it.
// Readings are write-once; consumers must not mutate the sample slices.
type Reading struct {
	Voltage     []float64   `json:"voltage"`
	Frequency   []float64   `json:"frequency"`
	AnomalyType AnomalyType `json:"anomaly_type"`
	Severity    Severity    `json:"severity"`
}

// Validate checks the structural invariant shared by all readings.
func (r Reading) Validate() error {
	if len(r.Voltage) != len(r.Frequency) {
		return fmt.Errorf("reading: voltage has %d samples, frequency has %d", len(r.Voltage), len(r.Frequency))
	}
	return nil
}

// FeatureVector is the compact diagnostic summary derived from a Reading.
// Numeric fields are rounded to 4 decimals and are never negative; the
// ground-truth labels are carried through unchanged.
type FeatureVector struct {
	RMSVoltage           float64     `json:"rms_voltage"`
	THDPercent           float64     `json:"thd_percent"`
	FrequencyDeviationHz float64     `json:"frequency_deviation_hz"`
	PeakVoltage          float64     `json:"peak_voltage"`
	AnomalyType          AnomalyType `json:"anomaly_type"`
	Severity             Severity    `json:"severity"`
}
