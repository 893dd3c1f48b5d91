// Package feature converts raw readings into compact, numerically stable
// feature vectors suitable for threshold-based or learned anomaly scoring.
package feature

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/maelc07/gridsig/core/dsp"
	"github.com/maelc07/gridsig/core/metrics"
	"github.com/maelc07/gridsig/core/model"
)

// Config holds the extraction parameters.
type Config struct {
	// LowCutHz and HighCutHz bound the bandpass used for peak detection.
	LowCutHz  float64 `json:"low_cut_hz"`
	HighCutHz float64 `json:"high_cut_hz"`
	// FilterOrder is the Butterworth order of the bandpass.
	FilterOrder int `json:"filter_order"`
	// SampleRateHz is the sampling rate of incoming waveforms.
	SampleRateHz float64 `json:"sample_rate_hz"`
	// FundamentalHz is the nominal grid frequency used for THD and the
	// frequency-deviation reference.
	FundamentalHz float64 `json:"fundamental_hz"`
	// Workers bounds the goroutines used by ExtractBatch.
	Workers int `json:"workers"`
}

// SetDefaults applies the nominal PMU parameters.
func (c *Config) SetDefaults() {
	if c.LowCutHz == 0 {
		c.LowCutHz = 45
	}
	if c.HighCutHz == 0 {
		c.HighCutHz = 55
	}
	if c.FilterOrder == 0 {
		c.FilterOrder = 3
	}
	if c.SampleRateHz == 0 {
		c.SampleRateHz = 50
	}
	if c.FundamentalHz == 0 {
		c.FundamentalHz = 50
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// DefaultConfig returns the nominal PMU extraction parameters.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// Extractor derives feature vectors from readings. Extraction is a pure
// function of its input, so one Extractor is safe for concurrent use.
type Extractor struct {
	cfg  Config
	sink metrics.Sink
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithSink records an ExtractionEvent per processed reading.
func WithSink(s metrics.Sink) Option {
	return func(e *Extractor) { e.sink = s }
}

// New returns an Extractor for the given parameters.
func New(cfg Config, opts ...Option) *Extractor {
	e := &Extractor{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract computes the feature vector for a single reading. RMS and THD are
// measured on the raw voltage: over a one-cycle window the bandpass would
// attenuate the signal to near zero, so only peak detection uses the filtered
// trace. All numeric outputs are rounded to 4 decimals.
func (e *Extractor) Extract(r model.Reading) model.FeatureVector {
	start := time.Now()
	filtered, _ := dsp.Bandpass(r.Voltage, e.cfg.LowCutHz, e.cfg.HighCutHz, e.cfg.SampleRateHz, e.cfg.FilterOrder)
	fv := model.FeatureVector{
		RMSVoltage:           round4(dsp.RMS(r.Voltage)),
		THDPercent:           round4(dsp.THD(r.Voltage, e.cfg.SampleRateHz, e.cfg.FundamentalHz)),
		FrequencyDeviationHz: round4(dsp.FrequencyDeviation(r.Frequency, e.cfg.FundamentalHz)),
		PeakVoltage:          round4(dsp.MaxAbs(filtered)),
		AnomalyType:          r.AnomalyType,
		Severity:             r.Severity,
	}
	if e.sink != nil {
		_ = e.sink.RecordExtraction(metrics.ExtractionEvent{Features: fv, Duration: time.Since(start)})
	}
	return fv
}

// ExtractBatch runs Extract over the readings on a bounded worker pool and
// returns the results index-aligned with the input. Readings carry no
// cross-dependencies, so workers need no coordination beyond the job feed.
// A cancelled context stops scheduling and returns the context error.
func (e *Extractor) ExtractBatch(ctx context.Context, readings []model.Reading) ([]model.FeatureVector, error) {
	out := make([]model.FeatureVector, len(readings))
	if len(readings) == 0 {
		return out, nil
	}
	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(readings) {
		workers = len(readings)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = e.Extract(readings[i])
			}
		}()
	}

	var err error
feed:
	for i := range readings {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, err
	}
	return out, nil
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
