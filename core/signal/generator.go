// Package signal synthesizes labeled PMU-style readings: clean waveforms,
// single-sample spikes, and sustained amplitude drifts with known ground truth.
package signal

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/maelc07/gridsig/core/model"
)

// IEEE C37.118-style constants (per unit, 50 Hz nominal).
const (
	NominalVoltage    = 1.0  // per unit
	NominalFrequency  = 50.0 // Hz
	SamplingRate      = 50.0 // samples per second
	SamplesPerReading = 50
)

const (
	phaseOffset   = math.Pi / 4
	freqNoiseStd  = 0.01 // Hz
	spikeMin      = 1.3  // pu
	spikeMax      = 1.5  // pu
	spikeHighOver = 1.4  // pu, spikes above this are graded high
	trendEndLevel = 1.2  // pu, envelope target at the last sample
)

// Batch composition: the point share is rounded, the trend bucket absorbs the
// remainder so the total is always exact.
const (
	normalShare = 0.40
	pointShare  = 0.35
)

// Generator produces synthetic readings from a single seedable random stream.
// It is not safe for concurrent use; create one Generator per goroutine.
type Generator struct {
	rng   *rand.Rand
	noise distuv.Normal
	spike distuv.Uniform
}

// New returns a Generator seeded for reproducible output.
func New(seed uint64) *Generator {
	return NewFromSource(rand.NewSource(seed))
}

// NewFromSource returns a Generator drawing all randomness (frequency noise,
// spike placement and magnitude, batch shuffling) from src.
func NewFromSource(src rand.Source) *Generator {
	rng := rand.New(src)
	return &Generator{
		rng:   rng,
		noise: distuv.Normal{Mu: 0, Sigma: freqNoiseStd, Src: rng},
		spike: distuv.Uniform{Min: spikeMin, Max: spikeMax, Src: rng},
	}
}

// baseWave is the nominal one-cycle sine all readings start from.
func baseWave() []float64 {
	v := make([]float64, SamplesPerReading)
	for i := range v {
		t := float64(i) / SamplingRate
		v[i] = NominalVoltage * math.Sin(2*math.Pi*NominalFrequency*t+phaseOffset)
	}
	return v
}

func (g *Generator) noisyFrequency() []float64 {
	f := make([]float64, SamplesPerReading)
	for i := range f {
		f[i] = NominalFrequency + g.noise.Rand()
	}
	return f
}

// Normal returns a clean reading: nominal sine voltage and lightly noisy
// frequency, no anomaly.
func (g *Generator) Normal() model.Reading {
	return model.Reading{
		Voltage:     baseWave(),
		Frequency:   g.noisyFrequency(),
		AnomalyType: model.AnomalyNone,
		Severity:    model.SeverityNone,
	}
}

// PointAnomaly returns a reading with exactly one sample overwritten by a
// spike in [1.3, 1.5) pu. Spikes above 1.4 pu are graded high, others medium.
func (g *Generator) PointAnomaly() model.Reading {
	v := baseWave()
	mag := g.spike.Rand()
	v[g.rng.Intn(SamplesPerReading)] = mag

	sev := model.SeverityMedium
	if mag > spikeHighOver {
		sev = model.SeverityHigh
	}
	return model.Reading{
		Voltage:     v,
		Frequency:   g.noisyFrequency(),
		AnomalyType: model.AnomalyPoint,
		Severity:    sev,
	}
}

// TrendAnomaly returns a reading whose amplitude envelope ramps linearly from
// 1.0 pu to 1.2 pu across the window, a sustained drift rather than a spike.
func (g *Generator) TrendAnomaly() model.Reading {
	v := baseWave()
	step := (trendEndLevel - NominalVoltage) / float64(SamplesPerReading-1)
	for i := range v {
		v[i] *= NominalVoltage + step*float64(i)
	}
	return model.Reading{
		Voltage:     v,
		Frequency:   g.noisyFrequency(),
		AnomalyType: model.AnomalyTrend,
		Severity:    model.SeverityMedium,
	}
}

// Batch returns exactly n readings mixed ~40% normal, ~35% point and the
// remainder trend, in randomized order. n <= 0 yields an empty batch.
func (g *Generator) Batch(n int) []model.Reading {
	if n <= 0 {
		return nil
	}
	nNormal := int(math.Round(normalShare * float64(n)))
	nPoint := int(math.Round(pointShare * float64(n)))
	nTrend := n - nNormal - nPoint

	readings := make([]model.Reading, 0, n)
	for i := 0; i < nNormal; i++ {
		readings = append(readings, g.Normal())
	}
	for i := 0; i < nPoint; i++ {
		readings = append(readings, g.PointAnomaly())
	}
	for i := 0; i < nTrend; i++ {
		readings = append(readings, g.TrendAnomaly())
	}
	g.rng.Shuffle(len(readings), func(i, j int) {
		readings[i], readings[j] = readings[j], readings[i]
	})
	return readings
}
