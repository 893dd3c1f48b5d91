// Package app wires the signal generator, feature extractor, metrics, and
// event feed into a runnable pipeline.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maelc07/gridsig/config"
	"github.com/maelc07/gridsig/core/feature"
	coremetrics "github.com/maelc07/gridsig/core/metrics"
	"github.com/maelc07/gridsig/core/model"
	"github.com/maelc07/gridsig/core/signal"
	"github.com/maelc07/gridsig/infra/logger"
	"github.com/maelc07/gridsig/infra/metrics"
	"github.com/maelc07/gridsig/internal/eventbus"
)

// Service runs the generate-extract pipeline and publishes the resulting
// feature vectors to subscribed collaborators.
type Service struct {
	gen  *signal.Generator
	ext  *feature.Extractor
	sink coremetrics.Sink
	feed *eventbus.Bus[model.FeatureVector]
	log  logger.Logger

	batchSize int
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	if err := cfg.Logging.Apply(); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var sink coremetrics.Sink = coremetrics.NopSink{}
	if cfg.Metrics.PrometheusEnabled {
		s, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = s
		go func() {
			if err := metrics.StartServer(cfg.Metrics.PrometheusPort); err != nil {
				logg.Errorf("metrics server: %v", err)
			}
		}()
	}

	seed := cfg.Simulator.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Service{
		gen:       signal.New(seed),
		ext:       feature.New(cfg.Extractor, feature.WithSink(sink)),
		sink:      sink,
		feed:      eventbus.New[model.FeatureVector](),
		log:       logg,
		batchSize: cfg.Simulator.BatchSize,
	}, nil
}

// Subscribe returns a channel receiving every feature vector the pipeline
// produces. Slow subscribers drop events rather than stalling a run.
func (s *Service) Subscribe() <-chan model.FeatureVector {
	return s.feed.Subscribe()
}

// Run generates a batch of n readings (the configured batch size when n <= 0),
// extracts their features in parallel, publishes each vector on the feed, and
// returns them in batch order.
func (s *Service) Run(ctx context.Context, n int) ([]model.FeatureVector, error) {
	if n <= 0 {
		n = s.batchSize
	}
	runID := uuid.NewString()
	s.log.Infof("run %s: generating %d readings", runID, n)

	readings := s.gen.Batch(n)
	if err := s.sink.RecordBatchSize(len(readings)); err != nil {
		s.log.Warnf("run %s: record batch size: %v", runID, err)
	}
	for _, r := range readings {
		if err := s.sink.RecordReading(r.AnomalyType, r.Severity); err != nil {
			s.log.Warnf("run %s: record reading: %v", runID, err)
		}
	}

	start := time.Now()
	features, err := s.ext.ExtractBatch(ctx, readings)
	if err != nil {
		return nil, fmt.Errorf("run %s: extract batch: %w", runID, err)
	}
	for _, fv := range features {
		s.feed.Publish(fv)
	}
	s.log.Infof("run %s: extracted %d feature vectors in %s", runID, len(features), time.Since(start))
	return features, nil
}

// Close shuts down the feed, closing all subscriber channels.
func (s *Service) Close() error {
	s.feed.Close()
	return nil
}
