package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/maelc07/gridsig/core/feature"
	"github.com/maelc07/gridsig/core/metrics"
)

type Config struct {
	Simulator SimulatorConfig `json:"simulator"`
	Extractor feature.Config  `json:"extractor"`
	Metrics   metrics.Config  `json:"metrics"`
	Logging   LoggingConfig   `json:"logging"`
}

// SimulatorConfig controls batch generation.
type SimulatorConfig struct {
	// Seed makes generation reproducible; 0 picks a time-based seed.
	Seed uint64 `json:"seed"`
	// BatchSize is the default number of readings per run.
	BatchSize int `json:"batch_size"`
}

// SetDefaults applies sane defaults.
func (c *SimulatorConfig) SetDefaults() {
	if c.BatchSize == 0 {
		c.BatchSize = 10
	}
}

// Validate checks mandatory fields.
func (c SimulatorConfig) Validate() error {
	if c.BatchSize < 0 {
		return fmt.Errorf("batch_size must be >= 0, got %d", c.BatchSize)
	}
	return nil
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("GRIDSIG_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "gridsig_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Simulator.SetDefaults()
	cfg.Extractor.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Simulator.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.Simulator.SetDefaults()
	cfg.Extractor.SetDefaults()
	cfg.Logging.SetDefaults()
	return cfg
}
