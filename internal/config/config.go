package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/forestlab/internal/experiment"
	"github.com/san-kum/forestlab/internal/sample"
)

const (
	DefaultN         = 1000
	DefaultC0        = 10.0
	DefaultGridStart = 1.0
	DefaultGridStop  = 300.0
	DefaultGridCount = 300
	DefaultCV        = 0.1
)

type Config struct {
	Model      string  `yaml:"model"`
	Integrator string  `yaml:"integrator"`
	Metric     string  `yaml:"metric"`
	Target     float64 `yaml:"target"`

	N     int    `yaml:"n"`
	Seed  uint64 `yaml:"seed"`
	NBoot int    `yaml:"nboot"`

	C0   float64    `yaml:"c0"`
	Grid GridConfig `yaml:"grid"`

	Params  []ParamConfig `yaml:"params"`
	Workers int           `yaml:"workers"`
}

type GridConfig struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Count int     `yaml:"count"`
}

type ParamConfig struct {
	Name   string  `yaml:"name"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std"`
}

// DefaultConfig is the reference scenario: the two-regime growth model
// with 10% coefficient of variation on every marginal and the maximum
// carbon stock as output metric.
func DefaultConfig() *Config {
	return &Config{
		Model:      "growth",
		Integrator: "rk45",
		Metric:     "max",
		N:          DefaultN,
		Seed:       42,
		C0:         DefaultC0,
		Grid: GridConfig{
			Start: DefaultGridStart,
			Stop:  DefaultGridStop,
			Count: DefaultGridCount,
		},
		Params: []ParamConfig{
			{Name: "r", Mean: 0.01, StdDev: 0.01 * DefaultCV},
			{Name: "g", Mean: 2.0, StdDev: 2.0 * DefaultCV},
			{Name: "K", Mean: 250.0, StdDev: 250.0 * DefaultCV},
			{Name: "threshold", Mean: 50.0, StdDev: 50.0 * DefaultCV},
		},
	}
}

// Clone returns an independent copy, so callers can override fields
// without mutating shared configs such as the preset map entries.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = append([]ParamConfig(nil), c.Params...)
	return &out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Scenario maps the file-level config onto the experiment boundary.
func (c *Config) Scenario() experiment.Scenario {
	marginals := make([]sample.Marginal, len(c.Params))
	for i, p := range c.Params {
		marginals[i] = sample.Marginal{Name: p.Name, Mean: p.Mean, StdDev: p.StdDev}
	}
	return experiment.Scenario{
		Model:        c.Model,
		Integrator:   c.Integrator,
		Metric:       c.Metric,
		MetricTarget: c.Target,
		N:            c.N,
		Seed:         c.Seed,
		NBoot:        c.NBoot,
		C0:           c.C0,
		GridStart:    c.Grid.Start,
		GridStop:     c.Grid.Stop,
		GridCount:    c.Grid.Count,
		Marginals:    marginals,
		Workers:      c.Workers,
	}
}
