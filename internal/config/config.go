package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIntegrand = "exp"
	DefaultA         = 0.0
	DefaultB         = 1.0
	DefaultPanels    = 10_000_000
	DefaultStartN    = 4
	DefaultLevels    = 8
)

type Config struct {
	Integrand   string             `yaml:"integrand"`
	A           float64            `yaml:"a"`
	B           float64            `yaml:"b"`
	N           int                `yaml:"n"`
	Params      map[string]float64 `yaml:"params,omitempty"`
	Convergence ConvergenceConfig  `yaml:"convergence"`
}

type ConvergenceConfig struct {
	StartN int `yaml:"start_n"`
	Levels int `yaml:"levels"`
}

// DefaultConfig is the reference demonstration: e^x over [0, 1] with ten
// million panels.
func DefaultConfig() *Config {
	return &Config{
		Integrand: DefaultIntegrand,
		A:         DefaultA,
		B:         DefaultB,
		N:         DefaultPanels,
		Convergence: ConvergenceConfig{
			StartN: DefaultStartN,
			Levels: DefaultLevels,
		},
	}
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

// Validate reports the first setting that would make an integration call
// fail its preconditions.
func (c *Config) Validate() error {
	if c.Integrand == "" {
		return fmt.Errorf("config: integrand is required")
	}
	if math.IsNaN(c.A) || math.IsInf(c.A, 0) || math.IsNaN(c.B) || math.IsInf(c.B, 0) {
		return fmt.Errorf("config: bounds must be finite (a=%g, b=%g)", c.A, c.B)
	}
	if c.N < 1 {
		return fmt.Errorf("config: n must be at least 1, got %d", c.N)
	}
	if c.Convergence.StartN < 1 {
		return fmt.Errorf("config: convergence.start_n must be at least 1, got %d", c.Convergence.StartN)
	}
	if c.Convergence.Levels < 1 {
		return fmt.Errorf("config: convergence.levels must be at least 1, got %d", c.Convergence.Levels)
	}
	return nil
}

func (c *Config) Clone() *Config {
	cp := *c
	if c.Params != nil {
		cp.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			cp.Params[k] = v
		}
	}
	return &cp
}
