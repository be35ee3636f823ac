package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/membrane/internal/osmo"
)

const (
	DefaultRadiusUm     = 12.0
	DefaultGradient     = 0.5
	DefaultTemperatureC = 25.0
	DefaultCapacity     = 600
	DefaultDt           = 1.0 / 60.0
	DefaultDuration     = 10.0
	DefaultWindow       = 1.0
	DefaultRegime       = "biased"
	DefaultFormula      = "surface"
)

type Config struct {
	RadiusUm     float64 `yaml:"radius_um"`
	Gradient     float64 `yaml:"gradient"`
	TemperatureC float64 `yaml:"temperature_c"`
	Capacity     int     `yaml:"capacity"`
	Dt           float64 `yaml:"dt"`
	Duration     float64 `yaml:"duration"`
	Seed         int64   `yaml:"seed"`
	Window       float64 `yaml:"window"`
	Regime       string  `yaml:"regime"`
	Formula      string  `yaml:"formula"`
}

func DefaultConfig() *Config {
	return &Config{
		RadiusUm:     DefaultRadiusUm,
		Gradient:     DefaultGradient,
		TemperatureC: DefaultTemperatureC,
		Capacity:     DefaultCapacity,
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		Window:       DefaultWindow,
		Regime:       DefaultRegime,
		Formula:      DefaultFormula,
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

// Params returns the membrane parameter snapshot for the engine. The
// engine clamps again on Configure; this keeps config files honest too.
func (c *Config) Params() osmo.Params {
	return osmo.Params{
		RadiusUm:     c.RadiusUm,
		Gradient:     c.Gradient,
		TemperatureC: c.TemperatureC,
	}.Clamped()
}
