package config

import "sort"

// Presets are named slider scenarios. Values outside the engine's clamp
// ranges are normalized on use.
var Presets = map[string]*Config{
	"isotonic": {
		RadiusUm: 12, Gradient: 0.5, TemperatureC: 25,
		Capacity: DefaultCapacity, Dt: DefaultDt, Duration: 20,
		Window: DefaultWindow, Regime: "biased", Formula: "surface",
	},
	"hypotonic": {
		RadiusUm: 12, Gradient: 0.85, TemperatureC: 25,
		Capacity: DefaultCapacity, Dt: DefaultDt, Duration: 20,
		Window: DefaultWindow, Regime: "biased", Formula: "surface",
	},
	"hypertonic": {
		RadiusUm: 12, Gradient: 0.15, TemperatureC: 25,
		Capacity: DefaultCapacity, Dt: DefaultDt, Duration: 20,
		Window: DefaultWindow, Regime: "biased", Formula: "surface",
	},
	"fever": {
		RadiusUm: 12, Gradient: 0.6, TemperatureC: 40,
		Capacity: DefaultCapacity, Dt: DefaultDt, Duration: 15,
		Window: DefaultWindow, Regime: "biased", Formula: "relaxation",
	},
	"cold": {
		RadiusUm: 12, Gradient: 0.6, TemperatureC: 4,
		Capacity: DefaultCapacity, Dt: DefaultDt, Duration: 30,
		Window: DefaultWindow, Regime: "biased", Formula: "relaxation",
	},
	"giant": {
		RadiusUm: 28, Gradient: 0.5, TemperatureC: 25,
		Capacity: DefaultCapacity, Dt: DefaultDt, Duration: 30,
		Window: DefaultWindow, Regime: "biased", Formula: "surface",
	},
	"leaky": {
		RadiusUm: 12, Gradient: 0.5, TemperatureC: 25,
		Capacity: DefaultCapacity, Dt: DefaultDt, Duration: 20,
		Window: DefaultWindow, Regime: "porous", Formula: "surface",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *cfg
	return &clone
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
