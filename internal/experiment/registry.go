package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/membrane/internal/engine"
	"github.com/san-kum/membrane/internal/flux"
	"github.com/san-kum/membrane/internal/metrics"
)

// Registry maps names to permeability regimes and analytic flux
// formulas, so CLI flags and config files can select them by string.
type Registry struct {
	regimes  map[string]func() engine.Permeability
	formulas map[string]func() flux.Formula
}

func NewRegistry() *Registry {
	r := &Registry{
		regimes:  make(map[string]func() engine.Permeability),
		formulas: make(map[string]func() flux.Formula),
	}

	r.regimes["biased"] = func() engine.Permeability { return engine.NewBiased() }
	r.regimes["porous"] = func() engine.Permeability { return engine.NewPorous() }

	r.formulas["surface"] = func() flux.Formula { return flux.NewSurfaceRate() }
	r.formulas["relaxation"] = func() flux.Formula { return flux.NewRelaxationRate() }

	return r
}

func (r *Registry) GetRegime(name string) (engine.Permeability, error) {
	fn, ok := r.regimes[name]
	if !ok {
		return nil, fmt.Errorf("unknown regime: %s (available: %v)", name, r.ListRegimes())
	}
	return fn(), nil
}

func (r *Registry) GetFormula(name string) (flux.Formula, error) {
	fn, ok := r.formulas[name]
	if !ok {
		return nil, fmt.Errorf("unknown formula: %s (available: %v)", name, r.ListFormulas())
	}
	return fn(), nil
}

func (r *Registry) ListRegimes() []string {
	names := make([]string, 0, len(r.regimes))
	for name := range r.regimes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListFormulas() []string {
	names := make([]string, 0, len(r.formulas))
	for name := range r.formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics is the metric set attached to every headless run.
func (r *Registry) DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewNetFlux(),
		metrics.NewPeakRate(),
		metrics.NewInsideFraction(),
	}
}
