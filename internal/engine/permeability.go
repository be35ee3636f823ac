package engine

import "math"

// Permeability maps the concentration gradient to direction-specific
// crossing rate constants. Both rates stay strictly positive for every
// gradient: the gradient shifts the balance between directions, it never
// produces a one-way membrane. The engine scales these constants for
// shell geometry and occupancy imbalance before computing probabilities.
type Permeability interface {
	Name() string
	Rates(gradient float64) (kEnter, kExit float64)
}

// CrossProbability is the continuous-time probability of at least one
// crossing success within delta seconds at rate constant k. The naive
// k*delta product is only a small-delta approximation and overshoots 1.
func CrossProbability(k, delta float64) float64 {
	return 1 - math.Exp(-k*delta)
}

// Biased is the default regime: the inward rate rises and the outward
// rate falls as the gradient increases, biasing net transport toward
// equilibrating the gradient.
type Biased struct {
	Base float64
	Span float64
}

func NewBiased() *Biased {
	return &Biased{Base: 2.0, Span: 1.5}
}

func (b *Biased) Name() string { return "biased" }

func (b *Biased) Rates(gradient float64) (float64, float64) {
	kEnter := b.Base * (0.5 + b.Span*gradient)
	kExit := b.Base * (0.5 + b.Span*(1-gradient))
	return kEnter, kExit
}

// Porous is the almost-fully-permeable regime: crossings are rarely
// rejected and the gradient applies only a weak directional bias.
type Porous struct {
	Base float64
	Bias float64
}

func NewPorous() *Porous {
	return &Porous{Base: 8.0, Bias: 0.2}
}

func (p *Porous) Name() string { return "porous" }

func (p *Porous) Rates(gradient float64) (float64, float64) {
	kEnter := p.Base * (1 - p.Bias/2 + p.Bias*gradient)
	kExit := p.Base * (1 + p.Bias/2 - p.Bias*gradient)
	return kEnter, kExit
}
