package metrics

import (
	"github.com/san-kum/animsim/internal/sim"
)

// Containment is the fraction of frames in which every particle stayed
// within radius of the world origin.
type Containment struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewContainment(radius float64) *Containment {
	return &Containment{
		name:   "containment",
		radius: radius,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f sim.Frame) {
	c.samples++
	for _, p := range f.Particles {
		if p.Position.Len() > c.radius {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Default returns the metrics the CLI attaches to every run.
func Default(containment float64) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyPerParticle(),
		NewPeakSpeed(),
		NewPeakCount(),
		NewContainment(containment),
	}
}
