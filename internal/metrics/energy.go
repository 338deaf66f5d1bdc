package metrics

import (
	"math"

	"github.com/san-kum/animsim/internal/sim"
)

// KineticEnergy is the mean total kinetic energy of the pool per frame.
type KineticEnergy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f sim.Frame) {
	e.totalEnergy += f.KineticEnergy()
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyPerParticle is the largest mean kinetic energy per live particle
// seen in any frame. Bounces with restitution below 1 keep it from growing
// once the emitter's launch energy is reached.
type EnergyPerParticle struct {
	name string
	peak float64
}

func NewEnergyPerParticle() *EnergyPerParticle {
	return &EnergyPerParticle{name: "energy_per_particle"}
}

func (e *EnergyPerParticle) Name() string { return e.name }

func (e *EnergyPerParticle) Observe(f sim.Frame) {
	if f.Len() == 0 {
		return
	}
	e.peak = math.Max(e.peak, f.KineticEnergy()/float64(f.Len()))
}

func (e *EnergyPerParticle) Value() float64 { return e.peak }

func (e *EnergyPerParticle) Reset() { e.peak = 0 }
