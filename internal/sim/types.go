package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/animsim/internal/particles"
)

// Frame is the particle pool as it stood after one update.
type Frame struct {
	Step      int
	Time      float64
	Particles []particles.Particle
}

func (f Frame) Len() int { return len(f.Particles) }

func (f Frame) KineticEnergy() float64 {
	var e float64
	for _, p := range f.Particles {
		e += p.KineticEnergy()
	}
	return e
}

func (f Frame) MaxSpeed() float64 {
	var m float64
	for _, p := range f.Particles {
		m = math.Max(m, p.Speed())
	}
	return m
}

func (f Frame) IsValid() bool {
	for _, p := range f.Particles {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Result holds one sample per frame, the initial empty frame included.
type Result struct {
	Times      []float64
	Counts     []int
	Energies   []float64
	MaxSpeeds  []float64
	Final      []particles.Particle
	Stats      particles.Stats
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error { return ErrInvalidState }
