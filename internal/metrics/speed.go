package metrics

import (
	"math"

	"github.com/san-kum/animsim/internal/sim"
)

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(f sim.Frame) {
	p.peak = math.Max(p.peak, f.MaxSpeed())
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// PeakCount is the largest live particle count seen.
type PeakCount struct {
	name string
	peak int
}

func NewPeakCount() *PeakCount {
	return &PeakCount{name: "peak_count"}
}

func (p *PeakCount) Name() string { return p.name }

func (p *PeakCount) Observe(f sim.Frame) {
	if n := f.Len(); n > p.peak {
		p.peak = n
	}
}

func (p *PeakCount) Value() float64 { return float64(p.peak) }

func (p *PeakCount) Reset() { p.peak = 0 }
