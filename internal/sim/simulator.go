package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/animsim/internal/particles"
)

// Runner steps a particle system at a fixed dt against a fixed collider
// list.
type Runner struct {
	sys       *particles.System
	colliders []particles.ColliderRef
	metrics   []Metric
	observers []Observer
}

func New(sys *particles.System, colliders []particles.ColliderRef) *Runner {
	return &Runner{
		sys:       sys,
		colliders: colliders,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) System() *particles.System { return r.sys }

// steps is the whole number of frames in Duration, tolerating float noise
// just below an integer quotient.
func steps(cfg Config) int {
	return int(cfg.Duration/cfg.Dt + 1e-9)
}

// Run starts the system from an empty pool and records one frame per
// update. Metrics observe every frame after the initial one.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	n := steps(cfg)
	result := &Result{
		Times:     make([]float64, 0, n+1),
		Counts:    make([]int, 0, n+1),
		Energies:  make([]float64, 0, n+1),
		MaxSpeeds: make([]float64, 0, n+1),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.sys.Start()
	t := 0.0
	frame := Frame{Time: t, Particles: r.sys.Particles()}
	result.record(frame)

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			result.finish(r, frame)
			return result, ctx.Err()
		default:
		}

		r.sys.Update(cfg.Dt, r.colliders)
		t += cfg.Dt
		next := Frame{Step: i + 1, Time: t, Particles: r.sys.Particles()}

		if cfg.ValidateState && !next.IsValid() {
			err := SimError{Time: t, Step: next.Step, Message: "invalid particle state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		frame = next
		result.StepsTaken++
		result.record(frame)

		for _, m := range r.metrics {
			m.Observe(frame)
		}
		for _, obs := range r.observers {
			obs.OnFrame(frame)
		}
	}

	result.finish(r, frame)
	return result, nil
}

func (res *Result) record(f Frame) {
	res.Times = append(res.Times, f.Time)
	res.Counts = append(res.Counts, f.Len())
	res.Energies = append(res.Energies, f.KineticEnergy())
	res.MaxSpeeds = append(res.MaxSpeeds, f.MaxSpeed())
}

func (res *Result) finish(r *Runner, last Frame) {
	res.Final = last.Particles
	res.Stats = r.sys.Stats()
	for _, m := range r.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if !(cfg.Duration >= 0) {
		return fmt.Errorf("%w: duration must not be negative, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}

// RunWithCallback steps the system until the duration elapses or callback
// returns false. A zero Duration runs until ctx is done.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(Frame) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	r.sys.Start()
	t := 0.0
	for step := 0; cfg.Duration == 0 || step < steps(cfg); step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.sys.Update(cfg.Dt, r.colliders)
		t += cfg.Dt
		f := Frame{Step: step + 1, Time: t, Particles: r.sys.Particles()}

		if cfg.ValidateState && !f.IsValid() {
			return SimError{Time: t, Step: f.Step, Message: "invalid particle state (NaN/Inf)"}
		}
		if !callback(f) {
			return nil
		}
	}
	return nil
}
