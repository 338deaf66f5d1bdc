package particles

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultMaxParticles   = 100
	DefaultParticleRadius = 0.5
)

const (
	// CollisionImpulse integrates first, then reflects any particle found in
	// contact and nudges it along the bounced velocity.
	CollisionImpulse = "impulse"
	// CollisionPredictive tests the integrated position before committing
	// it; on contact the particle is re-advanced from its pre-step position
	// along the bounced velocity.
	CollisionPredictive = "predictive"
)

// Config holds the emitter properties a host would normally expose in its
// property editor.
type Config struct {
	Geometry        string
	Material        string
	InitialVelocity mgl64.Vec3
	Mass            float64
	Period          float64
	ConstantForce   mgl64.Vec3
	Drag            float64
	MaxParticles    int
	ParticleRadius  float64
	Integrator      string
	Collision       string
}

func DefaultConfig() Config {
	return Config{
		Geometry:        "sphere",
		InitialVelocity: mgl64.Vec3{5, 5, 0},
		Mass:            0.1,
		Period:          0.5,
		ConstantForce:   mgl64.Vec3{0, -9.8, 0},
		Drag:            0,
		MaxParticles:    DefaultMaxParticles,
		ParticleRadius:  DefaultParticleRadius,
		Integrator:      IntegratorSemiImplicit,
		Collision:       CollisionImpulse,
	}
}

// Stats are running totals since the last Reset.
type Stats struct {
	Emitted    int
	Evicted    int
	Collisions int
}

// System is a particle emitter attached to a scene node.
type System struct {
	cfg        Config
	model      mgl64.Mat4
	pool       *ring[Particle]
	forces     []Force
	integrator Integrator
	timeToEmit float64
	running    bool
	stats      Stats
}

func New(cfg Config) (*System, error) {
	s := &System{model: mgl64.Ident4()}
	if err := s.Configure(cfg); err != nil {
		return nil, err
	}
	s.timeToEmit = s.cfg.Period
	return s, nil
}

// Configure replaces the emitter properties. Forces take effect on the
// next Start, matching how a host applies edited properties. Shrinking
// MaxParticles drops the oldest particles.
func (s *System) Configure(cfg Config) error {
	integ, err := GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}
	switch cfg.Collision {
	case "":
		cfg.Collision = CollisionImpulse
	case CollisionImpulse, CollisionPredictive:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCollision, cfg.Collision)
	}
	if cfg.MaxParticles <= 0 {
		cfg.MaxParticles = DefaultMaxParticles
	}
	if cfg.ParticleRadius < 0 {
		cfg.ParticleRadius = 0
	}

	s.cfg = cfg
	s.integrator = integ
	if s.pool == nil {
		s.pool = newRing[Particle](cfg.MaxParticles)
	} else {
		s.pool.resize(cfg.MaxParticles)
	}
	if s.forces == nil {
		s.forces = forcesFor(cfg)
	}
	return nil
}

func forcesFor(cfg Config) []Force {
	return []Force{Constant(cfg.ConstantForce), Drag(cfg.Drag)}
}

func (s *System) Config() Config { return s.cfg }

// Forces returns the forces currently applied, in order.
func (s *System) Forces() []Force {
	out := make([]Force, len(s.forces))
	copy(out, s.forces)
	return out
}

func (s *System) SetModelTransform(m mgl64.Mat4) { s.model = m }

// Start picks up the configured forces and begins simulating from an
// empty pool.
func (s *System) Start() {
	s.running = true
	s.forces = forcesFor(s.cfg)
	s.Reset()
}

func (s *System) Stop() { s.running = false }

// Reset clears all particles and rearms the emission timer. The run state
// is left unchanged.
func (s *System) Reset() {
	s.pool.Clear()
	s.timeToEmit = s.cfg.Period
	s.stats = Stats{}
}

func (s *System) IsRunning() bool { return s.running }

func (s *System) Len() int { return s.pool.Len() }

func (s *System) Stats() Stats { return s.stats }

// Particles returns a copy of the live particles, oldest first.
func (s *System) Particles() []Particle { return s.pool.Slice() }

// Update advances the simulation by dt. It is a no-op while stopped.
func (s *System) Update(dt float64, colliders []ColliderRef) {
	if !s.running {
		return
	}

	s.timeToEmit -= dt
	if s.timeToEmit <= 0 {
		s.emit()
	}

	predictive := s.cfg.Collision == CollisionPredictive
	radius := s.cfg.ParticleRadius

	for i := 0; i < s.pool.Len(); i++ {
		p := s.pool.At(i)
		start := p.Position

		s.integrator.Integrate(p, NetForce(s.forces, *p), dt)

		for _, c := range colliders {
			origin := p.Position
			if predictive {
				origin = start
			}
			if Collide(p, c, radius, dt, origin) {
				s.stats.Collisions++
			}
		}
	}
}

func (s *System) emit() {
	mass := s.cfg.Mass
	if !(mass >= MinMass) {
		mass = MinMass
	}
	p := Particle{
		Mass:     mass,
		Position: s.model.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3(),
		Velocity: s.model.Mul4x1(s.cfg.InitialVelocity.Vec4(0)).Vec3(),
	}
	if s.pool.Push(p) {
		s.stats.Evicted++
	}
	s.stats.Emitted++
	s.timeToEmit = s.cfg.Period
}
