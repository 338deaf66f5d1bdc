package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/animsim/internal/curve"
	"github.com/san-kum/animsim/internal/particles"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 10.0
	DefaultMaxX     = 10.0
)

var (
	ErrBadVector       = errors.New("config: vectors need exactly 3 components")
	ErrBadPoint        = errors.New("config: control points need exactly 2 components")
	ErrUnknownCollider = errors.New("config: unknown collider kind")
	ErrInvalid         = errors.New("config: invalid run settings")
)

// Config describes one scene: a keyframe track, an emitter and the
// colliders it bounces off.
type Config struct {
	Name      string           `yaml:"name,omitempty"`
	Dt        float64          `yaml:"dt"`
	Duration  float64          `yaml:"duration"`
	Curve     CurveConfig      `yaml:"curve"`
	Particles ParticleConfig   `yaml:"particles"`
	Emitter   TransformConfig  `yaml:"emitter"`
	Colliders []ColliderConfig `yaml:"colliders,omitempty"`
}

type CurveConfig struct {
	Kind    string      `yaml:"kind"`
	Density int         `yaml:"density"`
	Extend  bool        `yaml:"extend"`
	Wrap    bool        `yaml:"wrap"`
	MaxX    float64     `yaml:"max_x"`
	Points  [][]float64 `yaml:"points,flow"`
}

type ParticleConfig struct {
	Geometry        string    `yaml:"geometry"`
	Material        string    `yaml:"material,omitempty"`
	Mass            float64   `yaml:"mass"`
	Period          float64   `yaml:"period"`
	InitialVelocity []float64 `yaml:"initial_velocity,flow"`
	ConstantForce   []float64 `yaml:"constant_force,flow"`
	Drag            float64   `yaml:"drag"`
	MaxParticles    int       `yaml:"max_particles"`
	Radius          float64   `yaml:"radius"`
	Integrator      string    `yaml:"integrator"`
	Collision       string    `yaml:"collision"`
}

// TransformConfig is a translate, rotate (degrees about X then Y then Z),
// scale transform. Empty vectors take the identity value.
type TransformConfig struct {
	Translate []float64 `yaml:"translate,flow,omitempty"`
	Rotate    []float64 `yaml:"rotate,flow,omitempty"`
	Scale     []float64 `yaml:"scale,flow,omitempty"`
}

type ColliderConfig struct {
	Kind        string          `yaml:"kind"`
	Radius      float64         `yaml:"radius,omitempty"`
	Width       float64         `yaml:"width,omitempty"`
	Height      float64         `yaml:"height,omitempty"`
	Restitution float64         `yaml:"restitution"`
	Transform   TransformConfig `yaml:"transform"`
}

func DefaultConfig() *Config {
	pc := particles.DefaultConfig()
	return &Config{
		Name:     "default",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Curve: CurveConfig{
			Kind:    string(curve.KindCatmullRom),
			Density: curve.DefaultDensity,
			MaxX:    DefaultMaxX,
			Points:  [][]float64{{0, 0}, {2, 3}, {5, 1}, {8, 4}},
		},
		Particles: ParticleConfig{
			Geometry:        pc.Geometry,
			Mass:            pc.Mass,
			Period:          pc.Period,
			InitialVelocity: pc.InitialVelocity[:],
			ConstantForce:   pc.ConstantForce[:],
			Drag:            pc.Drag,
			MaxParticles:    pc.MaxParticles,
			Radius:          pc.ParticleRadius,
			Integrator:      pc.Integrator,
			Collision:       pc.Collision,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of DefaultConfig, so omitted fields keep their
// defaults.
func Parse(data []byte) (*Config, error) {
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

// Validate checks the run settings. Physical parameters are left to the
// particle system, which clamps or rejects them itself.
func (c *Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	}
	if !(c.Duration >= 0) {
		return fmt.Errorf("%w: duration must not be negative, got %g", ErrInvalid, c.Duration)
	}
	return nil
}

func (c *Config) ParticleSystemConfig() (particles.Config, error) {
	p := c.Particles
	v0, err := vec3(p.InitialVelocity, mgl64.Vec3{})
	if err != nil {
		return particles.Config{}, fmt.Errorf("initial_velocity: %w", err)
	}
	f, err := vec3(p.ConstantForce, mgl64.Vec3{})
	if err != nil {
		return particles.Config{}, fmt.Errorf("constant_force: %w", err)
	}
	return particles.Config{
		Geometry:        p.Geometry,
		Material:        p.Material,
		InitialVelocity: v0,
		Mass:            p.Mass,
		Period:          p.Period,
		ConstantForce:   f,
		Drag:            p.Drag,
		MaxParticles:    p.MaxParticles,
		ParticleRadius:  p.Radius,
		Integrator:      p.Integrator,
		Collision:       p.Collision,
	}, nil
}

func (c *Config) EmitterMatrix() (mgl64.Mat4, error) {
	return c.Emitter.Matrix()
}

// NewSystem builds a stopped particle system placed at the emitter transform.
func (c *Config) NewSystem() (*particles.System, error) {
	pc, err := c.ParticleSystemConfig()
	if err != nil {
		return nil, err
	}
	model, err := c.EmitterMatrix()
	if err != nil {
		return nil, fmt.Errorf("emitter: %w", err)
	}
	ps, err := particles.New(pc)
	if err != nil {
		return nil, err
	}
	ps.SetModelTransform(model)
	return ps, nil
}

func (c *Config) BuildColliders() ([]particles.ColliderRef, error) {
	refs := make([]particles.ColliderRef, 0, len(c.Colliders))
	for i, cc := range c.Colliders {
		model, err := cc.Transform.Matrix()
		if err != nil {
			return nil, fmt.Errorf("collider %d: %w", i, err)
		}
		var col particles.Collider
		switch strings.ToLower(cc.Kind) {
		case "sphere":
			col = particles.Sphere{Radius: cc.Radius, Elasticity: cc.Restitution}
		case "plane":
			col = particles.Plane{Width: cc.Width, Height: cc.Height, Elasticity: cc.Restitution}
		default:
			return nil, fmt.Errorf("collider %d: %w: %q", i, ErrUnknownCollider, cc.Kind)
		}
		refs = append(refs, particles.ColliderRef{Collider: col, Model: model})
	}
	return refs, nil
}

func (c *Config) CurvePoints() ([]mgl64.Vec2, error) {
	pts := make([]mgl64.Vec2, 0, len(c.Curve.Points))
	for i, p := range c.Curve.Points {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %d: %w", i, ErrBadPoint)
		}
		pts = append(pts, mgl64.Vec2{p[0], p[1]})
	}
	return pts, nil
}

func (c *Config) CurveOptions() curve.Options {
	return curve.Options{Extend: c.Curve.Extend, Wrap: c.Curve.Wrap, MaxX: c.Curve.MaxX}
}

func (c *Config) Evaluator() (curve.Evaluator, error) {
	kind, err := curve.ParseKind(c.Curve.Kind)
	if err != nil {
		return nil, err
	}
	return curve.New(kind, c.CurveOptions())
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Curve.Points = make([][]float64, len(c.Curve.Points))
	for i, p := range c.Curve.Points {
		out.Curve.Points[i] = append([]float64(nil), p...)
	}
	out.Particles.InitialVelocity = append([]float64(nil), c.Particles.InitialVelocity...)
	out.Particles.ConstantForce = append([]float64(nil), c.Particles.ConstantForce...)
	out.Emitter = c.Emitter.clone()
	out.Colliders = make([]ColliderConfig, len(c.Colliders))
	for i, cc := range c.Colliders {
		cc.Transform = cc.Transform.clone()
		out.Colliders[i] = cc
	}
	return &out
}

func (t TransformConfig) clone() TransformConfig {
	return TransformConfig{
		Translate: append([]float64(nil), t.Translate...),
		Rotate:    append([]float64(nil), t.Rotate...),
		Scale:     append([]float64(nil), t.Scale...),
	}
}

func (t TransformConfig) Matrix() (mgl64.Mat4, error) {
	tr, err := vec3(t.Translate, mgl64.Vec3{})
	if err != nil {
		return mgl64.Mat4{}, fmt.Errorf("translate: %w", err)
	}
	rot, err := vec3(t.Rotate, mgl64.Vec3{})
	if err != nil {
		return mgl64.Mat4{}, fmt.Errorf("rotate: %w", err)
	}
	sc, err := vec3(t.Scale, mgl64.Vec3{1, 1, 1})
	if err != nil {
		return mgl64.Mat4{}, fmt.Errorf("scale: %w", err)
	}

	r := mgl64.HomogRotate3DZ(mgl64.DegToRad(rot.Z())).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(rot.Y()))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rot.X())))
	return mgl64.Translate3D(tr.X(), tr.Y(), tr.Z()).
		Mul4(r).
		Mul4(mgl64.Scale3D(sc.X(), sc.Y(), sc.Z())), nil
}

func vec3(v []float64, def mgl64.Vec3) (mgl64.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl64.Vec3{v[0], v[1], v[2]}, nil
	}
	return mgl64.Vec3{}, ErrBadVector
}

// ParsePoints reads control points written as "x,y x,y ...".
func ParsePoints(s string) ([][]float64, error) {
	fields := strings.Fields(s)
	pts := make([][]float64, 0, len(fields))
	for i, f := range fields {
		xy := strings.Split(f, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("point %d %q: %w", i, f, ErrBadPoint)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		pts = append(pts, []float64{x, y})
	}
	return pts, nil
}
