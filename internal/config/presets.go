package config

import "sort"

// Presets are grouped by what they exercise. Each entry builds a fresh
// config so callers may edit the result.
var Presets = map[string]map[string]func() *Config{
	"particles": {
		"fountain": fountain,
		"bounce":   bounce,
		"sphere":   sphereDrop,
		"drag":     dragged,
	},
	"curve": {
		"ease":  ease,
		"loop":  loop,
		"steps": steps,
	},
}

// floor is a 20x20 plane lying in world XZ at height y.
func floor(y, restitution float64) ColliderConfig {
	return ColliderConfig{
		Kind:        "plane",
		Width:       20,
		Height:      20,
		Restitution: restitution,
		Transform: TransformConfig{
			Translate: []float64{0, y, 0},
			Rotate:    []float64{-90, 0, 0},
		},
	}
}

func fountain() *Config {
	c := DefaultConfig()
	c.Name = "fountain"
	c.Duration = 8
	c.Particles.InitialVelocity = []float64{1, 8, 0}
	c.Particles.Period = 0.05
	c.Particles.MaxParticles = 200
	c.Colliders = []ColliderConfig{floor(-2, 0.4)}
	return c
}

func bounce() *Config {
	c := DefaultConfig()
	c.Name = "bounce"
	c.Particles.InitialVelocity = []float64{2, 0, 0}
	c.Particles.Period = 0.5
	c.Emitter.Translate = []float64{-5, 5, 0}
	c.Colliders = []ColliderConfig{floor(0, 0.8)}
	return c
}

func sphereDrop() *Config {
	c := DefaultConfig()
	c.Name = "sphere"
	c.Particles.InitialVelocity = []float64{0, 0, 0}
	c.Particles.Period = 0.2
	c.Emitter.Translate = []float64{0.3, 6, 0}
	c.Colliders = []ColliderConfig{
		{Kind: "sphere", Radius: 2, Restitution: 0.6},
		floor(-3, 0.5),
	}
	return c
}

func dragged() *Config {
	c := DefaultConfig()
	c.Name = "drag"
	c.Particles.InitialVelocity = []float64{10, 4, 0}
	c.Particles.Drag = 0.05
	c.Particles.Period = 0.25
	c.Colliders = []ColliderConfig{floor(-1, 0.3)}
	return c
}

func ease() *Config {
	c := DefaultConfig()
	c.Name = "ease"
	c.Curve.Kind = "bezier"
	c.Curve.Points = [][]float64{{0, 0}, {3, 0}, {7, 10}, {10, 10}}
	return c
}

func loop() *Config {
	c := DefaultConfig()
	c.Name = "loop"
	c.Curve.Kind = "catmullrom"
	c.Curve.Extend = true
	c.Curve.Wrap = true
	c.Curve.MaxX = 12
	c.Curve.Points = [][]float64{{1, 0}, {4, 5}, {7, -2}, {10, 3}}
	return c
}

func steps() *Config {
	c := DefaultConfig()
	c.Name = "steps"
	c.Curve.Kind = "bspline"
	c.Curve.Extend = true
	c.Curve.Points = [][]float64{{0, 0}, {2, 0}, {2.5, 4}, {5, 4}, {5.5, 8}, {8, 8}}
	return c
}

func GetPreset(group, preset string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	build, ok := groupPresets[preset]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindPreset looks a preset up by name across all groups.
func FindPreset(name string) (*Config, string) {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		if cfg := GetPreset(g, name); cfg != nil {
			return cfg, g
		}
	}
	return nil, ""
}
