package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/animsim/internal/curve"
	"github.com/san-kum/animsim/internal/particles"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	pc, err := cfg.ParticleSystemConfig()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(particles.DefaultConfig(), pc); diff != "" {
		t.Errorf("particle defaults differ (-want +got):\n%s", diff)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	want := GetPreset("particles", "sphere")

	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip differs (-want +got):\n%s", diff)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("particles:\n  mass: 2\n  initial_velocity: [0, 1, 0]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Particles.Mass != 2 {
		t.Errorf("expected mass 2, got %g", cfg.Particles.Mass)
	}
	if cfg.Particles.Period != 0.5 {
		t.Errorf("expected default period 0.5, got %g", cfg.Particles.Period)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("expected default dt, got %g", cfg.Dt)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		dt       float64
		duration float64
		ok       bool
	}{
		{"defaults", DefaultDt, DefaultDuration, true},
		{"zero duration", 0.1, 0, true},
		{"zero dt", 0, 1, false},
		{"negative dt", -0.1, 1, false},
		{"NaN dt", math.NaN(), 1, false},
		{"negative duration", 0.1, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Dt = tt.dt
			cfg.Duration = tt.duration
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("particles", "bounce")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Colliders) != 1 {
		t.Errorf("expected 1 collider, got %d", len(cfg.Colliders))
	}

	cfg.Colliders = nil
	if again := GetPreset("particles", "bounce"); len(again.Colliders) != 1 {
		t.Error("editing a preset leaked into the next lookup")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("particles", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "bounce"); cfg != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets("particles")
	want := []string{"bounce", "drag", "fountain", "sphere"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("presets differ (-want +got):\n%s", diff)
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestFindPreset(t *testing.T) {
	cfg, group := FindPreset("loop")
	if cfg == nil || group != "curve" {
		t.Fatalf("expected loop in curve, got %v in %q", cfg, group)
	}
	if cfg, _ := FindPreset("missing"); cfg != nil {
		t.Error("expected nil for missing preset")
	}
}

func TestAllPresetsBuild(t *testing.T) {
	for group, presets := range Presets {
		for name := range presets {
			cfg := GetPreset(group, name)
			if _, err := cfg.NewSystem(); err != nil {
				t.Errorf("%s/%s: system: %v", group, name, err)
			}
			if _, err := cfg.BuildColliders(); err != nil {
				t.Errorf("%s/%s: colliders: %v", group, name, err)
			}
			if _, err := cfg.Evaluator(); err != nil {
				t.Errorf("%s/%s: evaluator: %v", group, name, err)
			}
			if _, err := cfg.CurvePoints(); err != nil {
				t.Errorf("%s/%s: points: %v", group, name, err)
			}
		}
	}
}

// near compares by distance; rotations leave ~1e-17 residue where an
// exact zero is expected.
func near(got, want mgl64.Vec3) bool {
	return got.Sub(want).Len() < 1e-12
}

func TestTransformMatrix(t *testing.T) {
	tr := TransformConfig{
		Translate: []float64{1, 2, 3},
		Rotate:    []float64{0, 0, 90},
		Scale:     []float64{2, 2, 2},
	}
	m, err := tr.Matrix()
	if err != nil {
		t.Fatal(err)
	}

	got := m.Mul4x1(mgl64.Vec4{1, 0, 0, 1}).Vec3()
	want := mgl64.Vec3{1, 4, 3}
	if !near(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	id, err := TransformConfig{}.Matrix()
	if err != nil {
		t.Fatal(err)
	}
	if !id.ApproxEqual(mgl64.Ident4()) {
		t.Errorf("expected identity, got %v", id)
	}

	if _, err := (TransformConfig{Scale: []float64{1, 2}}).Matrix(); !errors.Is(err, ErrBadVector) {
		t.Errorf("expected ErrBadVector, got %v", err)
	}
}

func TestBuildColliders(t *testing.T) {
	cfg := GetPreset("particles", "sphere")
	refs, err := cfg.BuildColliders()
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 colliders, got %d", len(refs))
	}
	if refs[0].Collider.Shape() != particles.ShapeSphere {
		t.Errorf("expected sphere first, got %v", refs[0].Collider.Shape())
	}
	if refs[1].Collider.Shape() != particles.ShapePlane {
		t.Errorf("expected plane second, got %v", refs[1].Collider.Shape())
	}

	// the floor's local +Z points up the world Y axis
	up := refs[1].Model.Mul4x1(mgl64.Vec4{0, 0, 1, 0}).Vec3()
	if !near(up, mgl64.Vec3{0, 1, 0}) {
		t.Errorf("expected floor normal +Y, got %v", up)
	}

	cfg.Colliders = append(cfg.Colliders, ColliderConfig{Kind: "torus"})
	if _, err := cfg.BuildColliders(); !errors.Is(err, ErrUnknownCollider) {
		t.Errorf("expected ErrUnknownCollider, got %v", err)
	}
}

func TestCurveFromConfig(t *testing.T) {
	cfg := GetPreset("curve", "ease")
	pts, err := cfg.CurvePoints()
	if err != nil {
		t.Fatal(err)
	}
	ev, err := cfg.Evaluator()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ev.(curve.Bezier); !ok {
		t.Errorf("expected a Bezier evaluator, got %T", ev)
	}
	out := ev.Evaluate(pts, 10)
	if len(out) != 11 {
		t.Errorf("expected 11 samples, got %d", len(out))
	}

	cfg.Curve.Kind = "nurbs"
	if _, err := cfg.Evaluator(); !errors.Is(err, curve.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}

	cfg.Curve.Points = [][]float64{{1, 2, 3}}
	if _, err := cfg.CurvePoints(); !errors.Is(err, ErrBadPoint) {
		t.Errorf("expected ErrBadPoint, got %v", err)
	}
}

func TestParsePoints(t *testing.T) {
	got, err := ParsePoints(" 0,0  1,2.5\t3,-1 ")
	if err != nil {
		t.Fatal(err)
	}
	want := [][]float64{{0, 0}, {1, 2.5}, {3, -1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("points differ (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"1", "1,2,3", "a,1", "1,b"} {
		if _, err := ParsePoints(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestClone(t *testing.T) {
	src := GetPreset("particles", "sphere")
	dup := src.Clone()
	dup.Curve.Points[0][0] = 99
	dup.Particles.InitialVelocity[0] = 99
	dup.Colliders[0].Radius = 99
	dup.Emitter.Translate[0] = 99

	if diff := cmp.Diff(GetPreset("particles", "sphere"), src); diff != "" {
		t.Errorf("clone shares state with source:\n%s", diff)
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("dt: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("dt: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != "scene.yaml" {
			t.Errorf("expected scene.yaml event, got %s", got)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	if err := w.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	// Events is closed once the watcher stops
	for range w.Events {
	}
}

func TestWatcherReportsFinalWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// a truncating save followed quickly by the real contents
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("dt: 0."); err != nil {
		t.Fatal(err)
	}
	time.Sleep(debounce / 4)
	if _, err := f.WriteString("25\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		cfg, err := Load(got)
		if err != nil {
			t.Fatalf("load after change: %v", err)
		}
		if cfg.Dt != 0.25 {
			t.Errorf("expected the finished file with dt 0.25, got %g", cfg.Dt)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	select {
	case got, ok := <-w.Events:
		if ok {
			t.Errorf("expected one event for the burst, got another for %s", got)
		}
	case <-time.After(3 * debounce):
	}
}
