package curve

import (
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultDensity is used when Evaluate is called with a non-positive density.
const DefaultDensity = 100

// Evaluator converts control points into a dense sampled curve.
//
// The returned slice always ends with the last control point, copied
// verbatim, so the sampled track reaches the final keyframe exactly.
type Evaluator interface {
	Evaluate(ctrl []mgl64.Vec2, density int) []mgl64.Vec2
}

// Options controls post-processing of the sampled curve.
type Options struct {
	// Extend pads the output so it spans [0, MaxX].
	Extend bool
	// Wrap blends the first and last values at the padded boundaries so a
	// cyclic track has a continuous tangent across the seam. Only used
	// together with Extend.
	Wrap bool
	MaxX float64
}

func normDensity(density int) int {
	if density <= 0 {
		return DefaultDensity
	}
	return density
}

// finish appends the last control point and applies extension.
func (o Options) finish(out, ctrl []mgl64.Vec2) []mgl64.Vec2 {
	if len(ctrl) == 0 {
		return out
	}
	out = append(out, ctrl[len(ctrl)-1])
	if o.Extend {
		out = extend(out, ctrl, o.MaxX, o.Wrap)
	}
	return out
}

// extend pads out to the [0, maxX] domain.
func extend(out, ctrl []mgl64.Vec2, maxX float64, wrap bool) []mgl64.Vec2 {
	if len(ctrl) == 0 {
		return out
	}
	first, last := ctrl[0], ctrl[len(ctrl)-1]

	if wrap {
		dx1 := first.X()
		dx2 := maxX - last.X()
		y := first.Y()
		if span := dx1 + dx2; span != 0 {
			t := dx2 / span
			y = t*first.Y() + (1-t)*last.Y()
		}
		out = append([]mgl64.Vec2{{0, y}}, out...)
		return append(out, mgl64.Vec2{maxX, y})
	}

	if last.X() < maxX {
		out = append(out, mgl64.Vec2{maxX, last.Y()})
	}
	if first.X() > 0 {
		out = append([]mgl64.Vec2{{0, first.Y()}}, out...)
	}
	return out
}

// sampleLinear samples every consecutive pair of ctrl with density points,
// excluding the end point of each pair.
func sampleLinear(out, ctrl []mgl64.Vec2, density int) []mgl64.Vec2 {
	for i := 0; i+1 < len(ctrl); i++ {
		out = samplePair(out, ctrl[i], ctrl[i+1], density)
	}
	return out
}

func samplePair(out []mgl64.Vec2, p0, p1 mgl64.Vec2, density int) []mgl64.Vec2 {
	for j := 0; j < density; j++ {
		t := float64(j) / float64(density)
		out = append(out, p1.Mul(t).Add(p0.Mul(1-t)))
	}
	return out
}

// addBezier samples the cubic Bézier (v0, v1, v2, v3) at t = j/density for
// j in [0, density).
func addBezier(out []mgl64.Vec2, density int, v0, v1, v2, v3 mgl64.Vec2) []mgl64.Vec2 {
	for j := 0; j < density; j++ {
		t := float64(j) / float64(density)
		s := 1 - t
		b0 := s * s * s
		b1 := 3 * s * s * t
		b2 := 3 * s * t * t
		b3 := t * t * t
		out = append(out, v0.Mul(b0).Add(v1.Mul(b1)).Add(v2.Mul(b2)).Add(v3.Mul(b3)))
	}
	return out
}

func capacity(segments, density int) int {
	if segments < 0 {
		segments = 0
	}
	return segments*density + 3
}
