package curve

import "github.com/go-gl/mathgl/mgl64"

var _ Evaluator = BSpline{}

// BSpline is a uniform cubic B-spline. The first and last control points
// are tripled so the curve starts and ends on them.
type BSpline struct {
	Options
}

func NewBSpline(opts Options) BSpline {
	return BSpline{Options: opts}
}

// Evaluate implements [Evaluator].
func (b BSpline) Evaluate(ctrl []mgl64.Vec2, density int) []mgl64.Vec2 {
	density = normDensity(density)
	out := make([]mgl64.Vec2, 0, capacity(Segments(KindBSpline, len(ctrl)), density))

	if len(ctrl) < 3 {
		out = sampleLinear(out, ctrl, density)
		return b.finish(out, ctrl)
	}

	padded := make([]mgl64.Vec2, 0, len(ctrl)+4)
	padded = append(padded, ctrl[0], ctrl[0])
	padded = append(padded, ctrl...)
	padded = append(padded, ctrl[len(ctrl)-1], ctrl[len(ctrl)-1])

	for i := 0; i+3 < len(padded); i++ {
		v0, v1, v2, v3 := bsplineHandles(padded[i], padded[i+1], padded[i+2], padded[i+3])
		out = addBezier(out, density, v0, v1, v2, v3)
	}
	return b.finish(out, ctrl)
}

// bsplineHandles converts one B-spline window into the equivalent Bézier
// control points.
func bsplineHandles(b0, b1, b2, b3 mgl64.Vec2) (v0, v1, v2, v3 mgl64.Vec2) {
	v0 = b0.Add(b1.Mul(4)).Add(b2).Mul(1.0 / 6.0)
	v1 = b1.Mul(2).Add(b2).Mul(1.0 / 3.0)
	v2 = b1.Add(b2.Mul(2)).Mul(1.0 / 3.0)
	v3 = b1.Add(b2.Mul(4)).Add(b3).Mul(1.0 / 6.0)
	return
}
