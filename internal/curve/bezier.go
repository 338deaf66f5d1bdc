package curve

import "github.com/go-gl/mathgl/mgl64"

var _ Evaluator = Bezier{}

// Bezier treats the control points as a chain of cubic Bézier segments
// sharing end points: p0..p3, p3..p6, and so on. A trailing remainder that
// cannot form a full segment is joined with straight lines.
type Bezier struct {
	Options
}

func NewBezier(opts Options) Bezier {
	return Bezier{Options: opts}
}

// Evaluate implements [Evaluator].
func (b Bezier) Evaluate(ctrl []mgl64.Vec2, density int) []mgl64.Vec2 {
	density = normDensity(density)
	out := make([]mgl64.Vec2, 0, capacity(Segments(KindBezier, len(ctrl)), density))

	if len(ctrl) < 4 {
		out = sampleLinear(out, ctrl, density)
		return b.finish(out, ctrl)
	}

	for i := 0; i < len(ctrl)-1; i += 3 {
		if i+3 >= len(ctrl) {
			out = sampleLinear(out, ctrl[i:], density)
			break
		}
		out = addBezier(out, density, ctrl[i], ctrl[i+1], ctrl[i+2], ctrl[i+3])
	}
	return b.finish(out, ctrl)
}
