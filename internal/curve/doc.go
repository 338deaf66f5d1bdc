// Package curve samples animation keyframe tracks.
//
// A track is a sparse, x-ordered list of control points (x = time, y = value).
// Each [Evaluator] turns that list into a dense polyline:
//
//   - [Linear]: straight segments between neighbouring points
//   - [Bezier]: piecewise cubic Bézier, four points per segment
//   - [BSpline]: uniform cubic B-spline with tripled end points
//   - [CatmullRom]: interpolating Catmull-Rom spline with doubled end points
//
// The spline variants only differ in how they derive four Bézier handles
// from the input; sampling itself is shared.
//
// # Example
//
//	ev := curve.NewCatmullRom(curve.Options{Extend: true, MaxX: 10})
//	pts := ev.Evaluate(keys, 20)
//
// Evaluators are immutable values and safe for concurrent use.
package curve
