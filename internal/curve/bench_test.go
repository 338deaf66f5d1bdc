package curve

import "testing"

func benchmarkEvaluate(b *testing.B, ev Evaluator) {
	ctrl := keys(32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ev.Evaluate(ctrl, 100)
	}
}

func BenchmarkLinear(b *testing.B)     { benchmarkEvaluate(b, NewLinear(Options{})) }
func BenchmarkBezier(b *testing.B)     { benchmarkEvaluate(b, NewBezier(Options{})) }
func BenchmarkBSpline(b *testing.B)    { benchmarkEvaluate(b, NewBSpline(Options{})) }
func BenchmarkCatmullRom(b *testing.B) { benchmarkEvaluate(b, NewCatmullRom(Options{})) }

func BenchmarkCatmullRomWrap(b *testing.B) {
	benchmarkEvaluate(b, NewCatmullRom(Options{Extend: true, Wrap: true, MaxX: 30}))
}
