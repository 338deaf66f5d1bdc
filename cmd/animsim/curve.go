package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/animsim/internal/curve"
	"github.com/san-kum/animsim/internal/export"
	"github.com/san-kum/animsim/internal/storage"
	"github.com/san-kum/animsim/internal/viz"
)

const curveStroke = "#ff8c42"

func runCurve(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, "curve", preset)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Curve.Kind = args[0]
	}

	kind, err := curve.ParseKind(cfg.Curve.Kind)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, kindList())
	}
	ev, err := cfg.Evaluator()
	if err != nil {
		return err
	}
	ctrl, err := cfg.CurvePoints()
	if err != nil {
		return err
	}

	samples := ev.Evaluate(ctrl, cfg.Curve.Density)

	fmt.Printf("evaluator: %s\n", kind)
	fmt.Printf("control points: %d\n", len(ctrl))
	fmt.Printf("segments: %d\n", curve.Segments(kind, len(ctrl)))
	fmt.Printf("density: %d\n", cfg.Curve.Density)
	if cfg.Curve.Extend {
		fmt.Printf("extend: [0, %g] wrap=%v\n", cfg.Curve.MaxX, cfg.Curve.Wrap)
	}
	fmt.Printf("samples: %d\n", len(samples))

	if len(samples) == 0 {
		fmt.Println("\nnothing to draw")
		return nil
	}

	first, last := samples[0], samples[len(samples)-1]
	fmt.Printf("range: (%.3f, %.3f) -> (%.3f, %.3f)\n\n", first.X(), first.Y(), last.X(), last.Y())

	fmt.Println(drawCurve(samples, ctrl, 60, 15))

	if svgOut != "" {
		svg := export.CurveToSVG(samples, ctrl, 800, 400, curveStroke)
		if svg == "" {
			return fmt.Errorf("not enough samples for SVG")
		}
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nsvg written to %s\n", svgOut)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.SaveCurve(cfg.Name, string(kind), cfg.Curve.Density, samples)
		if err != nil {
			return fmt.Errorf("failed to save curve: %w", err)
		}
		fmt.Printf("\nsaved as %s\n", id)
	}

	return nil
}

// drawCurve renders samples on a braille canvas, marking the control
// points.
func drawCurve(samples, ctrl []mgl64.Vec2, w, h int) string {
	c := viz.NewCanvas(w, h)
	vp := viz.FitViewport(append(append([]mgl64.Vec2{}, samples...), ctrl...), 0.05)
	c.DrawPolyline(samples, vp)
	for _, p := range ctrl {
		c.DrawMarker(p, vp)
	}
	return c.String()
}

func plotCurve(meta *storage.RunMetadata, samples []mgl64.Vec2) error {
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("evaluator: %s\n", meta.Evaluator)
	fmt.Printf("samples: %d\n\n", len(samples))

	fmt.Println(drawCurve(samples, nil, 60, 15))
	fmt.Println()

	ys := make([]float64, len(samples))
	for i, p := range samples {
		ys[i] = p.Y()
	}
	graph := asciigraph.Plot(ys,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("y by sample"),
	)
	fmt.Println(graph)
	return nil
}
