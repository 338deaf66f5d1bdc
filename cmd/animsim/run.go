package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/animsim/internal/config"
	"github.com/san-kum/animsim/internal/export"
	"github.com/san-kum/animsim/internal/metrics"
	"github.com/san-kum/animsim/internal/particles"
	"github.com/san-kum/animsim/internal/sim"
	"github.com/san-kum/animsim/internal/storage"
)

// containmentRadius is the world radius the containment metric checks.
const containmentRadius = 50.0

const particleColor = "#4ecdc4"

func newRunner(cfg *config.Config) (*sim.Runner, error) {
	sys, err := cfg.NewSystem()
	if err != nil {
		return nil, err
	}
	colliders, err := cfg.BuildColliders()
	if err != nil {
		return nil, err
	}
	r := sim.New(sys, colliders)
	for _, m := range metrics.Default(containmentRadius) {
		r.AddMetric(m)
	}
	return r, nil
}

func simConfig(cfg *config.Config) sim.Config {
	sc := sim.DefaultConfig()
	sc.Dt = cfg.Dt
	sc.Duration = cfg.Duration
	return sc
}

func runInfo(cfg *config.Config) storage.RunInfo {
	pc := cfg.Particles
	integ := pc.Integrator
	if integ == "" {
		integ = particles.IntegratorSemiImplicit
	}
	coll := pc.Collision
	if coll == "" {
		coll = particles.CollisionImpulse
	}
	return storage.RunInfo{
		Name:       cfg.Name,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: integ,
		Collision:  coll,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	names := []string{""}
	if preset != "" {
		names = strings.Split(preset, ",")
	}

	cfgs := make([]*config.Config, len(names))
	for i, name := range names {
		cfg, err := loadScene(cmd, "particles", strings.TrimSpace(name))
		if err != nil {
			return err
		}
		cfgs[i] = cfg
	}

	jobs := make([]sim.Job, len(cfgs))
	for i, cfg := range cfgs {
		cfg := cfg
		jobs[i] = sim.Job{
			Name:   cfg.Name,
			Build:  func() (*sim.Runner, error) { return newRunner(cfg) },
			Config: simConfig(cfg),
		}
	}

	if !asJSON {
		fmt.Printf("running %d scene(s) for %.2fs...\n", len(jobs), cfgs[0].Duration)
	}
	results := sim.RunBatch(ctx, jobs)

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	var failed error
	for i, br := range results {
		info := runInfo(cfgs[i])
		if br.Result == nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", br.Name, br.Err)
			failed = br.Err
			continue
		}
		if br.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: stopped early: %v\n", br.Name, br.Err)
		}

		if asJSON {
			if err := storage.ExportJSON(os.Stdout, info, br.Result); err != nil {
				return err
			}
		} else {
			printResult(info, br.Result)
		}

		if st != nil {
			id, err := st.SaveRun(info, br.Result)
			if err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}
			if !asJSON {
				fmt.Printf("saved as %s\n\n", id)
			}
		}
	}
	return failed
}

func printResult(info storage.RunInfo, res *sim.Result) {
	fmt.Printf("\n%s (%s, %s)\n", info.Name, info.Integrator, info.Collision)
	fmt.Printf("  steps: %d\n", res.StepsTaken)
	fmt.Printf("  emitted: %d  evicted: %d  collisions: %d\n", res.Stats.Emitted, res.Stats.Evicted, res.Stats.Collisions)
	fmt.Printf("  alive at end: %d\n", len(res.Final))

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, res.Metrics[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tDETAIL\tSTEPS")

	for _, run := range runs {
		detail := fmt.Sprintf("%s/%s dt=%.4f", run.Integrator, run.Collision, run.Dt)
		if run.Kind == storage.KindCurve {
			detail = fmt.Sprintf("%s density=%d", run.Evaluator, run.Density)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			detail,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if meta.Kind == storage.KindCurve {
		samples, err := st.LoadCurve(runID)
		if err != nil {
			return err
		}
		return plotCurve(meta, samples)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Name)
	fmt.Printf("frames: %d\n\n", len(frames.Times))

	counts := make([]float64, len(frames.Counts))
	for i, c := range frames.Counts {
		counts[i] = float64(c)
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"live particles", counts},
		{"kinetic energy", frames.Energies},
		{"max speed", frames.MaxSpeeds},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var svg string
	if meta.Kind == storage.KindCurve {
		samples, err := st.LoadCurve(runID)
		if err != nil {
			return err
		}
		svg = export.CurveToSVG(samples, nil, 800, 400, curveStroke)
	} else {
		pl, err := export.ParsePlane(plane)
		if err != nil {
			return err
		}
		ps, err := st.LoadParticles(runID)
		if err != nil {
			return err
		}
		svg = export.ParticlesToSVG(ps, pl, 800, 800, particleColor)
	}
	if svg == "" {
		return fmt.Errorf("nothing to export in %s", runID)
	}

	out := outFile
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("exported to %s\n", out)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if meta.Kind != storage.KindParticles {
		return fmt.Errorf("%s: %w", runID, storage.ErrWrongKind)
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	final, err := st.LoadParticles(runID)
	if err != nil {
		return err
	}

	res := &sim.Result{
		Times:      frames.Times,
		Counts:     frames.Counts,
		Energies:   frames.Energies,
		MaxSpeeds:  frames.MaxSpeeds,
		Final:      final,
		Stats:      meta.Stats,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}
	info := storage.RunInfo{
		Name:       meta.Name,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Integrator: meta.Integrator,
		Collision:  meta.Collision,
	}

	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := storage.ExportJSON(w, info, res); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Printf("exported to %s\n", outFile)
	}
	return nil
}
