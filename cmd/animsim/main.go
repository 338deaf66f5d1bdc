package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/animsim/internal/config"
	"github.com/san-kum/animsim/internal/curve"
	"github.com/san-kum/animsim/internal/particles"
	"github.com/san-kum/animsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	// run settings
	dt         float64
	duration   float64
	integrator string
	collision  string
	maxCount   int
	asJSON     bool
	noSave     bool
	// curve settings
	points  string
	density int
	extend  bool
	wrap    bool
	maxX    float64
	svgOut  string
	save    bool
	// export settings
	outFile string
	plane   string
	// live view
	watch bool
	theme string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "animsim",
		Short: "keyframe curve and particle system lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".animsim", "data directory")

	curveCmd := &cobra.Command{
		Use:   "curve [kind]",
		Short: "sample a keyframe track",
		Long:  "sample a keyframe track with one of: " + kindList(),
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCurve,
	}
	curveCmd.Flags().StringVar(&points, "points", "", `control points as "x,y x,y ..."`)
	curveCmd.Flags().IntVar(&density, "density", curve.DefaultDensity, "samples per segment")
	curveCmd.Flags().BoolVar(&extend, "extend", false, "pad the track out to [0, max-x]")
	curveCmd.Flags().BoolVar(&wrap, "wrap", false, "blend the padding for a looping track")
	curveCmd.Flags().Float64Var(&maxX, "max-x", config.DefaultMaxX, "track length used by --extend")
	curveCmd.Flags().StringVar(&configFile, "config", "", "scene file (yaml)")
	curveCmd.Flags().StringVar(&preset, "preset", "", "use a curve preset")
	curveCmd.Flags().StringVar(&svgOut, "svg", "", "write the sampled curve as SVG")
	curveCmd.Flags().BoolVar(&save, "save", false, "store the samples in the data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a particle scene",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scene file (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "particle preset, or a comma-separated list to run side by side")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&integrator, "integrator", particles.IntegratorSemiImplicit, "integrator: "+strings.Join(particles.ListIntegrators(), ", "))
	runCmd.Flags().StringVar(&collision, "collision", particles.CollisionImpulse, "collision mode: impulse, predictive")
	runCmd.Flags().IntVar(&maxCount, "max", particles.DefaultMaxParticles, "particle pool capacity")
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print the run as JSON")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().StringVar(&plane, "plane", "xy", "projection plane for particles: xy, xz, zy")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored particle run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a particle scene in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scene file (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "particle preset")
	liveCmd.Flags().BoolVar(&watch, "watch", false, "reload the scene file when it changes")
	liveCmd.Flags().StringVar(&theme, "theme", viz.CurrentTheme.Name, "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	rootCmd.AddCommand(curveCmd, runCmd, listCmd, plotCmd, exportSVGCmd, exportJSONCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func kindList() string {
	kinds := curve.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// loadScene resolves the scene for a command: defaults, then the named
// preset, then the config file. Flags the user set on the command line win over
// both.
func loadScene(cmd *cobra.Command, group, name string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if name != "" {
		cfg = config.GetPreset(group, name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(group))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Lookup("dt") != nil && flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Lookup("time") != nil && flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Lookup("integrator") != nil && flags.Changed("integrator") {
		cfg.Particles.Integrator = integrator
	}
	if flags.Lookup("collision") != nil && flags.Changed("collision") {
		cfg.Particles.Collision = collision
	}
	if flags.Lookup("max") != nil && flags.Changed("max") {
		cfg.Particles.MaxParticles = maxCount
	}
	if flags.Lookup("density") != nil && flags.Changed("density") {
		cfg.Curve.Density = density
	}
	if flags.Lookup("extend") != nil && flags.Changed("extend") {
		cfg.Curve.Extend = extend
	}
	if flags.Lookup("wrap") != nil && flags.Changed("wrap") {
		cfg.Curve.Wrap = wrap
	}
	if flags.Lookup("max-x") != nil && flags.Changed("max-x") {
		cfg.Curve.MaxX = maxX
	}
	if flags.Lookup("points") != nil && flags.Changed("points") {
		pts, err := config.ParsePoints(points)
		if err != nil {
			return nil, fmt.Errorf("--points: %w", err)
		}
		cfg.Curve.Points = pts
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	groups := make([]string, 0, len(config.Presets))
	if len(args) == 1 {
		groups = append(groups, args[0])
	} else {
		for g := range config.Presets {
			groups = append(groups, g)
		}
		sort.Strings(groups)
	}

	for _, g := range groups {
		presets := config.ListPresets(g)
		if len(presets) == 0 {
			fmt.Printf("no presets for group: %s\n", g)
			continue
		}
		fmt.Printf("%s presets:\n", g)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, "particles", preset)
	if err != nil {
		return err
	}
	if err := viz.SetTheme(theme); err != nil {
		return err
	}

	if !watch {
		return viz.RunLive(cfg, nil)
	}
	if configFile == "" {
		return fmt.Errorf("--watch needs --config")
	}

	w, err := config.NewWatcher(configFile)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", configFile, err)
	}
	defer w.Close()

	go func() {
		for err := range w.Errors {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		}
	}()

	return viz.RunLive(cfg, w.Events)
}
