package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pwasik/fuzzdrive/internal/config"
	"github.com/pwasik/fuzzdrive/internal/drive"
	"github.com/pwasik/fuzzdrive/internal/fuzzy"
	"github.com/pwasik/fuzzdrive/internal/metrics"
	"github.com/pwasik/fuzzdrive/internal/storage"
	"github.com/pwasik/fuzzdrive/internal/track"
	"github.com/pwasik/fuzzdrive/internal/vehicle"
	"github.com/pwasik/fuzzdrive/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt       float64
	duration float64
	target   float64
	mass     float64
	force    float64
	drag     float64
	onTrack  bool
	mode     string
	manual   float64

	// eval inputs
	speedErr float64
	accel    float64
	verbose  bool

	// surface sweep steps
	errStep   float64
	accelStep float64
	asCSV     bool

	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fuzzdrive",
		Short: "fuzzy throttle control simulation",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the live view when no command given
			if err := runLive(cmd, args); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fuzzdrive", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run closed-loop simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate the controller for one input pair",
		RunE:  evalController,
	}
	evalCmd.Flags().Float64Var(&speedErr, "error", 0, "speed error")
	evalCmd.Flags().Float64Var(&accel, "accel", 0, "acceleration")
	evalCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show rule firing trace")

	surfaceCmd := &cobra.Command{
		Use:   "surface",
		Short: "sweep the control surface over the input grid",
		RunE:  controlSurface,
	}
	surfaceCmd.Flags().Float64Var(&errStep, "error-step", 5.0, "speed error step")
	surfaceCmd.Flags().Float64Var(&accelStep, "accel-step", 2.5, "acceleration step")
	surfaceCmd.Flags().BoolVar(&asCSV, "csv", false, "emit CSV instead of a table")

	membershipsCmd := &cobra.Command{
		Use:   "memberships",
		Short: "plot the membership functions",
		RunE:  plotMemberships,
	}

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "print the rule base",
		RunE:  printRules,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run history to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run history to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, evalCmd, surfaceCmd, membershipsCmd, rulesCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&target, "target", config.DefaultTargetSpeed, "target speed")
	cmd.Flags().Float64Var(&mass, "mass", vehicle.DefaultMass, "vehicle mass")
	cmd.Flags().Float64Var(&force, "force", vehicle.DefaultMaxDriveForce, "max drive force")
	cmd.Flags().Float64Var(&drag, "drag", vehicle.DefaultDragCoeff, "drag coefficient")
	cmd.Flags().BoolVar(&onTrack, "track", false, "follow the oval track speed profile")
	cmd.Flags().StringVar(&mode, "mode", "fuzzy", "throttle source (fuzzy|manual)")
	cmd.Flags().Float64Var(&manual, "throttle", 50.0, "manual throttle percentage")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file, and CLI flags, in that order of
// increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Loop.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Loop.Duration = duration
	}
	if cmd.Flags().Changed("target") {
		cfg.Loop.TargetSpeed = target
	}
	if cmd.Flags().Changed("mass") {
		cfg.Vehicle.Mass = mass
	}
	if cmd.Flags().Changed("force") {
		cfg.Vehicle.MaxDriveForce = force
	}
	if cmd.Flags().Changed("drag") {
		cfg.Vehicle.DragCoeff = drag
	}
	if cmd.Flags().Changed("track") {
		cfg.Track.Enabled = onTrack
	}
	if cmd.Flags().Changed("mode") {
		cfg.Controller.Mode = mode
	}
	if cmd.Flags().Changed("throttle") {
		cfg.Controller.ManualThrottle = manual
	}

	return cfg, nil
}

// buildLoop assembles the controller, car, track, and loop from a config.
func buildLoop(cfg *config.Config) (*drive.Loop, *fuzzy.Controller, *track.Oval, error) {
	fc := fuzzy.DefaultConfig()
	if cfg.Controller.Resolution > 0 {
		fc.Resolution = cfg.Controller.Resolution
	}
	controller, err := fuzzy.New(fc)
	if err != nil {
		return nil, nil, nil, err
	}

	car, err := vehicle.NewWithParams(cfg.Vehicle.Mass, cfg.Vehicle.MaxDriveForce, cfg.Vehicle.DragCoeff, vehicle.State{
		Position: cfg.Vehicle.InitPosition,
		Speed:    cfg.Vehicle.InitSpeed,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	var source drive.ThrottleSource
	switch cfg.Controller.Mode {
	case "", "fuzzy":
		source = drive.Fuzzy{Controller: controller}
	case "manual":
		source = drive.NewManual(cfg.Controller.ManualThrottle)
	default:
		return nil, nil, nil, fmt.Errorf("unknown throttle mode: %s", cfg.Controller.Mode)
	}

	loop := drive.NewLoop(source, car, cfg.Loop.TargetSpeed)

	var circuit *track.Oval
	if cfg.Track.Enabled {
		circuit, err = track.NewOvalWithParams(cfg.Track.Width, cfg.Track.Height, cfg.Track.CornerSpeed, cfg.Track.StraightSpeed)
		if err != nil {
			return nil, nil, nil, err
		}
		loop.SetTargetFunc(circuit.TargetSpeed)
	}

	return loop, controller, circuit, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	loop, _, _, err := buildLoop(cfg)
	if err != nil {
		return err
	}
	loop.AddMetric(metrics.NewControlEffort())
	loop.AddMetric(metrics.NewOvershoot())
	loop.AddMetric(metrics.NewSettlingTime(2.0))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Println("running simulation...")
	start := time.Now()

	result, err := loop.Run(context.Background(), drive.Config{Dt: cfg.Loop.Dt, Duration: cfg.Loop.Duration})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Controller.Mode, cfg.Loop.Dt, cfg.Loop.Duration, cfg.Loop.TargetSpeed, cfg.Track.Enabled, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", len(result.Samples))
	if n := len(result.Samples); n > 0 {
		last := result.Samples[n-1]
		fmt.Printf("final speed: %.2f (target %.2f)\n", last.Speed, last.Target)
	}
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, result.Metrics[name])
	}

	return nil
}

func evalController(cmd *cobra.Command, args []string) error {
	controller := fuzzy.Default()
	ev := controller.Evaluate(speedErr, accel)

	fmt.Printf("speed error: %.2f\n", ev.SpeedError)
	fmt.Printf("acceleration: %.2f\n", ev.Accel)
	fmt.Printf("throttle: %.2f\n", ev.Throttle)
	if !ev.Fired {
		fmt.Println("no rule fired; zero-throttle fallback applied")
	}

	if !verbose {
		return nil
	}

	cfg := controller.Config()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nRULE\tSTRENGTH")
	for i, r := range cfg.Rules {
		antecedent := r.Error
		if r.Accel != "" {
			antecedent += " AND " + r.Accel
		}
		fmt.Fprintf(w, "IF %s THEN %s\t%.3f\n", antecedent, r.Throttle, ev.Strengths[i])
	}
	fmt.Fprintln(w, "\nOUTPUT LABEL\tDEGREE")
	for _, s := range cfg.Throttle.Sets {
		fmt.Fprintf(w, "%s\t%.3f\n", s.Label, ev.Aggregate[s.Label])
	}
	return w.Flush()
}

func controlSurface(cmd *cobra.Command, args []string) error {
	if errStep <= 0 || accelStep <= 0 {
		return fmt.Errorf("sweep steps must be positive")
	}

	controller := fuzzy.Default()
	cfg := controller.Config()

	var accels []float64
	for a := cfg.Accel.Min; a <= cfg.Accel.Max+1e-9; a += accelStep {
		accels = append(accels, a)
	}

	if asCSV {
		w := csv.NewWriter(os.Stdout)
		defer w.Flush()
		header := []string{"speed_error"}
		for _, a := range accels {
			header = append(header, "accel_"+strconv.FormatFloat(a, 'g', -1, 64))
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for e := cfg.SpeedError.Min; e <= cfg.SpeedError.Max+1e-9; e += errStep {
			row := []string{strconv.FormatFloat(e, 'f', 2, 64)}
			for _, a := range accels {
				row = append(row, strconv.FormatFloat(controller.Compute(e, a), 'f', 2, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "ERR\\ACC")
	for _, a := range accels {
		fmt.Fprintf(w, "\t%.1f", a)
	}
	fmt.Fprintln(w)
	for e := cfg.SpeedError.Min; e <= cfg.SpeedError.Max+1e-9; e += errStep {
		fmt.Fprintf(w, "%.1f", e)
		for _, a := range accels {
			fmt.Fprintf(w, "\t%.1f", controller.Compute(e, a))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func plotMemberships(cmd *cobra.Command, args []string) error {
	cfg := fuzzy.DefaultConfig()
	for _, v := range []fuzzy.Variable{cfg.SpeedError, cfg.Accel, cfg.Throttle} {
		fmt.Println(viz.MembershipGraph(v, 72, 8))
		fmt.Println()
	}
	return nil
}

func printRules(cmd *cobra.Command, args []string) error {
	cfg := fuzzy.DefaultConfig()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSPEED ERROR\tACCELERATION\tTHROTTLE")
	for i, r := range cfg.Rules {
		acc := r.Accel
		if acc == "" {
			acc = "any"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, r.Error, acc, r.Throttle)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	loop, controller, circuit, err := buildLoop(cfg)
	if err != nil {
		return err
	}

	if frameRate <= 0 {
		frameRate = 30
	}
	m := viz.NewModel(loop, controller, circuit, cfg.Loop.Dt, frameRate)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tMODE\tDT\tDURATION\tTARGET\tTRACK")

	for _, run := range runs {
		trackMark := ""
		if run.Track {
			trackMark = "oval"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3fs\t%.1fs\t%.1f\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mode,
			run.Dt,
			run.Duration,
			run.TargetSpeed,
			trackMark,
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

	samples, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	panes := []struct {
		caption string
		pick    func(s drive.Sample) float64
	}{
		{"speed", func(s drive.Sample) float64 { return s.Speed }},
		{"speed error", func(s drive.Sample) float64 { return s.SpeedError }},
		{"throttle", func(s drive.Sample) float64 { return s.Throttle }},
		{"acceleration", func(s drive.Sample) float64 { return s.Acceleration }},
	}

	for _, pane := range panes {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = pane.pick(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(pane.caption+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	samples, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "position", "speed", "acceleration", "target", "speed_error", "throttle"}); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			strconv.FormatFloat(s.Position, 'f', 6, 64),
			strconv.FormatFloat(s.Speed, 'f', 6, 64),
			strconv.FormatFloat(s.Acceleration, 'f', 6, 64),
			strconv.FormatFloat(s.Target, 'f', 6, 64),
			strconv.FormatFloat(s.SpeedError, 'f', 6, 64),
			strconv.FormatFloat(s.Throttle, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, samples, meta.Metrics)
}
