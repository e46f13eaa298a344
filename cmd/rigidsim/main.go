package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/analysis"
	"github.com/san-kum/rigidsim/internal/automation"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/export"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/logging"
	"github.com/san-kum/rigidsim/internal/optim"
	"github.com/san-kum/rigidsim/internal/scenario"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/viz"
)

var (
	dataDir  string
	verbose  bool
	file     string
	dt       float64
	duration float64
	seed     int64
	save     bool
	// plot
	bodyName string
	axis     string
	// sweep
	paramName string
	paramMin  float64
	paramMax  float64
	numSteps  int
	workers   int
	// montecarlo, divergence
	trials       int
	perturbation float64
	// tune
	gridSpecs []string
	metric    string
	target    float64
	// svg
	svgWidth  int
	svgHeight int
)

var logger *zap.SugaredLogger

func main() {
	rootCmd := &cobra.Command{
		Use:   "rigidsim",
		Short: "particle and rigid body simulation lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger = logging.NewDebugLogger("rigidsim")
			} else {
				logger = logging.NewLogger("rigidsim")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(logging.NewNop())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rigidsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a preset or scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", true, "save the run to the data directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a tracked body coordinate over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&bodyName, "body", "", "tracked body (default: first)")
	plotCmd.Flags().StringVar(&axis, "axis", "y", "coordinate to plot: x, y, z, vx, vy or vz")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trajectory to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset...]",
		Short: "time every preset (or the named ones)",
		RunE:  benchPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run a scenario across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&paramName, "param", "restitution", "parameter: "+strings.Join(automation.ListParams(), ", "))
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0: all CPUs)")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "run a scenario many times with jittered starting positions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addScenarioFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.1, "largest starting offset per axis")

	planCmd := &cobra.Command{
		Use:   "plan [file]",
		Short: "run a scripted plan of scenarios",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlan,
	}
	planCmd.Flags().BoolVar(&save, "save", true, "save every step to the data directory")

	treeCmd := &cobra.Command{
		Use:   "tree [preset]",
		Short: "print the broadphase hierarchy of a colliding scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printTree,
	}
	treeCmd.Flags().StringVar(&file, "file", "", "scenario file (yaml)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export tracked x/y paths of a run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "dominant frequencies of a tracked body coordinate",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}
	spectrumCmd.Flags().StringVar(&bodyName, "body", "", "tracked body (default: first)")
	spectrumCmd.Flags().StringVar(&axis, "axis", "y", "coordinate: x, y or z")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a tracked body coordinate",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&bodyName, "body", "", "tracked body (default: first)")
	phaseCmd.Flags().StringVar(&axis, "axis", "y", "coordinate: x, y or z")

	divergenceCmd := &cobra.Command{
		Use:   "divergence [preset]",
		Short: "estimate the largest Lyapunov exponent of a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDivergence,
	}
	addScenarioFlags(divergenceCmd)
	divergenceCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid search parameters so a metric approaches a target",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	addScenarioFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&gridSpecs, "grid", nil, "param=min:max:n (repeatable)")
	tuneCmd.Flags().StringVar(&metric, "metric", "peak_height", "metric to match")
	tuneCmd.Flags().Float64Var(&target, "target", 0, "target metric value")

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		benchCmd, liveCmd, sweepCmd, monteCarloCmd, planCmd, treeCmd,
		spectrumCmd, phaseCmd, divergenceCmd, tuneCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&file, "file", "", "scenario file (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "override timestep")
	cmd.Flags().Float64Var(&duration, "time", 0, "override duration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "override seed")
}

// loadScenario resolves a preset name or --file and applies flag overrides.
func loadScenario(cmd *cobra.Command, args []string) (*config.Scenario, error) {
	var sc *config.Scenario
	switch {
	case file != "":
		var err error
		if sc, err = config.Load(file); err != nil {
			return nil, err
		}
	case len(args) == 1:
		if sc = config.GetPreset(args[0]); sc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
		}
	default:
		return nil, fmt.Errorf("name a preset or pass --file")
	}

	if cmd.Flags().Changed("dt") {
		sc.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		sc.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		sc.Seed = seed
	}
	return sc, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("running %s...\n", sc.Name)
	start := time.Now()
	_, result, err := scenario.Run(cmd.Context(), sc, logger)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if save {
		id, err := openStore().Save(sc, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", id)
	}
	printResult(result)
	return nil
}

func printResult(result *sim.Result) {
	if len(result.Order) > 0 {
		fmt.Println("\nfinal state:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  BODY\tX\tY\tZ\tSPEED")
		for _, name := range result.Order {
			s, _ := result.Final(name)
			fmt.Fprintf(w, "  %s\t%.4f\t%.4f\t%.4f\t%.4f\n", name, s.Position[0], s.Position[1], s.Position[2], s.Velocity.Len())
		}
		w.Flush()
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	for _, err := range result.Errors {
		fmt.Printf("\nerror: %v\n", err)
	}
}

func openStore() *storage.Store {
	return storage.New(dataDir)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDT\tDURATION\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%g\t%gs\t%s\n", name, len(p.Bodies), p.Dt, p.Duration, p.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := openStore().List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tSTEPS\tBODIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			strings.Join(run.Bodies, ","),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := openStore()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	name := bodyName
	if name == "" {
		if len(meta.Bodies) == 0 {
			return fmt.Errorf("run %s tracked no bodies", meta.ID)
		}
		name = meta.Bodies[0]
	}

	var values []float64
	for _, r := range rows {
		if r.Body != name {
			continue
		}
		switch axis {
		case "x":
			values = append(values, r.X)
		case "y":
			values = append(values, r.Y)
		case "z":
			values = append(values, r.Z)
		case "vx":
			values = append(values, r.VX)
		case "vy":
			values = append(values, r.VY)
		case "vz":
			values = append(values, r.VZ)
		default:
			return fmt.Errorf("unknown axis %q", axis)
		}
	}
	if len(values) == 0 {
		return fmt.Errorf("run %s has no samples for body %q", meta.ID, name)
	}

	fmt.Printf("%s: %s.%s over %.2fs\n\n", meta.ID, name, axis, meta.Duration)
	graph := asciigraph.Plot(downsample(values, 100),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s %s", name, axis)),
	)
	fmt.Println(graph)
	return nil
}

// downsample keeps at most n evenly spaced values.
func downsample(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := openStore()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, *meta, rows)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	rows, err := openStore().LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, rows)
}

func benchPresets(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tBODIES\tSTEPS\tTIME\tSTEPS/SEC\tCONTACTS/STEP")
	for _, name := range names {
		sc := config.GetPreset(name)
		if sc == nil {
			return fmt.Errorf("unknown preset: %s", name)
		}

		start := time.Now()
		_, result, err := scenario.Run(cmd.Context(), sc, logging.NewNop())
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		elapsed := time.Since(start)

		total := 0
		for _, c := range result.Contacts {
			total += c
		}
		perStep := 0.0
		if result.StepsTaken > 0 {
			perStep = float64(total) / float64(result.StepsTaken)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.2f\n",
			name, len(sc.Bodies), result.StepsTaken, elapsed.Round(time.Microsecond),
			float64(result.StepsTaken)/elapsed.Seconds(), perStep)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	// the view owns the terminal
	quiet := logging.NewNop()
	return viz.Run(func() (*scenario.Scene, error) {
		return scenario.Build(sc.Clone(), quiet)
	})
}

func runSweep(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Scenario:  sc,
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  numSteps,
		Workers:   workers,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, logger)
	if err != nil {
		return err
	}

	var metricNames []string
	if len(results) > 0 {
		for name := range results[0].Metrics {
			metricNames = append(metricNames, name)
		}
		sort.Strings(metricNames)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(paramName)+"\t"+strings.ToUpper(strings.Join(metricNames, "\t"))+"\tERRORS")
	for _, r := range results {
		fmt.Fprintf(w, "%.4f", r.ParamValue)
		for _, name := range metricNames {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintf(w, "\t%d\n", len(r.Errors))
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Scenario:     sc,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         sc.Seed,
	}, logger)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("%s: %d trials, %d stable, %d unstable\n", sc.Name, len(results), stable, unstable)

	names := sc.TrackedBodies()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tSTABLE\t"+strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%t", r.TrialID, r.Seed, r.Stable)
		for _, name := range names {
			p := r.Final[name].Position
			fmt.Fprintf(w, "\t(%.2f, %.2f, %.2f)", p[0], p[1], p[2])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runPlan(cmd *cobra.Command, args []string) error {
	plan, err := automation.LoadPlan(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("plan %s: %d steps\n", plan.Name, len(plan.Steps))

	results, err := automation.RunPlan(cmd.Context(), plan, filepath.Dir(args[0]), logger)
	for i, r := range results {
		line := fmt.Sprintf("  %d. %s: %d steps", i+1, r.Scenario.Name, r.Result.StepsTaken)
		if save {
			id, serr := openStore().Save(r.Scenario, r.Result)
			if serr != nil {
				return serr
			}
			line += " -> " + id
		}
		fmt.Println(line)
	}
	return err
}

func printTree(cmd *cobra.Command, args []string) error {
	var sc *config.Scenario
	switch {
	case file != "":
		var err error
		if sc, err = config.Load(file); err != nil {
			return err
		}
	case len(args) == 1:
		if sc = config.GetPreset(args[0]); sc == nil {
			return fmt.Errorf("unknown preset: %s", args[0])
		}
	default:
		sc = config.GetPreset("pile")
	}

	scene, err := scenario.Build(sc, logger)
	if err != nil {
		return err
	}
	tree := scene.World.Broadphase()
	if tree == nil {
		return fmt.Errorf("%s does not enable collisions", sc.Name)
	}

	fmt.Printf("%s: %d bodies, %d nodes\n\n", sc.Name, tree.Len(), tree.NodeCount())
	fmt.Print(tree.String())
	pairs := tree.PotentialContacts(tree.Len() * tree.Len())
	fmt.Printf("\n%d potential contacts\n", len(pairs))
	return nil
}

// loadResult rebuilds a sim.Result from a saved run's trajectory.
func loadResult(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := openStore()
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	times, tracks := storage.Tracks(rows)
	return meta, &sim.Result{Times: times, Order: meta.Bodies, Tracks: tracks, StepsTaken: meta.Steps}, nil
}

func axisIndex(name string) (int, error) {
	switch name {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	}
	return 0, fmt.Errorf("unknown axis %q", name)
}

func pickBody(meta *storage.RunMetadata) (string, error) {
	if bodyName != "" {
		return bodyName, nil
	}
	if len(meta.Bodies) == 0 {
		return "", fmt.Errorf("run %s tracked no bodies", meta.ID)
	}
	return meta.Bodies[0], nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	return export.TrajectorySVG(os.Stdout, result, svgWidth, svgHeight)
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	name, err := pickBody(meta)
	if err != nil {
		return err
	}
	idx, err := axisIndex(axis)
	if err != nil {
		return err
	}

	freqs, amps, err := analysis.Spectrum(analysis.Column(result, name, idx, false), meta.Dt)
	if err != nil {
		return err
	}

	order := make([]int, 0, len(freqs)-1)
	for k := 1; k < len(freqs); k++ {
		order = append(order, k)
	}
	sort.Slice(order, func(i, j int) bool { return amps[order[i]] > amps[order[j]] })

	fmt.Printf("%s: %s.%s, %d samples at dt=%g\n\n", meta.ID, name, axis, len(result.Times), meta.Dt)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FREQ (Hz)\tPERIOD (s)\tAMPLITUDE")
	for _, k := range order[:min(5, len(order))] {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.6f\n", freqs[k], 1/freqs[k], amps[k])
	}
	return w.Flush()
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	name, err := pickBody(meta)
	if err != nil {
		return err
	}
	idx, err := axisIndex(axis)
	if err != nil {
		return err
	}
	points, err := analysis.PhasePortrait(result, name, idx)
	if err != nil {
		return err
	}

	vecs := make([]linalg.Vec3, len(points))
	for i, p := range points {
		vecs[i] = linalg.Vec3{p.X, p.V, 0}
	}
	canvas := viz.NewCanvas(60, 20)
	view := viz.FitViewport(vecs, 0)
	for i := 1; i < len(vecs); i++ {
		x0, y0 := view.ToPixel(vecs[i-1], canvas)
		x1, y1 := view.ToPixel(vecs[i], canvas)
		canvas.DrawLine(x0, y0, x1, y1)
	}

	fmt.Printf("%s: %s.%s against v%s\n", meta.ID, name, axis, axis)
	fmt.Printf("%s in [%.3f, %.3f], v%s in [%.3f, %.3f]\n\n", axis, view.MinX, view.MaxX, axis, view.MinY, view.MaxY)
	fmt.Print(canvas.String())
	return nil
}

func runDivergence(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	rate, err := analysis.Divergence(cmd.Context(), sc, analysis.DivergenceConfig{
		Perturbation: perturbation,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	verdict := "regular"
	if rate > 0.01 {
		verdict = "chaotic"
	}
	fmt.Printf("%s: largest Lyapunov exponent %.4f /s (%s)\n", sc.Name, rate, verdict)
	return nil
}

// parseGrid reads "name=min:max:n".
func parseGrid(spec string) (string, []float64, error) {
	name, rng, ok := strings.Cut(spec, "=")
	parts := strings.Split(rng, ":")
	if !ok || len(parts) != 3 {
		return "", nil, fmt.Errorf("grid %q: want param=min:max:n", spec)
	}
	lo, err1 := strconv.ParseFloat(parts[0], 64)
	hi, err2 := strconv.ParseFloat(parts[1], 64)
	n, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || n < 1 {
		return "", nil, fmt.Errorf("grid %q: want param=min:max:n", spec)
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func runTune(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if len(gridSpecs) == 0 {
		return fmt.Errorf("pass at least one --grid")
	}

	gs := &optim.GridSearch{Scenario: sc, Metric: metric, Target: target, Logger: logger}
	for _, spec := range gridSpecs {
		name, values, err := parseGrid(spec)
		if err != nil {
			return err
		}
		gs.Params = append(gs.Params, name)
		gs.Ranges = append(gs.Ranges, values)
	}

	best, err := gs.Search(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s = %.6f (target %.6f)\n", sc.Name, metric, best.Value, target)
	for _, name := range gs.Params {
		fmt.Printf("  %s = %.6f\n", name, best.Params[name])
	}
	return nil
}
