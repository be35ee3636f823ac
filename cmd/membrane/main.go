package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/membrane/internal/analysis"
	"github.com/san-kum/membrane/internal/config"
	"github.com/san-kum/membrane/internal/engine"
	"github.com/san-kum/membrane/internal/experiment"
	"github.com/san-kum/membrane/internal/flux"
	"github.com/san-kum/membrane/internal/osmo"
	"github.com/san-kum/membrane/internal/storage"
	"github.com/san-kum/membrane/internal/viz"
)

var (
	dataDir    string
	radiusUm   float64
	gradient   float64
	tempC      float64
	capacity   int
	dt         float64
	duration   float64
	seed       int64
	window     float64
	regime     string
	formula    string
	configFile string
	preset     string
	validate   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "membrane",
		Short: "membrane diffusion particle simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// default to the live view with default parameters
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".membrane", "data directory")

	simFlags := func(cmd *cobra.Command) {
		cmd.Flags().Float64Var(&radiusUm, "radius", config.DefaultRadiusUm, "membrane radius (um)")
		cmd.Flags().Float64Var(&gradient, "gradient", config.DefaultGradient, "concentration gradient [0,1]")
		cmd.Flags().Float64Var(&tempC, "temp", config.DefaultTemperatureC, "temperature (C)")
		cmd.Flags().IntVar(&capacity, "capacity", config.DefaultCapacity, "particle pool capacity")
		cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
		cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
		cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
		cmd.Flags().Float64Var(&window, "window", config.DefaultWindow, "sampling window (s)")
		cmd.Flags().StringVar(&regime, "regime", config.DefaultRegime, "permeability regime")
		cmd.Flags().StringVar(&formula, "formula", config.DefaultFormula, "analytic formula for the readout estimate")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the samples",
		RunE:  runSimulation,
	}
	simFlags(runCmd)
	runCmd.Flags().BoolVar(&validate, "validate", false, "assert side-flag invariant every step")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation with live visualization",
		RunE:  runLive,
	}
	simFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's rate and occupancy series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "statistical summary of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "compare the analytic rate formulas over the radius range",
		RunE:  compareFormulas,
	}
	ratesCmd.Flags().Float64Var(&gradient, "gradient", config.DefaultGradient, "concentration gradient [0,1]")
	ratesCmd.Flags().Float64Var(&tempC, "temp", config.DefaultTemperatureC, "temperature (C)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, ratesCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset < config file < changed flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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

	if cmd.Flags().Changed("radius") {
		cfg.RadiusUm = radiusUm
	}
	if cmd.Flags().Changed("gradient") {
		cfg.Gradient = gradient
	}
	if cmd.Flags().Changed("temp") {
		cfg.TemperatureC = tempC
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Capacity = capacity
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("window") {
		cfg.Window = window
	}
	if cmd.Flags().Changed("regime") {
		cfg.Regime = regime
	}
	if cmd.Flags().Changed("formula") {
		cfg.Formula = formula
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, nil
}

func setupExperiment(cfg *config.Config, withMetrics bool) (*experiment.Experiment, experiment.Config, error) {
	registry := experiment.NewRegistry()
	perm, err := registry.GetRegime(cfg.Regime)
	if err != nil {
		return nil, experiment.Config{}, err
	}

	expCfg := experiment.Config{
		Params:   cfg.Params(),
		Capacity: cfg.Capacity,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Seed:     cfg.Seed,
		Window:   cfg.Window,
		Validate: validate,
	}

	exp := experiment.New(expCfg)
	ms := registry.DefaultMetrics()
	if !withMetrics {
		ms = nil
	}
	if err := exp.Setup(perm, ms); err != nil {
		return nil, experiment.Config{}, err
	}
	return exp, expCfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, expCfg, err := setupExperiment(cfg, true)
	if err != nil {
		return err
	}

	fmt.Printf("running membrane simulation (radius=%.1fum gradient=%.2f temp=%.1fC regime=%s)...\n",
		expCfg.Params.RadiusUm, expCfg.Params.Gradient, expCfg.Params.TemperatureC, cfg.Regime)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(expCfg, cfg.Regime, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, samples: %d\n", result.StepsTaken, len(result.Samples))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	// analytic readout paired with (but independent of) the particle sim
	registry := experiment.NewRegistry()
	if f, err := registry.GetFormula(cfg.Formula); err == nil {
		p := expCfg.Params
		fmt.Printf("\nanalytic %s rate: %.3f\n", f.Name(), f.Rate(p.RadiusUm, p.Gradient, p.TemperatureC))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	perm, err := registry.GetRegime(cfg.Regime)
	if err != nil {
		return err
	}

	pool := osmo.NewPool(cfg.Capacity)
	rng := osmo.NewRand(cfg.Seed)
	eng := engine.New(pool, perm, rng, cfg.Window)
	eng.Configure(cfg.Params())

	return viz.RunLive(eng, cfg.Dt)
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
	fmt.Fprintln(w, "ID\tTIME\tRADIUS\tGRADIENT\tTEMP\tREGIME\tDURATION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1fum\t%.2f\t%.1fC\t%s\t%.1fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.RadiusUm,
			run.Params.Gradient,
			run.Params.TemperatureC,
			run.Regime,
			run.Duration,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []experiment.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("gradient: %.2f, radius: %.1fum, regime: %s\n\n", meta.Params.Gradient, meta.Params.RadiusUm, meta.Regime)

	inRates := make([]float64, len(samples))
	outRates := make([]float64, len(samples))
	fracs := make([]float64, len(samples))
	for i, s := range samples {
		inRates[i] = s.InRate
		outRates[i] = s.OutRate
		fracs[i] = osmo.Occupancy{Inside: s.Inside, Outside: s.Outside}.InsideFraction()
	}

	series := []struct {
		data    []float64
		caption string
	}{
		{inRates, "in rate (crossings/s)"},
		{outRates, "out rate (crossings/s)"},
		{fracs, "inside fraction"},
	}
	for _, sr := range series {
		graph := asciigraph.Plot(sr.data,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data")
	}

	times := make([]float64, len(samples))
	inRates := make([]float64, len(samples))
	outRates := make([]float64, len(samples))
	fracs := make([]float64, len(samples))
	for i, s := range samples {
		times[i] = s.Time
		inRates[i] = s.InRate
		outRates[i] = s.OutRate
		fracs[i] = osmo.Occupancy{Inside: s.Inside, Outside: s.Outside}.InsideFraction()
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("gradient: %.2f, regime: %s\n\n", meta.Params.Gradient, meta.Regime)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMEAN\tSTDDEV\tTREND")
	for _, sr := range []struct {
		name string
		data []float64
	}{
		{"in_rate", inRates},
		{"out_rate", outRates},
		{"inside_fraction", fracs},
	} {
		mean, std := analysis.SeriesStats(sr.data)
		_, slope := analysis.Trend(times, sr.data)
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%+.5f/s\n", sr.name, mean, std, slope)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	target := engine.InsideTargetFraction(meta.Params.Gradient)
	eq := analysis.EquilibrationTime(times, fracs, target, 0.05)
	if eq >= 0 {
		fmt.Printf("\nsettled within 0.05 of target fraction %.2f at t=%.1fs\n", target, eq)
	} else {
		fmt.Printf("\nnot settled within 0.05 of target fraction %.2f\n", target)
	}

	ps := analysis.PowerSpectrum(inRates)
	if len(ps) > 2 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("in rate power spectrum"),
		)
		fmt.Println()
		fmt.Println(graph)
	}

	return nil
}

func compareFormulas(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	formulas := make([]flux.Formula, 0)
	for _, name := range registry.ListFormulas() {
		f, err := registry.GetFormula(name)
		if err != nil {
			return err
		}
		formulas = append(formulas, f)
	}

	fmt.Printf("analytic rates (gradient=%.2f temp=%.1fC)\n\n", gradient, tempC)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "RADIUS"
	for _, f := range formulas {
		header += "\t" + f.Name()
	}
	fmt.Fprintln(w, header)

	for r := flux.RadiusMinUm; r <= flux.RadiusMaxUm; r += 2 {
		row := fmt.Sprintf("%.0fum", r)
		for _, f := range formulas {
			row += fmt.Sprintf("\t%.3f", f.Rate(r, gradient, tempC))
		}
		fmt.Fprintln(w, row)
	}

	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}
