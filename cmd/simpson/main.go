package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/simpson/internal/analysis"
	"github.com/san-kum/simpson/internal/config"
	"github.com/san-kum/simpson/internal/integrands"
	"github.com/san-kum/simpson/internal/quad"
	"github.com/san-kum/simpson/internal/storage"
	"github.com/san-kum/simpson/internal/viz"
)

// Simpson's rule is fourth order for smooth integrands.
const expectedOrder = 4.0

var (
	dataDir string
	verbose bool
	// Interval and panels
	lower  float64
	upper  float64
	panels int
	params []string
	// Config file
	configFile string
	// Preset name
	preset string
	// Convergence study
	startN int
	levels int
	plot   bool
	// Additivity split
	split int
	save  bool

	logger = log.New(io.Discard, "simpson: ", log.Lmsgprefix)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the commands and flags of the simpson CLI. Without a
// subcommand it integrates e^x over [0, 1] with ten million panels and
// prints the result.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "simpson",
		Short: "composite Simpson quadrature lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetOutput(os.Stderr)
			}
		},
		RunE: runDemo,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".simpson", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	runCmd := &cobra.Command{
		Use:   "run [integrand]",
		Short: "integrate a named integrand",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIntegration,
	}
	addIntervalFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "store the run")

	convergeCmd := &cobra.Command{
		Use:   "converge [integrand]",
		Short: "error table over doubled panel counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConvergence,
	}
	addIntervalFlags(convergeCmd)
	convergeCmd.Flags().IntVar(&startN, "start", config.DefaultStartN, "first panel count")
	convergeCmd.Flags().IntVar(&levels, "levels", config.DefaultLevels, "number of doublings")
	convergeCmd.Flags().BoolVar(&plot, "plot", true, "plot log10 error")
	convergeCmd.Flags().BoolVar(&save, "save", false, "store the run and its table")

	checkCmd := &cobra.Command{
		Use:   "check [integrand]",
		Short: "sign reversal and additivity checks",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runChecks,
	}
	addIntervalFlags(checkCmd)
	checkCmd.Flags().IntVar(&split, "split", 0, "panels left of the additivity split (default n/2)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&plot, "plot", true, "plot log10 error")

	presetsCmd := &cobra.Command{
		Use:   "presets [integrand]",
		Short: "list available presets for an integrand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Fprintf(out, "no presets for integrand: %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "presets for %s:\n", args[0])
			for _, name := range names {
				p := config.GetPreset(args[0], name)
				fmt.Fprintf(out, "  %-12s [%g, %g] n=%d\n", name, p.A, p.B, p.N)
			}
			return nil
		},
	}

	integrandsCmd := &cobra.Command{
		Use:   "integrands",
		Short: "list known integrands",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			registry := integrands.NewRegistry()
			for _, name := range registry.List() {
				fmt.Fprintf(out, "  %-8s %s\n", name, viz.Subtle.Render(registry.Describe(name)))
			}
		},
	}

	rootCmd.AddCommand(runCmd, convergeCmd, checkCmd, listCmd, showCmd, presetsCmd, integrandsCmd)

	return rootCmd
}

func addIntervalFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&lower, "a", config.DefaultA, "lower bound")
	cmd.Flags().Float64Var(&upper, "b", config.DefaultB, "upper bound")
	cmd.Flags().IntVar(&panels, "n", config.DefaultPanels, "number of panels")
	cmd.Flags().StringSliceVar(&params, "param", nil, "integrand parameter as name=value")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func runDemo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := config.DefaultConfig()
	spec, err := integrands.NewRegistry().Get(cfg.Integrand, nil)
	if err != nil {
		return err
	}

	result, err := quad.Simpson(cfg.A, cfg.B, cfg.N, spec.F)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Result:", result)
	return nil
}

// resolveConfig applies, in increasing precedence, defaults, a preset, a
// config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Integrand = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Integrand, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Integrand))
		}
		logger.Printf("using preset %s/%s", cfg.Integrand, preset)
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Printf("loaded %s", configFile)
		if len(args) > 0 && fileCfg.Integrand != args[0] {
			logger.Printf("integrand %s overrides %s from config", args[0], fileCfg.Integrand)
			fileCfg.Integrand = args[0]
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("a") {
		cfg.A = lower
	}
	if flags.Changed("b") {
		cfg.B = upper
	}
	if flags.Changed("n") {
		cfg.N = panels
	}
	if flags.Changed("start") {
		cfg.Convergence.StartN = startN
	}
	if flags.Changed("levels") {
		cfg.Convergence.Levels = levels
	}
	if len(params) > 0 {
		parsed, err := parseParams(params)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(parsed))
		}
		for k, v := range parsed {
			cfg.Params[k] = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Printf("integrand=%s a=%g b=%g n=%d params=%v", cfg.Integrand, cfg.A, cfg.B, cfg.N, cfg.Params)
	return cfg, nil
}

func parseParams(kvs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(kvs))
	for _, kv := range kvs {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q (want name=value)", kv)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter %q: %w", kv, err)
		}
		out[name] = v
	}
	return out, nil
}

func runIntegration(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	spec, err := integrands.NewRegistry().Get(cfg.Integrand, cfg.Params)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := quad.Simpson(cfg.A, cfg.B, cfg.N, spec.F)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("∫ %s dx over [%g, %g]", spec.Description, cfg.A, cfg.B)))
	fmt.Fprintln(out, viz.Metric("panels", cfg.N))
	fmt.Fprintln(out, viz.Metric("result", strconv.FormatFloat(result, 'g', -1, 64)))

	var exactPtr *float64
	if exact, ok := spec.Exact(cfg.A, cfg.B); ok {
		exactPtr = &exact
		fmt.Fprintln(out, viz.Metric("exact", strconv.FormatFloat(exact, 'g', -1, 64)))
		fmt.Fprintln(out, viz.Metric("abs error", fmt.Sprintf("%.3e", math.Abs(result-exact))))
	}
	fmt.Fprintln(out, viz.Metric("elapsed", elapsed))

	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Integrand: cfg.Integrand,
		Params:    spec.Params,
		A:         cfg.A,
		B:         cfg.B,
		N:         cfg.N,
		Result:    result,
		Exact:     exactPtr,
		Elapsed:   elapsed,
	})
	if err != nil {
		return err
	}
	logger.Printf("saved run to %s/%s", dataDir, runID)
	fmt.Fprintln(out, viz.Metric("run id", runID))
	return nil
}

func runConvergence(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	spec, err := integrands.NewRegistry().Get(cfg.Integrand, cfg.Params)
	if err != nil {
		return err
	}
	exact, ok := spec.Exact(cfg.A, cfg.B)
	if !ok {
		return fmt.Errorf("integrand %s has no closed form to compare against", spec.Name)
	}

	start := time.Now()
	table, err := analysis.Converge(quad.NewSimpson(), spec.F, exact, cfg.A, cfg.B,
		cfg.Convergence.StartN, cfg.Convergence.Levels)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Printf("%d levels in %v", len(table), elapsed)

	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("convergence of ∫ %s dx over [%g, %g]", spec.Description, cfg.A, cfg.B)))
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.ConvergenceTable(table, expectedOrder))
	fmt.Fprintln(out)
	if plot {
		fmt.Fprintln(out, viz.ConvergencePlot(table, "log10 |error| per doubling"))
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, viz.Metric("order", fmt.Sprintf("%.3f", analysis.AsymptoticOrder(table))))

	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	last := table[len(table)-1]
	runID, err := st.Save(storage.Run{
		Integrand: cfg.Integrand,
		Params:    spec.Params,
		A:         cfg.A,
		B:         cfg.B,
		N:         last.N,
		Result:    last.Value,
		Exact:     &exact,
		Elapsed:   elapsed,
	})
	if err != nil {
		return err
	}
	if err := st.SaveConvergence(runID, table); err != nil {
		return err
	}
	logger.Printf("saved run to %s/%s", dataDir, runID)
	fmt.Fprintln(out, viz.Metric("run id", runID))
	return nil
}

func runChecks(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	spec, err := integrands.NewRegistry().Get(cfg.Integrand, cfg.Params)
	if err != nil {
		return err
	}

	rule := quad.NewSimpson()
	rev, err := analysis.CheckReversal(rule, spec.F, cfg.A, cfg.B, cfg.N)
	if err != nil {
		return err
	}

	checks := []analysis.Discrepancy{rev}
	if cfg.N > 1 {
		n1 := split
		if !cmd.Flags().Changed("split") {
			n1 = cfg.N / 2
		}
		add, err := analysis.CheckAdditivity(rule, spec.F, cfg.A, cfg.B, cfg.N, n1)
		if err != nil {
			return err
		}
		checks = append(checks, add)
	} else {
		logger.Printf("additivity needs n > 1, skipping")
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHECK\tLEFT\tRIGHT\tDIFF")
	for _, d := range checks {
		fmt.Fprintf(w, "%s\t%.16g\t%.16g\t%.3e\n", d.Name, d.Left, d.Right, d.Diff)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tINTEGRAND\tTIME\tA\tB\tN\tRESULT\tERROR")

	for _, run := range runs {
		errText := "-"
		if run.AbsError != nil {
			errText = fmt.Sprintf("%.2e", *run.AbsError)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%d\t%.12g\t%s\n",
			run.ID,
			run.Integrand,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.A,
			run.B,
			run.N,
			run.Result,
			errText,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return fmt.Errorf("run %s: %w", args[0], err)
	}

	fmt.Fprintln(out, viz.HeaderStyle.Render(meta.ID))
	fmt.Fprintln(out, viz.Metric("integrand", meta.Integrand))
	if len(meta.Params) > 0 {
		fmt.Fprintln(out, viz.Metric("params", meta.Params))
	}
	fmt.Fprintln(out, viz.Metric("interval", fmt.Sprintf("[%g, %g]", meta.A, meta.B)))
	fmt.Fprintln(out, viz.Metric("panels", meta.N))
	fmt.Fprintln(out, viz.Metric("result", strconv.FormatFloat(float64(meta.Result), 'g', -1, 64)))
	if meta.Exact != nil {
		fmt.Fprintln(out, viz.Metric("exact", strconv.FormatFloat(float64(*meta.Exact), 'g', -1, 64)))
	}
	if meta.AbsError != nil {
		fmt.Fprintln(out, viz.Metric("abs error", fmt.Sprintf("%.3e", *meta.AbsError)))
	}
	fmt.Fprintln(out, viz.Metric("elapsed", meta.Elapsed))

	table, err := st.LoadConvergence(meta.ID)
	if err != nil {
		return err
	}
	if len(table) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, viz.ConvergenceTable(table, expectedOrder))
	fmt.Fprintln(out, viz.ErrorSparkline(table))
	if plot {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.ConvergencePlot(table, "log10 |error| per doubling"))
	}
	return nil
}
