package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/forestlab/internal/config"
	"github.com/san-kum/forestlab/internal/experiment"
	"github.com/san-kum/forestlab/internal/export"
	"github.com/san-kum/forestlab/internal/storage"
	"github.com/san-kum/forestlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	model      string
	integrator string
	metric     string
	target     float64

	sampleSize int
	seed       uint64
	nboot      int
	workers    int

	c0        float64
	gridStart float64
	gridStop  float64
	gridCount int

	save        bool
	live        bool
	showOutputs bool

	svgOut   string
	svgWidth int
	trajOut  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "forestlab",
		Short: "forest carbon growth model and Sobol sensitivity analysis",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".forestlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "preset scenario name")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate one trajectory at the marginal means",
		RunE:  runTrajectory,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&trajOut, "svg", "", "write the trajectory as SVG to this file")

	sensCmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "run the full Sobol sensitivity analysis",
		RunE:  runSensitivity,
	}
	addScenarioFlags(sensCmd)
	sensCmd.Flags().BoolVar(&save, "save", false, "persist run outputs and indices")
	sensCmd.Flags().BoolVar(&live, "live", false, "show live batch progress")
	sensCmd.Flags().BoolVar(&showOutputs, "show-outputs", false, "plot the sorted output ensemble")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved analysis runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run's indices as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgOut, "out", "indices.svg", "output file")
	exportCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for name := range config.Presets {
				fmt.Println(name)
			}
			return nil
		},
	}

	componentsCmd := &cobra.Command{
		Use:   "components",
		Short: "list registered models, integrators and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := experiment.NewRegistry()
			fmt.Printf("models:      %s\n", strings.Join(r.ListModels(), ", "))
			fmt.Printf("integrators: %s\n", strings.Join(r.ListIntegrators(), ", "))
			fmt.Printf("metrics:     %s\n", strings.Join(r.ListMetrics(), ", "))
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, sensCmd, listCmd, exportCmd, presetsCmd, componentsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&model, "model", "growth", "growth model")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator")
	cmd.Flags().StringVar(&metric, "metric", "max", "output metric (max, value_at)")
	cmd.Flags().Float64Var(&target, "target", 100.0, "target time for value_at")
	cmd.Flags().IntVar(&sampleSize, "n", config.DefaultN, "base sample size")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().IntVar(&nboot, "boot", 0, "bootstrap replicates (0 = off)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = NumCPU)")
	cmd.Flags().Float64Var(&c0, "c0", config.DefaultC0, "initial carbon stock (kg)")
	cmd.Flags().Float64Var(&gridStart, "from", config.DefaultGridStart, "grid start (yr)")
	cmd.Flags().Float64Var(&gridStop, "to", config.DefaultGridStop, "grid stop (yr)")
	cmd.Flags().IntVar(&gridCount, "points", config.DefaultGridCount, "grid point count")
}

// resolveConfig layers preset, config file, and changed CLI flags, in
// that order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
		cfg = p.Clone()
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("model") {
		cfg.Model = model
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("metric") {
		cfg.Metric = metric
	}
	if cmd.Flags().Changed("target") {
		cfg.Target = target
	}
	if cmd.Flags().Changed("n") {
		cfg.N = sampleSize
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("boot") {
		cfg.NBoot = nboot
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("c0") {
		cfg.C0 = c0
	}
	if cmd.Flags().Changed("from") {
		cfg.Grid.Start = gridStart
	}
	if cmd.Flags().Changed("to") {
		cfg.Grid.Stop = gridStop
	}
	if cmd.Flags().Changed("points") {
		cfg.Grid.Count = gridCount
	}

	return cfg, nil
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	analysis := experiment.NewAnalysis(cfg.Scenario(), experiment.NewRegistry())

	series, metricVal, err := analysis.RunNominal(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotSeries(series, fmt.Sprintf("%s model, nominal parameters", cfg.Model)))
	fmt.Printf("\nfinal carbon: %.2f kg\n", series.Final())
	fmt.Printf("%s metric: %.4f\n", cfg.Metric, metricVal)

	if trajOut != "" {
		svg := export.SeriesToSVG(series, 640, 384, "#2f9e44")
		if err := os.WriteFile(trajOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", trajOut)
	}
	return nil
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	scenario := cfg.Scenario()
	registry := experiment.NewRegistry()
	analysis := experiment.NewAnalysis(scenario, registry)

	fmt.Printf("sampling %d parameter sets, %d model runs...\n",
		2*cfg.N, cfg.N*(len(cfg.Params)+2))
	start := time.Now()

	var outcome *experiment.Outcome
	if live {
		outcome, err = runWithLiveView(analysis, cfg)
	} else {
		outcome, err = analysis.Run(context.Background())
	}
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Println(viz.IndexTable(outcome.Result, cfg.NBoot > 0))

	if showOutputs {
		sorted := append([]float64(nil), outcome.Outputs...)
		sort.Float64s(sorted)
		fmt.Println()
		fmt.Println(viz.PlotOutputs(sorted, fmt.Sprintf("sorted %s outputs, %d runs", cfg.Metric, len(sorted))))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Model, cfg.Metric, cfg.Integrator, cfg.Seed, cfg.N, cfg.NBoot, outcome.Result, outcome.Outputs)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved as %s\n", runID)
	}

	return nil
}

func runWithLiveView(analysis *experiment.Analysis, cfg *config.Config) (*experiment.Outcome, error) {
	events := make(chan experiment.Progress, 64)
	analysis.OnProgress(func(p experiment.Progress) {
		select {
		case events <- p:
		default: // drop frames rather than stall workers
		}
	})

	type runResult struct {
		outcome *experiment.Outcome
		err     error
	}
	resultCh := make(chan runResult, 1)

	go func() {
		outcome, err := analysis.Run(context.Background())
		close(events)
		resultCh <- runResult{outcome, err}
	}()

	title := fmt.Sprintf("sensitivity: %s / %s, N=%d", cfg.Model, cfg.Metric, cfg.N)
	if _, err := tea.NewProgram(viz.NewLiveModel(title, events)).Run(); err != nil {
		return nil, err
	}

	res := <-resultCh
	return res.outcome, res.err
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
	fmt.Fprintln(w, "ID\tMODEL\tMETRIC\tTIME\tN\tNBOOT\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Metric,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.NBoot,
			run.Integrator,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if meta.Result == nil {
		return fmt.Errorf("run %s has no stored indices", args[0])
	}

	svg := export.IndicesToSVG(meta.Result, svgWidth, svgWidth*3/5)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}
