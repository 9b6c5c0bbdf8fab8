package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"osimkit/internal/catalog"
	"osimkit/internal/config"
	"osimkit/internal/metabolics"
	"osimkit/internal/osim"
	"osimkit/internal/project"
	"osimkit/internal/report"
	"osimkit/internal/sto"
	"osimkit/internal/tui"
)

var (
	dataDir    string
	configFile string

	probeType  string
	outPath    string
	outputDir  string
	opensimCmd string

	modelFile  string
	statesFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "osimkit",
		Short: "opensim metabolics analysis automation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	initCmd := &cobra.Command{
		Use:   "init [base_dir]",
		Short: "create the standard project structure",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initProject,
	}

	probesCmd := &cobra.Command{
		Use:   "probes [model.osim]",
		Short: "attach metabolic probes to a model",
		Args:  cobra.ExactArgs(1),
		RunE:  addProbes,
	}
	probesCmd.Flags().StringVar(&outPath, "out", "", "output model path (default <model>_probes.osim)")
	probesCmd.Flags().StringVar(&probeType, "type", config.DefaultProbeType, "probe kind (Umberger2010 or Bhargava2004)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [model.osim] [states.sto]",
		Short: "run the probe analysis over a states file",
		Args:  cobra.ExactArgs(2),
		RunE:  analyzeStates,
	}
	analyzeCmd.Flags().StringVar(&outputDir, "out", "metabolics", "results directory")
	analyzeCmd.Flags().StringVar(&opensimCmd, "opensim-cmd", config.DefaultCmd, "opensim command-line binary")

	summaryCmd := &cobra.Command{
		Use:   "summary [metabolics.sto]",
		Short: "summarize whole-body metabolic cost",
		Args:  cobra.ExactArgs(1),
		RunE:  summarize,
	}
	summaryCmd.Flags().StringVar(&outputDir, "out", "", "also write results_summary.json under this directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the full metabolics pipeline",
		RunE:  runPipeline,
	}
	runCmd.Flags().StringVar(&modelFile, "model", "", "input model (.osim)")
	runCmd.Flags().StringVar(&statesFile, "states", "", "states file (.sto)")
	runCmd.Flags().StringVar(&outputDir, "out", "", "results directory (default <data>/results/metabolics)")
	runCmd.Flags().StringVar(&probeType, "type", config.DefaultProbeType, "probe kind")
	runCmd.Flags().StringVar(&opensimCmd, "opensim-cmd", config.DefaultCmd, "opensim command-line binary")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded analysis runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [metabolics.sto]",
		Short: "plot whole-body metabolic power",
		Args:  cobra.ExactArgs(1),
		RunE:  plotPower,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "browse recorded runs interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Browse(catalogPath())
		},
	}

	rootCmd.AddCommand(initCmd, probesCmd, analyzeCmd, summaryCmd, runCmd, runsCmd, plotCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func catalogPath() string {
	return filepath.Join(dataDir, "runs.db")
}

func initProject(cmd *cobra.Command, args []string) error {
	base := "."
	if len(args) > 0 {
		base = args[0]
	}
	_, err := project.Create(base)
	return err
}

func addProbes(cmd *cobra.Command, args []string) error {
	model := args[0]

	if err := project.VerifyFile(model, "input model"); err != nil {
		return err
	}

	kind, err := osim.ParseProbeKind(probeType)
	if err != nil {
		return err
	}

	out := outPath
	if out == "" {
		ext := filepath.Ext(model)
		out = model[:len(model)-len(ext)] + "_probes" + ext
	}

	_, err = osim.AddMetabolicProbes(model, out, kind)
	return err
}

func analyzeStates(cmd *cobra.Command, args []string) error {
	model, states := args[0], args[1]

	if err := project.VerifyFile(model, "model with probes"); err != nil {
		return err
	}
	if err := project.VerifyFile(states, "states file"); err != nil {
		return err
	}

	tool := &osim.AnalyzeTool{
		ModelFile:  model,
		StatesFile: states,
		ResultsDir: outputDir,
		Command:    opensimCmd,
	}
	_, err := tool.Run(context.Background())
	return err
}

func summarize(cmd *cobra.Command, args []string) error {
	metabolicsFile := args[0]

	if err := project.VerifyFile(metabolicsFile, "metabolics results file"); err != nil {
		return err
	}

	results, err := metabolics.CalculateCost(metabolicsFile)
	if err != nil {
		return err
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return err
		}
		if _, err := report.SaveSummary(outputDir, results); err != nil {
			return err
		}
	}
	return nil
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override config.
	if cmd.Flags().Changed("model") || cfg.ModelFile == "" {
		cfg.ModelFile = modelFile
	}
	if cmd.Flags().Changed("states") || cfg.StatesFile == "" {
		cfg.StatesFile = statesFile
	}
	if cmd.Flags().Changed("type") {
		cfg.ProbeType = probeType
	}
	if cmd.Flags().Changed("opensim-cmd") {
		cfg.OpenSimCmd = opensimCmd
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}

	if cfg.ModelFile == "" || cfg.StatesFile == "" {
		return fmt.Errorf("run requires --model and --states (or a config file)")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = project.ResultsDir(cfg.DataDir, "metabolics")
	}

	kind, err := osim.ParseProbeKind(cfg.ProbeType)
	if err != nil {
		return err
	}

	p := &metabolics.Pipeline{
		ModelFile:   cfg.ModelFile,
		StatesFile:  cfg.StatesFile,
		OutputDir:   cfg.OutputDir,
		ProbeKind:   kind,
		Command:     cfg.OpenSimCmd,
		CatalogPath: cfg.CatalogPath(),
	}

	result, err := p.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", result.RunID)
	fmt.Printf("results: %s\n", result.ResultsFile)
	fmt.Printf("summary: %s\n", result.SummaryFile)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cat, err := catalog.Open(ctx, catalogPath())
	if err != nil {
		return err
	}
	defer cat.Close()

	runs, err := cat.ListRuns(ctx)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBE\tTIME\tMEAN W\tTOTAL J\tDURATION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2fs\n",
			run.ID,
			run.ProbeKind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Metrics[metabolics.KeyMeanPower],
			run.Metrics[metabolics.KeyTotalEnergy],
			run.Metrics[metabolics.KeyDuration],
		)
	}

	return w.Flush()
}

func plotPower(cmd *cobra.Command, args []string) error {
	metabolicsFile := args[0]

	table, err := sto.ReadTable(metabolicsFile)
	if err != nil {
		return err
	}

	power, ok := table.Column(osim.WholeBodyProbe)
	if !ok {
		report.Warnf("%s column not found in %s", osim.WholeBodyProbe, metabolicsFile)
		return nil
	}
	if len(power) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("file: %s\n", metabolicsFile)
	fmt.Printf("samples: %d\n\n", len(power))

	graph := asciigraph.Plot(power,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("whole-body metabolic power (W) vs sample"),
	)
	fmt.Println(graph)

	return nil
}
