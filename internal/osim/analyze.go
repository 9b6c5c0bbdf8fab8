package osim

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"osimkit/internal/report"
	"osimkit/internal/sto"
)

// DefaultCommand is the OpenSim command-line frontend used to run tools.
const DefaultCommand = "opensim-cmd"

// ProbeResultsFile is the fixed name of the ProbeReporter output table.
const ProbeResultsFile = "ProbeReporter_probes.sto"

const setupFile = "analyze_setup.xml"

// AnalyzeTool drives one external analysis run: it reports probe values at
// every time sample of the states file over exactly that file's time span.
// The run is a single blocking subprocess with no progress reporting;
// cancel it through the context if at all.
type AnalyzeTool struct {
	ModelFile  string
	StatesFile string
	ResultsDir string
	Command    string // opensim-cmd binary; DefaultCommand when empty
}

func (a *AnalyzeTool) command() string {
	if a.Command == "" {
		return DefaultCommand
	}
	return a.Command
}

// setup builds the AnalyzeTool setup document for the given time window.
func (a *AnalyzeTool) setup(first, last float64) *element {
	reporter := newElement("ProbeReporter")
	reporter.setAttr("name", "ProbeReporter")
	reporter.append(
		leafElement("on", "true"),
		leafElement("start_time", formatTime(first)),
		leafElement("end_time", formatTime(last)),
		leafElement("step_interval", "1"),
		leafElement("in_degrees", "true"),
	)

	analyses := newElement("AnalysisSet")
	analyses.setAttr("name", "Analyses")
	analyses.append(newElement("objects").append(reporter), newElement("groups"))

	tool := newElement("AnalyzeTool")
	tool.setAttr("name", "metabolics")
	tool.append(
		leafElement("model_file", a.ModelFile),
		leafElement("results_directory", a.ResultsDir),
		leafElement("states_file", a.StatesFile),
		leafElement("initial_time", formatTime(first)),
		leafElement("final_time", formatTime(last)),
		analyses,
	)

	root := newElement("OpenSimDocument")
	root.setAttr("Version", "40000")
	root.append(tool)
	return root
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', 8, 64)
}

// Run executes the analysis and returns the path of the probe results
// table. Any failure to complete the run wraps ErrAnalysisFailure.
func (a *AnalyzeTool) Run(ctx context.Context) (string, error) {
	if err := os.MkdirAll(a.ResultsDir, 0755); err != nil {
		return "", fmt.Errorf("%w: results dir: %v", ErrAnalysisFailure, err)
	}

	states, err := sto.ReadTable(a.StatesFile)
	if err != nil {
		return "", fmt.Errorf("%w: states file: %v", ErrAnalysisFailure, err)
	}
	if states.Empty() {
		return "", fmt.Errorf("%w: %s: %w", ErrAnalysisFailure, a.StatesFile, ErrEmptyStates)
	}

	// The model must at least parse before we hand it to the external tool.
	if _, err := LoadModel(a.ModelFile); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAnalysisFailure, err)
	}

	setupPath := filepath.Join(a.ResultsDir, setupFile)
	if err := writeDocument(setupPath, a.setup(states.FirstTime(), states.LastTime())); err != nil {
		return "", fmt.Errorf("%w: write setup: %v", ErrAnalysisFailure, err)
	}

	cmd := exec.CommandContext(ctx, a.command(), "run-tool", setupPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w: %s run-tool: %v\n%s", ErrAnalysisFailure, a.command(), err, out)
	}

	resultsFile := filepath.Join(a.ResultsDir, ProbeResultsFile)
	if _, err := os.Stat(resultsFile); err != nil {
		return "", fmt.Errorf("%w: run produced no %s", ErrAnalysisFailure, ProbeResultsFile)
	}

	report.Successf("metabolic analysis complete: %s", resultsFile)
	return resultsFile, nil
}

// AnalyzeMetabolics runs the probe analysis for a model that already
// carries metabolic probes, over the full time span of statesFile, writing
// results under outputDir.
func AnalyzeMetabolics(ctx context.Context, modelWithProbes, statesFile, outputDir string) (string, error) {
	tool := &AnalyzeTool{
		ModelFile:  modelWithProbes,
		StatesFile: statesFile,
		ResultsDir: outputDir,
	}
	return tool.Run(ctx)
}
