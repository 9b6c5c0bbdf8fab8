package metabolics

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"osimkit/internal/catalog"
	"osimkit/internal/osim"
	"osimkit/internal/project"
	"osimkit/internal/report"
)

// Pipeline chains the full metabolics workflow for one invocation:
// attach probes, run the external analysis over the states file's time
// span, summarize the whole-body column, persist the JSON summary, and
// optionally record the run in a catalog. Each step feeds the next by
// file path; nothing is shared across invocations.
type Pipeline struct {
	ModelFile   string
	StatesFile  string
	OutputDir   string
	ProbeKind   osim.ProbeKind
	Command     string // opensim-cmd binary override
	CatalogPath string // empty disables run recording
}

// Result collects the artifacts of one pipeline run.
type Result struct {
	ProbedModel string
	ResultsFile string
	SummaryFile string
	RunID       string
	Metrics     map[string]float64
}

func probedModelPath(modelFile, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(modelFile), filepath.Ext(modelFile))
	return filepath.Join(outputDir, base+"_probes.osim")
}

// Run executes the pipeline. Inputs are verified before any work; a
// missing whole-body column downstream still soft-fails into an empty
// metrics map, mirroring the summary calculator.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := project.VerifyFile(p.ModelFile, "input model"); err != nil {
		return nil, err
	}
	if err := project.VerifyFile(p.StatesFile, "states file"); err != nil {
		return nil, err
	}

	probedModel, err := osim.AddMetabolicProbes(p.ModelFile, probedModelPath(p.ModelFile, p.OutputDir), p.ProbeKind)
	if err != nil {
		return nil, err
	}

	tool := &osim.AnalyzeTool{
		ModelFile:  probedModel,
		StatesFile: p.StatesFile,
		ResultsDir: p.OutputDir,
		Command:    p.Command,
	}
	resultsFile, err := tool.Run(ctx)
	if err != nil {
		return nil, err
	}

	metrics, err := CalculateCost(resultsFile)
	if err != nil {
		return nil, err
	}

	summaryFile, err := report.SaveSummary(p.OutputDir, metrics)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ProbedModel: probedModel,
		ResultsFile: resultsFile,
		SummaryFile: summaryFile,
		Metrics:     metrics,
	}

	if p.CatalogPath != "" {
		if err := p.record(ctx, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (p *Pipeline) record(ctx context.Context, result *Result) error {
	if dir := filepath.Dir(p.CatalogPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	cat, err := catalog.Open(ctx, p.CatalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	result.RunID = catalog.NewRunID(p.ModelFile)
	return cat.SaveRun(ctx, catalog.Run{
		ID:         result.RunID,
		ModelFile:  p.ModelFile,
		StatesFile: p.StatesFile,
		ProbeKind:  string(p.ProbeKind),
		ResultsDir: p.OutputDir,
		Timestamp:  time.Now().UTC(),
		Metrics:    result.Metrics,
	})
}
