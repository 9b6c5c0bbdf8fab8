package metabolics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"osimkit/internal/catalog"
	"osimkit/internal/osim"
	"osimkit/internal/project"
	"osimkit/internal/sto"
)

const pipelineModel = `<?xml version="1.0" encoding="UTF-8" ?>
<OpenSimDocument Version="40000">
	<Model name="gait2392">
		<ForceSet name="forceset">
			<objects>
				<Thelen2003Muscle name="soleus_r"></Thelen2003Muscle>
			</objects>
		</ForceSet>
	</Model>
</OpenSimDocument>
`

func writePipelineInputs(t *testing.T) (modelPath, statesPath string) {
	t.Helper()
	dir := t.TempDir()

	modelPath = filepath.Join(dir, "gait2392.osim")
	if err := os.WriteFile(modelPath, []byte(pipelineModel), 0644); err != nil {
		t.Fatalf("write model failed: %v", err)
	}

	states := &sto.Table{
		Name:   "states",
		Labels: []string{"time", "hip_flexion_r"},
		Rows:   [][]float64{{0.0, 0.1}, {0.5, 0.2}, {1.0, 0.3}},
	}
	statesPath = filepath.Join(dir, "states.sto")
	if err := sto.WriteTable(statesPath, states); err != nil {
		t.Fatalf("write states failed: %v", err)
	}
	return modelPath, statesPath
}

func seedResults(t *testing.T, outputDir string) {
	t.Helper()
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	results := &sto.Table{
		Name:   "ProbeReporter_probes",
		Labels: []string{"time", osim.WholeBodyProbe},
		Rows:   [][]float64{{0.0, 150.0}, {0.5, 150.0}, {1.0, 150.0}},
	}
	if err := sto.WriteTable(filepath.Join(outputDir, osim.ProbeResultsFile), results); err != nil {
		t.Fatalf("seed results failed: %v", err)
	}
}

func TestPipelineRun(t *testing.T) {
	modelPath, statesPath := writePipelineInputs(t)
	outputDir := filepath.Join(t.TempDir(), "metabolics")
	seedResults(t, outputDir)

	p := &Pipeline{
		ModelFile:   modelPath,
		StatesFile:  statesPath,
		OutputDir:   outputDir,
		ProbeKind:   osim.Umberger2010,
		Command:     "true", // analysis results are pre-seeded
		CatalogPath: filepath.Join(t.TempDir(), "runs.db"),
	}

	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if result.Metrics[KeyMeanPower] != 150.0 {
		t.Errorf("expected mean power 150, got %f", result.Metrics[KeyMeanPower])
	}
	if result.Metrics[KeyDuration] != 1.0 {
		t.Errorf("expected duration 1, got %f", result.Metrics[KeyDuration])
	}

	model, err := osim.LoadModel(result.ProbedModel)
	if err != nil {
		t.Fatalf("load probed model failed: %v", err)
	}
	probes := model.Probes()
	if len(probes) != 2 {
		t.Errorf("expected 2 probes (1 muscle + whole body), got %v", probes)
	}

	if _, err := os.Stat(result.SummaryFile); err != nil {
		t.Errorf("expected summary file: %v", err)
	}

	cat, err := catalog.Open(context.Background(), p.CatalogPath)
	if err != nil {
		t.Fatalf("open catalog failed: %v", err)
	}
	defer cat.Close()

	run, ok, err := cat.GetRun(context.Background(), result.RunID)
	if err != nil || !ok {
		t.Fatalf("expected recorded run: ok=%v err=%v", ok, err)
	}
	if run.Metrics[KeyMeanPower] != 150.0 {
		t.Errorf("expected recorded mean power 150, got %f", run.Metrics[KeyMeanPower])
	}
}

func TestPipelineMissingModel(t *testing.T) {
	_, statesPath := writePipelineInputs(t)

	p := &Pipeline{
		ModelFile:  filepath.Join(t.TempDir(), "absent.osim"),
		StatesFile: statesPath,
		OutputDir:  t.TempDir(),
		ProbeKind:  osim.Umberger2010,
	}

	_, err := p.Run(context.Background())
	var missing *project.MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingFileError, got %v", err)
	}
}

func TestPipelineUnsupportedKind(t *testing.T) {
	modelPath, statesPath := writePipelineInputs(t)

	p := &Pipeline{
		ModelFile:  modelPath,
		StatesFile: statesPath,
		OutputDir:  filepath.Join(t.TempDir(), "out"),
		ProbeKind:  osim.ProbeKind("nope"),
	}

	_, err := p.Run(context.Background())
	if !errors.Is(err, osim.ErrUnsupportedVariant) {
		t.Fatalf("expected ErrUnsupportedVariant, got %v", err)
	}
}
