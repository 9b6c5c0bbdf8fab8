package metabolics

import (
	"math"
	"path/filepath"
	"testing"

	"osimkit/internal/sto"
)

func writeResultsFixture(t *testing.T, labels []string, rows [][]float64) string {
	t.Helper()
	table := &sto.Table{Name: "ProbeReporter_probes", Labels: labels, Rows: rows}
	path := filepath.Join(t.TempDir(), "ProbeReporter_probes.sto")
	if err := sto.WriteTable(path, table); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}
	return path
}

func TestCalculateCostConstantPower(t *testing.T) {
	// constant 250 W over 2 s
	path := writeResultsFixture(t,
		[]string{"time", "whole_body_metabolics"},
		[][]float64{
			{0.0, 250.0},
			{0.5, 250.0},
			{1.0, 250.0},
			{1.5, 250.0},
			{2.0, 250.0},
		})

	results, err := CalculateCost(path)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 keys, got %d (%v)", len(results), results)
	}
	if results[KeyMeanPower] != 250.0 {
		t.Errorf("expected mean power 250, got %f", results[KeyMeanPower])
	}
	if results[KeyDuration] != 2.0 {
		t.Errorf("expected duration 2, got %f", results[KeyDuration])
	}
	if results[KeyTotalEnergy] != 500.0 {
		t.Errorf("expected total energy 500, got %f", results[KeyTotalEnergy])
	}
}

func TestCalculateCostVaryingPower(t *testing.T) {
	path := writeResultsFixture(t,
		[]string{"time", "soleus_r_metabolics", "whole_body_metabolics"},
		[][]float64{
			{0.0, 10.0, 100.0},
			{0.5, 20.0, 200.0},
			{1.0, 30.0, 300.0},
		})

	results, err := CalculateCost(path)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	if math.Abs(results[KeyMeanPower]-200.0) > 1e-12 {
		t.Errorf("expected mean power 200, got %f", results[KeyMeanPower])
	}
	if math.Abs(results[KeyTotalEnergy]-200.0) > 1e-12 {
		t.Errorf("expected total energy 200, got %f", results[KeyTotalEnergy])
	}
}

func TestCalculateCostMissingColumn(t *testing.T) {
	path := writeResultsFixture(t,
		[]string{"time", "soleus_r_metabolics"},
		[][]float64{{0.0, 10.0}, {1.0, 20.0}})

	results, err := CalculateCost(path)
	if err != nil {
		t.Fatalf("expected soft fail, got error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results, got %v", results)
	}
}

func TestCalculateCostUnreadableFile(t *testing.T) {
	if _, err := CalculateCost(filepath.Join(t.TempDir(), "absent.sto")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
