package report

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SummaryFile is the fixed name of the results summary under an output
// directory.
const SummaryFile = "results_summary.json"

// SaveSummary writes a results dictionary as indented JSON to
// outputDir/results_summary.json and returns that path. The write is not
// atomic; a crash mid-write leaves a partial file, which is acceptable for
// batch use.
func SaveSummary(outputDir string, results map[string]float64) (string, error) {
	path := filepath.Join(outputDir, SummaryFile)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}

	Successf("results summary saved: %s", path)
	return path, nil
}

// LoadSummary reads a results dictionary back from a summary file.
func LoadSummary(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results map[string]float64
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}
