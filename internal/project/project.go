package project

import (
	"os"
	"path/filepath"

	"osimkit/internal/report"
)

// Dirs is a nested directory specification: interior keys name groups,
// leaves are paths to create. It is built per call and never retained.
type Dirs map[string]any

// Layout returns the standard result tree for an analysis project rooted
// at baseDir.
func Layout(baseDir string) Dirs {
	results := filepath.Join(baseDir, "data", "results")
	return Dirs{
		"data": Dirs{
			"results": Dirs{
				"scaling":    filepath.Join(results, "scaling"),
				"ik":         filepath.Join(results, "ik"),
				"id":         filepath.Join(results, "id"),
				"cmc":        filepath.Join(results, "cmc"),
				"metabolics": filepath.Join(results, "metabolics"),
				"rra":        filepath.Join(results, "rra"),
			},
		},
	}
}

// Create builds the standard project structure under baseDir, creating
// every leaf directory. Pre-existing directories are not an error, so the
// call is idempotent. Returns the layout that was created.
func Create(baseDir string) (Dirs, error) {
	dirs := Layout(baseDir)
	if err := makeDirs(dirs); err != nil {
		return nil, err
	}
	report.Successf("project structure created at: %s", baseDir)
	return dirs, nil
}

// makeDirs walks the specification depth-first. The layout is a literal
// constant, so no cycles are possible.
func makeDirs(d Dirs) error {
	for _, value := range d {
		switch v := value.(type) {
		case Dirs:
			if err := makeDirs(v); err != nil {
				return err
			}
		case string:
			if err := os.MkdirAll(v, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResultsDir resolves one of the named result leaves (scaling, ik, id,
// cmc, metabolics, rra) under baseDir.
func ResultsDir(baseDir, name string) string {
	return filepath.Join(baseDir, "data", "results", name)
}
