package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateProjectStructure(t *testing.T) {
	base := t.TempDir()

	dirs, err := Create(base)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if dirs == nil {
		t.Fatal("expected layout mapping")
	}

	for _, name := range []string{"scaling", "ik", "id", "cmc", "metabolics", "rra"} {
		path := filepath.Join(base, "data", "results", name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("expected directory %s: %v", path, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", path)
		}
	}
}

func TestCreateIdempotent(t *testing.T) {
	base := t.TempDir()

	if _, err := Create(base); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := Create(base); err != nil {
		t.Fatalf("second create failed: %v", err)
	}
}

func TestLayoutLeaves(t *testing.T) {
	dirs := Layout("/proj")

	data, ok := dirs["data"].(Dirs)
	if !ok {
		t.Fatal("expected data group")
	}
	results, ok := data["results"].(Dirs)
	if !ok {
		t.Fatal("expected results group")
	}
	if len(results) != 6 {
		t.Errorf("expected 6 result leaves, got %d", len(results))
	}

	leaf, ok := results["metabolics"].(string)
	if !ok || leaf != filepath.Join("/proj", "data", "results", "metabolics") {
		t.Errorf("unexpected metabolics leaf: %v", results["metabolics"])
	}
}

func TestVerifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.osim")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := VerifyFile(path, "input model"); err != nil {
		t.Errorf("expected existing file to verify, got %v", err)
	}
}

func TestVerifyFileMissing(t *testing.T) {
	err := VerifyFile(filepath.Join(t.TempDir(), "absent.sto"), "states file")
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var missing *MissingFileError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingFileError, got %T", err)
	}
	if missing.Description != "states file" {
		t.Errorf("expected description in error, got %q", missing.Description)
	}
	if !strings.Contains(err.Error(), "states file") || !strings.Contains(err.Error(), "absent.sto") {
		t.Errorf("expected description and path in message, got %q", err.Error())
	}
}
