package osim

import (
	"fmt"
	"os"
	"path/filepath"
)

// Model is an in-memory .osim model document. It is constructed from a
// file path, mutated, saved, and discarded; nothing caches models across
// calls.
type Model struct {
	root *element // OpenSimDocument
	body *element // Model
	path string
}

// LoadModel reads and parses a .osim model file.
func LoadModel(path string) (*Model, error) {
	root, err := parseDocument(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	body := root.child("Model")
	if body == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoModel)
	}
	return &Model{root: root, body: body, path: path}, nil
}

// Name returns the model's name attribute.
func (m *Model) Name() string {
	return m.body.attr("name")
}

// Path returns the file the model was loaded from.
func (m *Model) Path() string {
	return m.path
}

// Muscles enumerates the model's muscle names in document order. Any
// ForceSet object whose element name ends in "Muscle" counts; OpenSim
// muscle classes (Thelen2003Muscle, Millard2012EquilibriumMuscle, ...)
// all follow that convention.
func (m *Model) Muscles() []string {
	forceSet := m.body.child("ForceSet")
	if forceSet == nil {
		return nil
	}
	objects := forceSet.child("objects")
	if objects == nil {
		return nil
	}
	var muscles []string
	for _, obj := range objects.Children {
		name := obj.XMLName.Local
		if len(name) >= 6 && name[len(name)-6:] == "Muscle" {
			muscles = append(muscles, obj.attr("name"))
		}
	}
	return muscles
}

// Probes returns the names of the probes currently attached to the model.
func (m *Model) Probes() []string {
	probeSet := m.body.child("ProbeSet")
	if probeSet == nil {
		return nil
	}
	objects := probeSet.child("objects")
	if objects == nil {
		return nil
	}
	var names []string
	for _, obj := range objects.Children {
		names = append(names, obj.attr("name"))
	}
	return names
}

// AddProbe attaches a probe element to the model's ProbeSet, creating the
// set if the model has none.
func (m *Model) AddProbe(probe *element) {
	probeSet := m.body.ensureChild("ProbeSet")
	objects := probeSet.ensureChild("objects")
	probeSet.ensureChild("groups")
	objects.Children = append(objects.Children, probe)
}

// Save serializes the model to path in the native XML format, creating
// parent directories as needed.
func (m *Model) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := writeDocument(path, m.root); err != nil {
		return fmt.Errorf("save model %s: %w", path, err)
	}
	return nil
}
