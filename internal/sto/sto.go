package sto

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadTable parses an OpenSim storage file (.sto or .mot): a key=value
// header block terminated by an endheader line, a whitespace-separated
// label row with time first, then one row of floats per sampled instant.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := &Table{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	inHeader := true
	for inHeader {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			return nil, fmt.Errorf("%s: %w", path, ErrNoHeader)
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "endheader":
			inHeader = false
		case strings.Contains(line, "="), line == "":
			// version=1, nRows=..., nColumns=..., inDegrees=no
		default:
			// first non key=value line is the storage name
			if t.Name == "" {
				t.Name = line
			}
		}
	}

	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: %w", path, ErrNoLabels)
	}
	t.Labels = strings.Fields(scanner.Text())
	if err := validateLabels(t.Labels); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != len(t.Labels) {
			return nil, fmt.Errorf("%s row %d: %w (%d values, %d labels)",
				path, len(t.Rows)+1, ErrRaggedRow, len(fields), len(t.Labels))
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w",
					path, len(t.Rows)+1, t.Labels[i], err)
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return t, nil
}

// WriteTable serializes a table back to the storage text format.
func WriteTable(path string, t *Table) error {
	if err := validateLabels(t.Labels); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	name := t.Name
	if name == "" {
		name = "table"
	}
	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "version=1\n")
	fmt.Fprintf(w, "nRows=%d\n", len(t.Rows))
	fmt.Fprintf(w, "nColumns=%d\n", len(t.Labels))
	fmt.Fprintf(w, "inDegrees=no\n")
	fmt.Fprintf(w, "endheader\n")

	fmt.Fprintf(w, "%s\n", strings.Join(t.Labels, "\t"))

	for _, row := range t.Rows {
		for i, v := range row {
			if i > 0 {
				w.WriteByte('\t')
			}
			w.WriteString(strconv.FormatFloat(v, 'f', 8, 64))
		}
		w.WriteByte('\n')
	}

	return w.Flush()
}
