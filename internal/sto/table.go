package sto

import (
	"errors"
	"fmt"
)

// Format violations surfaced by the reader. A malformed file is always a
// hard error; silently mis-mapping columns would corrupt every downstream
// statistic.
var (
	ErrNoHeader       = errors.New("sto: missing endheader line")
	ErrNoLabels       = errors.New("sto: missing column label line")
	ErrTimeNotFirst   = errors.New("sto: first column label must be time")
	ErrDuplicateLabel = errors.New("sto: duplicate column label")
	ErrRaggedRow      = errors.New("sto: row width does not match label count")
)

// TimeLabel is the mandatory first column of every storage table.
const TimeLabel = "time"

// Table is an in-memory storage table: an ordered time column plus named
// value columns, one row per sampled instant.
type Table struct {
	Name   string
	Labels []string    // time first, then value columns in file order
	Rows   [][]float64 // row-major, each row len(Labels) wide
}

func (t *Table) NumRows() int    { return len(t.Rows) }
func (t *Table) NumColumns() int { return len(t.Labels) }

func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// Time returns the time column.
func (t *Table) Time() []float64 {
	times := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		times[i] = row[0]
	}
	return times
}

func (t *Table) FirstTime() float64 {
	if t.Empty() {
		return 0
	}
	return t.Rows[0][0]
}

func (t *Table) LastTime() float64 {
	if t.Empty() {
		return 0
	}
	return t.Rows[len(t.Rows)-1][0]
}

// Duration is last sample time minus first sample time.
func (t *Table) Duration() float64 {
	return t.LastTime() - t.FirstTime()
}

// Column returns the values of the named column, or false if no column
// carries that exact label.
func (t *Table) Column(label string) ([]float64, bool) {
	idx := -1
	for i, l := range t.Labels {
		if l == label {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, true
}

// Mean returns the arithmetic mean of the named column.
func (t *Table) Mean(label string) (float64, bool) {
	values, ok := t.Column(label)
	if !ok || len(values) == 0 {
		return 0, ok && len(values) > 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Dict flattens the table into a label-to-values map, time included.
func (t *Table) Dict() map[string][]float64 {
	data := make(map[string][]float64, len(t.Labels))
	for i, label := range t.Labels {
		values := make([]float64, len(t.Rows))
		for j, row := range t.Rows {
			values[j] = row[i]
		}
		data[label] = values
	}
	return data
}

func validateLabels(labels []string) error {
	if len(labels) == 0 {
		return ErrNoLabels
	}
	if labels[0] != TimeLabel {
		return fmt.Errorf("%w, got %q", ErrTimeNotFirst, labels[0])
	}
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if seen[label] {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		seen[label] = true
	}
	return nil
}
