// Package sto reads and writes OpenSim storage files (.sto/.mot).
//
// A storage file is a column-oriented time series: a short text header
// terminated by "endheader", a label row whose first label is always
// "time", and one whitespace-separated row of floats per sampled instant.
// The reader validates the layout strictly (time first, unique labels,
// rectangular rows) rather than guessing at malformed input.
package sto
