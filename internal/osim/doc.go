// Package osim is the boundary to the external OpenSim tooling.
//
// Models are OpenSim's native .osim XML documents, edited through a small
// generic DOM: the probe configurator attaches metabolics probe elements
// to a model's ProbeSet. Analysis runs are delegated to the external
// opensim-cmd executable, driven through a generated AnalyzeTool setup
// file and treated as a single atomic blocking call.
//
// Model handles are constructed from a file path, used for one operation,
// and discarded; nothing is cached across calls.
package osim
