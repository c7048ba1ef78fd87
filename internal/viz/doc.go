// Package viz renders analysis results in the terminal: asciigraph
// trajectory plots, a lipgloss-styled sensitivity table with index
// bars, and a Bubble Tea live progress view for long batches.
package viz
