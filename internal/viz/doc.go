// Package viz renders quadrature results for the terminal.
//
// Styles are built with lipgloss and plots with asciigraph. All functions
// return strings so callers decide where output goes.
package viz
