// Package analyzer derives statistical diagnostics from an annotated DC
// series: event distribution, temporal patterns, threshold sensitivity,
// regime asymmetry, clustering, overshoot, consecutive-run behavior and a
// textual summary report. All functions are read-only over their input and
// independent of each other.
package analyzer

import "DCSentinel/internal/logging"

// Analyzer bundles the analytics functions with an injected diagnostic
// logger. The zero value is usable and silent.
type Analyzer struct {
	Log logging.Logger
}

// New returns an Analyzer; a nil logger means no diagnostics.
func New(log logging.Logger) *Analyzer {
	if log == nil {
		log = logging.Nop{}
	}
	return &Analyzer{Log: log}
}

func (a *Analyzer) logger() logging.Logger {
	if a.Log == nil {
		return logging.Nop{}
	}
	return a.Log
}
