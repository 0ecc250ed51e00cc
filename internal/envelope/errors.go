package envelope

import (
	"fmt"
	"strings"
)

// ConfigError reports an invalid or internally inconsistent configuration.
// It is always surfaced before any simulation work begins.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "envelope config: " + e.Msg }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// Stage identifies which collaborator failed during a simulation.
type Stage string

const (
	StageSample Stage = "sample"
	StageFit    Stage = "fit"
	StageRun    Stage = "run"
)

// CollabError wraps a collaborator failure for one simulation. The first
// observed CollabError aborts the whole computation; Sim is the 0-based
// index of the simulation whose pipeline failed.
type CollabError struct {
	Stage Stage
	Sim   int
	Err   error
}

func (e *CollabError) Error() string {
	return fmt.Sprintf("simulation %d: %s: %v", e.Sim, e.Stage, e.Err)
}

func (e *CollabError) Unwrap() error { return e.Err }

// PrecisionWarning is emitted when two requested quantile probabilities map
// to the same order-statistic index at the chosen simulation count. The
// computation still completes; the colliding envelope columns are equal.
type PrecisionWarning struct {
	NSimul  int       `json:"nsimul"`
	Probs   []float64 `json:"probs"`
	Indices []int     `json:"indices"`
}

func (w PrecisionWarning) String() string {
	parts := make([]string, len(w.Indices))
	for i, idx := range w.Indices {
		parts[i] = fmt.Sprintf("p=%g->%d", w.Probs[i], idx)
	}
	return fmt.Sprintf("quantile probabilities collide at nsimul=%d; increase nsimul for distinct order statistics (%s)",
		w.NSimul, strings.Join(parts, ", "))
}
