package types

import (
	"fmt"
	"math"
)

// Table is a two-way contingency table: non-negative counts cross-tabulating
// two categorical variables. Entries are float64 so that fit-ready
// representations produced by a robust fitter can flow through the same type,
// but raw tables are expected to hold integer-valued counts.
type Table [][]float64

// NRows returns the number of rows.
func (t Table) NRows() int { return len(t) }

// NCols returns the number of columns (0 for an empty table).
func (t Table) NCols() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// Sum returns the grand total of all cells.
func (t Table) Sum() float64 {
	var s float64
	for _, row := range t {
		for _, v := range row {
			s += v
		}
	}
	return s
}

// N returns the grand total rounded to the nearest integer.
func (t Table) N() int { return int(math.Round(t.Sum())) }

// RowTotals returns the row marginals rounded to integers.
func (t Table) RowTotals() []int {
	out := make([]int, len(t))
	for i, row := range t {
		var s float64
		for _, v := range row {
			s += v
		}
		out[i] = int(math.Round(s))
	}
	return out
}

// ColTotals returns the column marginals rounded to integers.
func (t Table) ColTotals() []int {
	sums := make([]float64, t.NCols())
	for _, row := range t {
		for j, v := range row {
			sums[j] += v
		}
	}
	out := make([]int, len(sums))
	for j, s := range sums {
		out[j] = int(math.Round(s))
	}
	return out
}

// Validate checks that the table is non-empty, rectangular and non-negative.
func (t Table) Validate() error {
	if len(t) == 0 || len(t[0]) == 0 {
		return fmt.Errorf("table is empty")
	}
	ncol := len(t[0])
	for i, row := range t {
		if len(row) != ncol {
			return fmt.Errorf("table row %d has %d columns, want %d", i, len(row), ncol)
		}
		for j, v := range row {
			if v < 0 || math.IsNaN(v) {
				return fmt.Errorf("table cell (%d,%d) is %v, want non-negative", i, j, v)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Bank is a pre-generated collection of simulated tables. When a bank is
// supplied, its size is the authoritative simulation count and its entries
// are assumed to be fit-ready: they are handed to the diagnostic engine
// without passing through the robust fitter.
type Bank struct {
	Tables []Table
}

// Size returns the number of pre-generated simulations in the bank.
func (b *Bank) Size() int {
	if b == nil {
		return 0
	}
	return len(b.Tables)
}

// Validate checks every bank entry for shape and sign.
func (b *Bank) Validate() error {
	if b.Size() == 0 {
		return fmt.Errorf("simulation bank is empty")
	}
	for i, tab := range b.Tables {
		if err := tab.Validate(); err != nil {
			return fmt.Errorf("bank entry %d: %w", i, err)
		}
	}
	return nil
}

// StepValue pairs a forward-search step with a diagnostic value.
type StepValue struct {
	Step  int
	Value float64
}

// Trajectory is the per-step diagnostic output of one forward-search run:
// the minimum Mahalanobis-type distance and the explained inertia, both
// indexed by the step at which the subset grows.
type Trajectory struct {
	MMD []StepValue
	INE []StepValue
}

// Envelope holds per-step empirical quantiles of one diagnostic. Steps[i] is
// the forward-search step of row i; Values[i][k] is the order statistic
// selected for Probs[k] at that step. Columns follow the caller's requested
// probability order, which need not be sorted.
type Envelope struct {
	Steps  []int       `json:"steps"`
	Probs  []float64   `json:"probs"`
	Values [][]float64 `json:"values"`
}

// Matrix returns the envelope in its flat form: first column the step index,
// then one column per requested probability.
func (e Envelope) Matrix() [][]float64 {
	out := make([][]float64, len(e.Steps))
	for i, step := range e.Steps {
		row := make([]float64, 1+len(e.Probs))
		row[0] = float64(step)
		copy(row[1:], e.Values[i])
		out[i] = row
	}
	return out
}
