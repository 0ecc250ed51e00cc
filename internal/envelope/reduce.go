package envelope

import (
	"sort"

	"github.com/caenv/caenv/internal/types"
)

// reduce turns a filled per-step value store into an envelope: each row is
// sorted ascending across its nsimul simulation columns, then the 1-based
// order statistics in sel are extracted in the caller's probability order.
// Rows are sorted in place; the store is consumed by this call.
func reduce(store [][]float64, sel []int, prob []float64, firstStep int) types.Envelope {
	steps := make([]int, len(store))
	values := make([][]float64, len(store))
	for i, row := range store {
		sort.Float64s(row)
		vals := make([]float64, len(sel))
		for k, s := range sel {
			vals[k] = row[s-1]
		}
		steps[i] = firstStep + i
		values[i] = vals
	}
	return types.Envelope{
		Steps:  steps,
		Probs:  append([]float64(nil), prob...),
		Values: values,
	}
}
