package envelope

import "math"

// selection maps quantile probabilities to 1-based order-statistic indices
// into a row of nsimul sorted simulation values: round(nsimul*p), with 0
// remapped to 1 so very small probabilities still select the minimum.
// Returns a PrecisionWarning when two probabilities land on the same index;
// the computation proceeds regardless, with the colliding columns equal.
func selection(nsimul int, prob []float64) ([]int, *PrecisionWarning) {
	sel := make([]int, len(prob))
	for i, p := range prob {
		k := int(math.Round(float64(nsimul) * p))
		if k < 1 {
			k = 1
		}
		sel[i] = k
	}
	seen := make(map[int]bool, len(sel))
	collides := false
	for _, k := range sel {
		if seen[k] {
			collides = true
			break
		}
		seen[k] = true
	}
	if !collides {
		return sel, nil
	}
	return sel, &PrecisionWarning{
		NSimul:  nsimul,
		Probs:   append([]float64(nil), prob...),
		Indices: append([]int(nil), sel...),
	}
}
