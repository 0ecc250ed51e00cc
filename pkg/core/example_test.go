package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/caenv/caenv/pkg/core"
)

// demoEngine stands in for a real forward-search engine binding.
type demoEngine struct{ n int }

func (e demoEngine) Run(_ context.Context, tab core.Table, init int) (core.Trajectory, error) {
	var tr core.Trajectory
	for step := init; step < e.n; step++ {
		tr.MMD = append(tr.MMD, core.StepValue{Step: step, Value: tab[0][0]})
	}
	for step := init; step <= e.n; step++ {
		tr.INE = append(tr.INE, core.StepValue{Step: step, Value: tab[0][0]})
	}
	return tr, nil
}

// ExampleCompute demonstrates computing envelopes from a pre-generated
// simulation bank. The bank fixes the simulation count; with a single
// probability each envelope has one value column.
func ExampleCompute() {
	tab := core.Table{{2, 2}, {3, 3}} // grand total 10, default init 6
	bank := &core.Bank{Tables: []core.Table{{{3}}, {{1}}, {{4}}, {{2}}}}

	res, err := core.Compute(context.Background(), core.Config{
		Table:  tab,
		Bank:   bank,
		Opts:   core.Options{Prob: []float64{0.5}},
		Engine: demoEngine{n: 10},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "compute failed: %v\n", err)
		return
	}
	fmt.Printf("simulations: %d\n", res.Simulations)
	fmt.Printf("mmd step %d median: %v\n", res.MMD.Steps[0], res.MMD.Values[0][0])
	// Output:
	// simulations: 4
	// mmd step 6 median: 2
}
