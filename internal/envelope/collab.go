package envelope

import (
	"context"

	"github.com/caenv/caenv/internal/types"
)

// Sampler draws one random contingency table consistent with the given
// marginals under the null hypothesis of independence. Implementations may
// be non-deterministic; the orchestrator invokes Sample once per simulation
// and never memoizes the result.
type Sampler interface {
	Sample(ctx context.Context, rowTotals, colTotals []int) (types.Table, error)
}

// Fitter runs the robust correspondence-analysis fit, turning a raw
// simulated table into the representation the diagnostic engine consumes.
type Fitter interface {
	Fit(ctx context.Context, tab types.Table) (types.Table, error)
}

// Engine runs the forward search on a fit-ready table starting from the
// given initial subset size and reports the per-step diagnostics. For a
// table with grand total n the trajectory must hold n-init MMD values
// (steps init..n-1) and n-init+1 INE values (steps init..n).
type Engine interface {
	Run(ctx context.Context, tab types.Table, init int) (types.Trajectory, error)
}
