package envelope

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/caenv/caenv/internal/types"
)

// Config bundles the inputs of one envelope computation: the observed table,
// an optional pre-generated simulation bank, the resolved options, and the
// external collaborators. Engine is always required; Sampler and Fitter are
// required only when no bank is supplied.
type Config struct {
	Table types.Table
	Bank  *types.Bank
	Opts  Options

	Sampler Sampler
	Fitter  Fitter
	Engine  Engine
}

// Result carries the two envelope matrices plus run metadata.
type Result struct {
	MMD types.Envelope
	INE types.Envelope

	Warnings    []PrecisionWarning
	Simulations int
	Init        int
	Duration    time.Duration
}

// Compute runs the Monte Carlo envelope calculation: nsimul independent
// sample+fit+run pipelines scatter-writing per-step diagnostic values into
// column j of two pre-allocated stores, followed by row-wise sorting and
// order-statistic extraction. The pipelines run on a worker pool; the first
// collaborator failure cancels the rest and aborts the whole call with no
// partial result.
func Compute(ctx context.Context, cfg Config) (Result, error) {
	var res Result

	p, err := resolve(cfg.Table, cfg.Bank, cfg.Opts)
	if err != nil {
		return res, err
	}
	if cfg.Engine == nil {
		return res, configErrorf("no diagnostic engine configured")
	}
	if p.needsFitting && cfg.Sampler == nil {
		return res, configErrorf("no table sampler configured and no simulation bank supplied")
	}
	if p.needsFitting && cfg.Fitter == nil {
		return res, configErrorf("no robust fitter configured and no simulation bank supplied")
	}

	sel, warn := selection(p.nsimul, p.prob)
	if warn != nil {
		res.Warnings = append(res.Warnings, *warn)
	}

	started := time.Now()
	mmdStore := newStore(p.n-p.init, p.nsimul)
	ineStore := newStore(p.n-p.init+1, p.nsimul)

	if err := runAll(ctx, cfg, p, mmdStore, ineStore); err != nil {
		return Result{}, err
	}

	res.MMD = reduce(mmdStore, sel, p.prob, p.init)
	res.INE = reduce(ineStore, sel, p.prob, p.init)
	res.Simulations = p.nsimul
	res.Init = p.init
	res.Duration = time.Since(started)
	return res, nil
}

func newStore(rows, cols int) [][]float64 {
	store := make([][]float64, rows)
	for i := range store {
		store[i] = make([]float64, cols)
	}
	return store
}

// runAll fans the nsimul pipelines out over a worker pool. Each task owns
// column j of both stores exclusively, so no locking is needed on the write
// path; only the first-error slot is guarded.
func runAll(ctx context.Context, cfg Config, p params, mmdStore, ineStore [][]float64) error {
	threads := cfg.Opts.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > p.nsimul {
		threads = p.nsimul
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	jobs := make(chan int)
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					continue
				}
				if err := runOne(ctx, cfg, p, j, mmdStore, ineStore); err != nil {
					fail(err)
					continue
				}
				if cfg.Opts.Progress != nil {
					cfg.Opts.Progress()
				}
			}
		}()
	}

feed:
	for j := 0; j < p.nsimul; j++ {
		select {
		case jobs <- j:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// runOne executes simulation j end to end and writes its trajectory into
// column j of the stores. Bank entries skip the robust fit; sampled tables
// go through it before the engine sees them.
func runOne(ctx context.Context, cfg Config, p params, j int, mmdStore, ineStore [][]float64) error {
	var tab types.Table
	if p.needsFitting {
		sampled, err := cfg.Sampler.Sample(ctx, p.rowTotals, p.colTotals)
		if err != nil {
			return &CollabError{Stage: StageSample, Sim: j, Err: err}
		}
		fitted, err := cfg.Fitter.Fit(ctx, sampled)
		if err != nil {
			return &CollabError{Stage: StageFit, Sim: j, Err: err}
		}
		tab = fitted
	} else {
		tab = cfg.Bank.Tables[j]
	}

	tr, err := cfg.Engine.Run(ctx, tab, p.init)
	if err != nil {
		return &CollabError{Stage: StageRun, Sim: j, Err: err}
	}
	if got, want := len(tr.MMD), p.n-p.init; got != want {
		return &CollabError{Stage: StageRun, Sim: j,
			Err: fmt.Errorf("engine returned %d mmd steps, want %d", got, want)}
	}
	if got, want := len(tr.INE), p.n-p.init+1; got != want {
		return &CollabError{Stage: StageRun, Sim: j,
			Err: fmt.Errorf("engine returned %d ine steps, want %d", got, want)}
	}

	for i, sv := range tr.MMD {
		mmdStore[i][j] = sv.Value
	}
	for i, sv := range tr.INE {
		ineStore[i][j] = sv.Value
	}
	return nil
}
