package envelope

import (
	"math"
	"strconv"
	"strings"

	"github.com/caenv/caenv/internal/types"
)

// DefaultNSimul is the simulation count used when none is requested and no
// bank is supplied. The original procedure defaulted to 200 on one call path
// and 2000 on another; this implementation keeps the single larger default.
const DefaultNSimul = 2000

// DefaultProb holds the quantile probabilities used when none are requested.
var DefaultProb = []float64{0.01, 0.5, 0.99}

// Options configures an envelope computation. Zero values select defaults.
type Options struct {
	Init     int       // initial subset size; 0 = floor(0.6*n)
	Prob     []float64 // quantile probabilities in [0,1]; nil = DefaultProb
	NSimul   int       // simulation count; 0 = DefaultNSimul (bank size wins)
	Threads  int       // worker count; <=0 = GOMAXPROCS
	Progress func()    // optional callback, invoked once per finished simulation
}

// ParseOptions converts a flat alternating name/value override list into a
// typed Options. Recognized names are "init", "prob" (comma-separated
// probabilities) and "nsimul". Unknown names and unbalanced lists are
// ConfigErrors; nothing is validated against the table here, that happens
// at resolve time.
func ParseOptions(args []string) (Options, error) {
	var opts Options
	if len(args)%2 != 0 {
		return opts, configErrorf("unbalanced option list: %d entries, want name/value pairs", len(args))
	}
	for i := 0; i < len(args); i += 2 {
		name, val := args[i], args[i+1]
		switch name {
		case "init":
			v, err := strconv.Atoi(val)
			if err != nil {
				return opts, configErrorf("option init: %q is not an integer", val)
			}
			opts.Init = v
		case "nsimul":
			v, err := strconv.Atoi(val)
			if err != nil {
				return opts, configErrorf("option nsimul: %q is not an integer", val)
			}
			opts.NSimul = v
		case "prob":
			ps, err := ParseProbs(val)
			if err != nil {
				return opts, err
			}
			opts.Prob = ps
		default:
			return opts, configErrorf("unknown option %q", name)
		}
	}
	return opts, nil
}

// ParseProbs parses a comma-separated probability list such as "0.01,0.5,0.99".
func ParseProbs(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, configErrorf("option prob: %q is not a number", f)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, configErrorf("option prob: empty list")
	}
	return out, nil
}

// params is the fully resolved, validated configuration shared read-only by
// all simulation tasks.
type params struct {
	n            int
	init         int
	prob         []float64
	nsimul       int
	rowTotals    []int
	colTotals    []int
	needsFitting bool
}

// resolve validates the table, applies defaults, and folds in the bank.
// A supplied bank fixes nsimul to its size regardless of any override and
// switches off the robust-fit step (bank entries are fit-ready).
func resolve(tab types.Table, bank *types.Bank, opts Options) (params, error) {
	var p params
	if err := tab.Validate(); err != nil {
		return p, configErrorf("%v", err)
	}
	p.n = tab.N()
	if p.n <= 0 {
		return p, configErrorf("table has zero total count")
	}
	p.rowTotals = tab.RowTotals()
	p.colTotals = tab.ColTotals()

	p.needsFitting = bank.Size() == 0
	if !p.needsFitting {
		if err := bank.Validate(); err != nil {
			return p, configErrorf("%v", err)
		}
		p.nsimul = bank.Size()
	} else if opts.NSimul != 0 {
		p.nsimul = opts.NSimul
	} else {
		p.nsimul = DefaultNSimul
	}
	if p.nsimul < 1 {
		return p, configErrorf("nsimul must be positive, got %d", p.nsimul)
	}

	p.init = opts.Init
	if p.init == 0 {
		p.init = int(math.Floor(0.6 * float64(p.n)))
	}
	if p.init <= 0 {
		return p, configErrorf("init must be positive, got %d", p.init)
	}
	if p.init >= p.n-1 {
		return p, configErrorf("init=%d leaves no room for the forward search (n=%d)", p.init, p.n)
	}

	p.prob = opts.Prob
	if len(p.prob) == 0 {
		p.prob = DefaultProb
	}
	for _, pr := range p.prob {
		if pr < 0 || pr > 1 || math.IsNaN(pr) {
			return p, configErrorf("probability %v outside [0,1]", pr)
		}
	}
	return p, nil
}
