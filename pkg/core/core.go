package core

import (
	"context"

	"github.com/caenv/caenv/internal/envelope"
	"github.com/caenv/caenv/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type (
	Config  = envelope.Config
	Options = envelope.Options
	Result  = envelope.Result

	Table      = types.Table
	Bank       = types.Bank
	StepValue  = types.StepValue
	Trajectory = types.Trajectory
	Envelope   = types.Envelope

	Sampler = envelope.Sampler
	Fitter  = envelope.Fitter
	Engine  = envelope.Engine

	ConfigError      = envelope.ConfigError
	CollabError      = envelope.CollabError
	PrecisionWarning = envelope.PrecisionWarning
)

// DefaultNSimul is the simulation count used when none is requested.
const DefaultNSimul = envelope.DefaultNSimul

// Compute is the stable entrypoint for other programs.
func Compute(ctx context.Context, cfg Config) (Result, error) {
	return envelope.Compute(ctx, cfg)
}

// ParseOptions converts a flat alternating name/value override list into
// typed Options. This is exposed for callers migrating from the original
// flat-argument invocation style.
func ParseOptions(args []string) (Options, error) { return envelope.ParseOptions(args) }
