// Package core provides a small, stable facade over caenv's internal
// envelope engine for external integrations. It deliberately re-exports a
// narrow API surface so other tools can depend on a stable import path
// without reaching into internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Table: tab, Bank: bank, Engine: eng}
//	res, err := core.Compute(ctx, cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalResult(os.Stdout, res)
package core
