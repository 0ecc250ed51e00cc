package core

import (
	"encoding/json"
	"io"
)

type resultJSON struct {
	MMD         Envelope `json:"mmd"`
	INE         Envelope `json:"ine"`
	Simulations int      `json:"simulations"`
	Init        int      `json:"init"`
}

// MarshalResult pretty-prints a computation result as JSON for humans or
// pipelines.
func MarshalResult(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resultJSON{MMD: res.MMD, INE: res.INE, Simulations: res.Simulations, Init: res.Init})
}

// UnmarshalResult decodes a result produced by MarshalResult, useful for
// ingestion tests.
func UnmarshalResult(r io.Reader) (Result, error) {
	var rj resultJSON
	if err := json.NewDecoder(r).Decode(&rj); err != nil {
		return Result{}, err
	}
	return Result{MMD: rj.MMD, INE: rj.INE, Simulations: rj.Simulations, Init: rj.Init}, nil
}
