// Package extproc adapts external programs to the envelope package's
// collaborator interfaces. Each collaborator is a user-supplied command that
// reads one JSON request on stdin and writes one JSON response on stdout:
//
//	sampler: {"row_totals":[...],"col_totals":[...]}  -> {"table":[[...],...]}
//	fitter:  {"table":[[...],...]}                    -> {"table":[[...],...]}
//	engine:  {"table":[[...],...],"init":m0}          -> {"mmd":[[step,value],...],
//	                                                      "ine":[[step,value],...]}
//
// The command is re-invoked once per call; nothing is memoized. A non-zero
// exit status, undecodable output, or an ill-shaped response is reported as
// the collaborator's failure.
package extproc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/caenv/caenv/internal/types"
)

// Command describes one external collaborator invocation: an executable path
// plus fixed arguments prepended to every call.
type Command struct {
	Path string
	Args []string
}

// ParseCommand splits a shell-free command line ("rcontfs --seed 7") into an
// executable path and arguments.
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command line")
	}
	return Command{Path: fields[0], Args: fields[1:]}, nil
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// run executes the command once, feeding req as JSON on stdin and decoding
// stdout into resp. Stderr is captured and folded into the error.
func (c Command) run(ctx context.Context, req, resp any) error {
	in, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = bytes.NewReader(in)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", c.Path, err, msg)
		}
		return fmt.Errorf("%s: %w", c.Path, err)
	}
	if err := json.Unmarshal(stdout.Bytes(), resp); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.Path, err)
	}
	return nil
}

type tablePayload struct {
	Table types.Table `json:"table"`
}

type sampleRequest struct {
	RowTotals []int `json:"row_totals"`
	ColTotals []int `json:"col_totals"`
}

// Sampler invokes an external random-table generator once per simulation.
type Sampler struct {
	cmd Command
}

// NewSampler wraps cmd as an envelope.Sampler.
func NewSampler(cmd Command) *Sampler { return &Sampler{cmd: cmd} }

// Sample implements envelope.Sampler.
func (s *Sampler) Sample(ctx context.Context, rowTotals, colTotals []int) (types.Table, error) {
	var resp tablePayload
	err := s.cmd.run(ctx, sampleRequest{RowTotals: rowTotals, ColTotals: colTotals}, &resp)
	if err != nil {
		return nil, err
	}
	if err := resp.Table.Validate(); err != nil {
		return nil, fmt.Errorf("%s: sampled table: %w", s.cmd.Path, err)
	}
	return resp.Table, nil
}

// Fitter invokes an external robust correspondence-analysis fit.
type Fitter struct {
	cmd Command
}

// NewFitter wraps cmd as an envelope.Fitter.
func NewFitter(cmd Command) *Fitter { return &Fitter{cmd: cmd} }

// Fit implements envelope.Fitter.
func (f *Fitter) Fit(ctx context.Context, tab types.Table) (types.Table, error) {
	var resp tablePayload
	if err := f.cmd.run(ctx, tablePayload{Table: tab}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Table.Validate(); err != nil {
		return nil, fmt.Errorf("%s: fitted table: %w", f.cmd.Path, err)
	}
	return resp.Table, nil
}

type runRequest struct {
	Table types.Table `json:"table"`
	Init  int         `json:"init"`
}

type runResponse struct {
	MMD [][]float64 `json:"mmd"`
	INE [][]float64 `json:"ine"`
}

// Engine invokes an external forward-search diagnostic engine.
type Engine struct {
	cmd Command
}

// NewEngine wraps cmd as an envelope.Engine.
func NewEngine(cmd Command) *Engine { return &Engine{cmd: cmd} }

// Run implements envelope.Engine.
func (e *Engine) Run(ctx context.Context, tab types.Table, init int) (types.Trajectory, error) {
	var resp runResponse
	if err := e.cmd.run(ctx, runRequest{Table: tab, Init: init}, &resp); err != nil {
		return types.Trajectory{}, err
	}
	mmd, err := toStepValues(resp.MMD)
	if err != nil {
		return types.Trajectory{}, fmt.Errorf("%s: mmd: %w", e.cmd.Path, err)
	}
	ine, err := toStepValues(resp.INE)
	if err != nil {
		return types.Trajectory{}, fmt.Errorf("%s: ine: %w", e.cmd.Path, err)
	}
	return types.Trajectory{MMD: mmd, INE: ine}, nil
}

func toStepValues(pairs [][]float64) ([]types.StepValue, error) {
	out := make([]types.StepValue, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("entry %d has %d fields, want [step, value]", i, len(p))
		}
		out[i] = types.StepValue{Step: int(p[0]), Value: p[1]}
	}
	return out, nil
}
