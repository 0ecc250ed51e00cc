package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/caenv/caenv/internal/envelope"
	"github.com/caenv/caenv/internal/types"
)

// PrintOptions controls envelope rendering.
type PrintOptions struct {
	NoColor     bool
	Duration    time.Duration
	Simulations int
	FromCache   bool
}

// PrintText writes one envelope as aligned plain-text columns.
func PrintText(w io.Writer, name string, env types.Envelope, opts PrintOptions) {
	fmt.Fprintf(w, "%s envelope (%d steps)\n", name, len(env.Steps))
	fmt.Fprintf(w, "%-6s", "step")
	for _, p := range env.Probs {
		fmt.Fprintf(w, " %12s", "p="+strconv.FormatFloat(p, 'g', -1, 64))
	}
	fmt.Fprintln(w)
	for i, step := range env.Steps {
		fmt.Fprintf(w, "%-6d", step)
		for _, v := range env.Values[i] {
			fmt.Fprintf(w, " %12.6g", v)
		}
		fmt.Fprintln(w)
	}
}

// PrintTable writes one envelope as a bordered table.
func PrintTable(w io.Writer, name string, env types.Envelope, opts PrintOptions) {
	fmt.Fprintf(w, "%s envelope\n", name)
	// Header cells hold literal "P=<prob>" labels; auto-formatting would
	// break them apart.
	tbl := tablewriter.NewTable(w, tablewriter.WithHeaderAutoFormat(tw.Off))
	header := make([]string, 1+len(env.Probs))
	header[0] = "STEP"
	for k, p := range env.Probs {
		header[k+1] = "P=" + strconv.FormatFloat(p, 'g', -1, 64)
	}
	tbl.Header(header)
	for i, step := range env.Steps {
		row := make([]string, 1+len(env.Values[i]))
		row[0] = strconv.Itoa(step)
		for k, v := range env.Values[i] {
			row[k+1] = strconv.FormatFloat(v, 'g', 6, 64)
		}
		_ = tbl.Append(row)
	}
	_ = tbl.Render()
}

// PrintFooter summarizes the run after both envelopes have been rendered.
func PrintFooter(w io.Writer, opts PrintOptions) {
	fmt.Fprintln(w)
	if opts.FromCache {
		fmt.Fprintln(w, "Result replayed from cache (no new simulations run)")
		return
	}
	if opts.Simulations > 0 {
		fmt.Fprintf(w, "Simulations: %d\n", opts.Simulations)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Duration: %.2fs\n", opts.Duration.Seconds())
	}
}

// PrintWarnings renders precision warnings, one per line.
func PrintWarnings(w io.Writer, warns []envelope.PrecisionWarning, noColor bool) {
	for _, warn := range warns {
		if noColor {
			fmt.Fprintf(w, "warning: %s\n", warn)
		} else {
			fmt.Fprintf(w, "\x1b[33mwarning:\x1b[0m %s\n", warn)
		}
	}
}
