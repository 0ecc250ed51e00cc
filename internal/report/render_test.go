package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/caenv/caenv/internal/envelope"
	"github.com/caenv/caenv/internal/types"
)

func sampleEnvelope() types.Envelope {
	return types.Envelope{
		Steps:  []int{6, 7, 8},
		Probs:  []float64{0.01, 0.99},
		Values: [][]float64{{1.1, 3.2}, {1.2, 3.4}, {1.3, 3.9}},
	}
}

func TestPrintText(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, "MMD", sampleEnvelope(), PrintOptions{})
	out := buf.String()
	if !strings.Contains(out, "MMD envelope") {
		t.Fatalf("expected title; got: %q", out)
	}
	if !strings.Contains(out, "p=0.01") || !strings.Contains(out, "p=0.99") {
		t.Fatalf("expected probability columns; got: %q", out)
	}
	if !strings.Contains(out, "\n6 ") && !strings.Contains(out, "\n6\t") && !strings.Contains(out, "6    ") {
		t.Fatalf("expected step column; got: %q", out)
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, "INE", sampleEnvelope(), PrintOptions{})
	out := buf.String()
	if !strings.Contains(out, "STEP") {
		t.Fatalf("expected table header with STEP; got: %q", out)
	}
	if !strings.Contains(out, "P=0.99") {
		t.Fatalf("expected probability header; got: %q", out)
	}
	if strings.Contains(out, "P = 0") {
		t.Fatalf("probability header must pass through untouched; got: %q", out)
	}
}

func TestPrintFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintFooter(&buf, PrintOptions{Duration: 1500 * time.Millisecond, Simulations: 200})
	out := buf.String()
	if !strings.Contains(out, "Simulations: 200") {
		t.Fatalf("expected simulation count; got: %q", out)
	}
	if !strings.Contains(out, "Duration: 1.50s") {
		t.Fatalf("expected duration; got: %q", out)
	}

	buf.Reset()
	PrintFooter(&buf, PrintOptions{FromCache: true})
	if !strings.Contains(buf.String(), "cache") {
		t.Fatalf("expected cache notice; got: %q", buf.String())
	}
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	warns := []envelope.PrecisionWarning{{NSimul: 20, Probs: []float64{0.01, 0.02}, Indices: []int{1, 1}}}
	PrintWarnings(&buf, warns, true)
	out := buf.String()
	if !strings.Contains(out, "warning:") || !strings.Contains(out, "nsimul=20") {
		t.Fatalf("unexpected warning output: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes with noColor: %q", out)
	}
}
