package tableio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caenv/caenv/internal/types"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadTable_CSV(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "table.csv", "10, 20, 5\n7, 3, 15\n")
	tab, err := LoadTable(p)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if tab.NRows() != 2 || tab.NCols() != 3 {
		t.Fatalf("got %dx%d, want 2x3", tab.NRows(), tab.NCols())
	}
	if tab.N() != 60 {
		t.Fatalf("got n=%d, want 60", tab.N())
	}
}

func TestLoadTable_JSON(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "table.json", "[[1, 2], [3, 4]]")
	tab, err := LoadTable(p)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if tab.N() != 10 {
		t.Fatalf("got n=%d, want 10", tab.N())
	}
}

func TestLoadTable_RejectsBadContent(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"negative.csv": "1, -2\n3, 4\n",
		"text.csv":     "a, b\nc, d\n",
		"ragged.json":  "[[1, 2], [3]]",
		"empty.json":   "[]",
	} {
		p := writeTemp(t, dir, name, body)
		if _, err := LoadTable(p); err == nil {
			t.Fatalf("expected error for %s", name)
		}
	}
}

func TestLoadTable_MissingFile(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBank(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "bank.json", "[[[1, 2], [3, 4]], [[5, 6], [7, 8]]]")
	bank, err := LoadBank(p)
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if bank.Size() != 2 {
		t.Fatalf("got size %d, want 2", bank.Size())
	}
}

func TestLoadBank_RejectsEmptyAndNegative(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"empty.json": "[]",
		"neg.json":   "[[[1, -2]]]",
	} {
		p := writeTemp(t, dir, name, body)
		if _, err := LoadBank(p); err == nil {
			t.Fatalf("expected error for %s", name)
		}
	}
}

func TestWriteEnvelopeCSV(t *testing.T) {
	env := types.Envelope{
		Steps:  []int{6, 7},
		Probs:  []float64{0.01, 0.99},
		Values: [][]float64{{1.25, 3.5}, {1.5, 4}},
	}
	var buf bytes.Buffer
	if err := WriteEnvelopeCSV(&buf, env); err != nil {
		t.Fatalf("WriteEnvelopeCSV: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), out)
	}
	if lines[0] != "step,p=0.01,p=0.99" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "6,1.25,3.5" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
