// Package tableio loads contingency tables and simulation banks from disk
// and exports envelope matrices. Tables come as CSV (one row per line) or
// JSON (array of numeric arrays); banks are JSON arrays of tables.
package tableio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caenv/caenv/internal/types"
)

// LoadTable reads a contingency table from path, dispatching on extension:
// .json is decoded as an array of rows, anything else is parsed as CSV.
func LoadTable(path string) (types.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tab types.Table
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(b, &tab); err != nil {
			return nil, fmt.Errorf("parse table %s: %w", path, err)
		}
	} else {
		tab, err = parseCSV(b)
		if err != nil {
			return nil, fmt.Errorf("parse table %s: %w", path, err)
		}
	}
	if err := tab.Validate(); err != nil {
		return nil, fmt.Errorf("table %s: %w", path, err)
	}
	return tab, nil
}

// LoadBank reads a simulation bank from a JSON file holding an array of
// tables. Every entry is shape-checked; the bank size becomes the effective
// simulation count downstream.
func LoadBank(path string) (*types.Bank, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tables []types.Table
	if err := json.Unmarshal(b, &tables); err != nil {
		return nil, fmt.Errorf("parse bank %s: %w", path, err)
	}
	bank := &types.Bank{Tables: tables}
	if err := bank.Validate(); err != nil {
		return nil, fmt.Errorf("bank %s: %w", path, err)
	}
	return bank, nil
}

func parseCSV(b []byte) (types.Table, error) {
	r := csv.NewReader(strings.NewReader(string(b)))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	tab := make(types.Table, 0, len(records))
	for i, rec := range records {
		row := make([]float64, len(rec))
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %q is not a number", i, j, cell)
			}
			row[j] = v
		}
		tab = append(tab, row)
	}
	return tab, nil
}

// WriteEnvelopeCSV emits an envelope in its flat matrix form: a header line
// with the step column and one "p=<prob>" column per requested probability,
// then one record per forward-search step.
func WriteEnvelopeCSV(w io.Writer, env types.Envelope) error {
	cw := csv.NewWriter(w)
	header := make([]string, 1+len(env.Probs))
	header[0] = "step"
	for k, p := range env.Probs {
		header[k+1] = "p=" + strconv.FormatFloat(p, 'g', -1, 64)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, step := range env.Steps {
		rec := make([]string, 1+len(env.Values[i]))
		rec[0] = strconv.Itoa(step)
		for k, v := range env.Values[i] {
			rec[k+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
