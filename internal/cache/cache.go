// Package cache persists computed envelope pairs keyed by a hash of the
// input data and the resolved parameters, so repeated CLI runs over the same
// table or bank skip the Monte Carlo work. Simulation is non-deterministic,
// which makes a cached envelope a replay of an earlier run rather than a
// fresh draw; callers surface cache hits to the user.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/caenv/caenv/internal/envelope"
	"github.com/caenv/caenv/internal/types"
)

const fileName = ".caenvcache.json"

// Entry is one cached computation result. Warnings are kept so a replay
// repeats the precision diagnostics of the original run.
type Entry struct {
	MMD         types.Envelope              `json:"mmd"`
	INE         types.Envelope              `json:"ine"`
	Warnings    []envelope.PrecisionWarning `json:"warnings,omitempty"`
	Simulations int                         `json:"simulations"`
	Init        int                         `json:"init"`
}

// DB maps input keys to cached envelope pairs.
type DB struct {
	Entries map[string]Entry `json:"entries"`
}

// Key derives a cache key from the raw input bytes (table file, plus bank
// file when present) and the effective parameters.
func Key(input []byte, init, nsimul int, prob []float64) string {
	h := xxhash.New()
	_, _ = h.Write(input)
	var sb strings.Builder
	sb.WriteString("|init=")
	sb.WriteString(strconv.Itoa(init))
	sb.WriteString("|nsimul=")
	sb.WriteString(strconv.Itoa(nsimul))
	sb.WriteString("|prob=")
	for _, p := range prob {
		sb.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
		sb.WriteByte(',')
	}
	_, _ = h.WriteString(sb.String())
	return fmt.Sprintf("%016x", h.Sum64())
}

func path(dir string) string { return filepath.Join(dir, fileName) }

// Load reads the cache file under dir. A missing or corrupt file yields an
// empty usable DB along with the error.
func Load(dir string) (DB, error) {
	db := DB{Entries: map[string]Entry{}}
	b, err := os.ReadFile(path(dir))
	if err != nil {
		return db, err
	}
	if err := json.Unmarshal(b, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

// Save writes the cache file under dir.
func Save(dir string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path(dir), b, 0o644)
}
