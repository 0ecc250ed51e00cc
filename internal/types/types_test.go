package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Marginals(t *testing.T) {
	tab := Table{{1, 2, 3}, {4, 5, 6}}
	assert.Equal(t, 2, tab.NRows())
	assert.Equal(t, 3, tab.NCols())
	assert.Equal(t, 21, tab.N())
	assert.Equal(t, []int{6, 15}, tab.RowTotals())
	assert.Equal(t, []int{5, 7, 9}, tab.ColTotals())
}

func TestTable_MarginalsRoundToIntegers(t *testing.T) {
	tab := Table{{1.4, 2.6}, {0.9, 1.1}}
	assert.Equal(t, []int{4, 2}, tab.RowTotals())
	assert.Equal(t, []int{2, 4}, tab.ColTotals())
	assert.Equal(t, 6, tab.N())
}

func TestTable_Validate(t *testing.T) {
	assert.Error(t, Table{}.Validate())
	assert.Error(t, Table{{1, 2}, {3}}.Validate())
	assert.Error(t, Table{{1, -1}}.Validate())
	assert.NoError(t, Table{{0, 1}, {2, 3}}.Validate())
}

func TestTable_CloneIsDeep(t *testing.T) {
	tab := Table{{1, 2}, {3, 4}}
	cp := tab.Clone()
	cp[0][0] = 99
	assert.Equal(t, 1.0, tab[0][0])
}

func TestBank(t *testing.T) {
	var nilBank *Bank
	assert.Equal(t, 0, nilBank.Size())

	b := &Bank{Tables: []Table{{{1, 2}}, {{3, 4}}}}
	assert.Equal(t, 2, b.Size())
	require.NoError(t, b.Validate())

	bad := &Bank{Tables: []Table{{{1}}, {{-1}}}}
	assert.Error(t, bad.Validate())
}

func TestEnvelope_Matrix(t *testing.T) {
	e := Envelope{
		Steps:  []int{6, 7},
		Probs:  []float64{0.5},
		Values: [][]float64{{1.5}, {2.5}},
	}
	assert.Equal(t, [][]float64{{6, 1.5}, {7, 2.5}}, e.Matrix())
}
