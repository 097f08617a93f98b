// SPDX-License-Identifier: MIT

// Package data_test contains unit tests for the Data contract on both backends.
package data_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tfcyoo/rangerts-ars/data"
)

// TestNewInvalidDimensions ensures New rejects non-positive shapes.
func TestNewInvalidDimensions(t *testing.T) {
	_, err := data.New(data.BackendDense, 0, 3)
	require.ErrorIs(t, err, data.ErrInvalidDimensions)

	_, err = data.New(data.BackendSparse, 3, 0)
	require.ErrorIs(t, err, data.ErrInvalidDimensions)

	_, err = data.New(data.Backend(42), 3, 3)
	require.ErrorIs(t, err, data.ErrUnknownBackend)
	require.NotErrorIs(t, err, data.ErrInvalidDimensions)
}

// TestNewOptionValidation covers shape-dependent option checks.
func TestNewOptionValidation(t *testing.T) {
	_, err := data.New(data.BackendDense, 2, 2, data.WithVariableNames([]string{"a"}))
	require.ErrorIs(t, err, data.ErrDimensionMismatch)

	_, err = data.New(data.BackendDense, 2, 2, data.WithNumColsNoSNP(3))
	require.ErrorIs(t, err, data.ErrDimensionMismatch)

	_, err = data.New(data.BackendDense, 2, 2, data.WithNumColsNoSNP(1))
	require.ErrorIs(t, err, data.ErrNoDecoder)

	require.Panics(t, func() { data.WithNumColsNoSNP(-1) })
	require.Panics(t, func() { data.WithGenotypeDecoder(nil) })
}

// TestScenarioReads checks the reference 3×2 dataset on both backends.
func TestScenarioReads(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			d := scenario(t, b)
			require.Equal(t, b, d.Backend())
			require.Equal(t, 3, d.NumRows())
			require.Equal(t, 2, d.NumCols())
			require.Equal(t, 2, d.NumColsNoSNP())
			require.Equal(t, 1.0, d.GetX(0, 0))
			require.Equal(t, 6.0, d.GetX(2, 1))
			require.Equal(t, 5.0, d.GetX(1, 1))
		})
	}
}

// TestReserveReadsZero verifies that a fresh reservation reads as 0 everywhere.
func TestReserveReadsZero(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			d, err := data.New(b, 4, 3)
			require.NoError(t, err)
			require.False(t, d.IsReserved())
			require.NoError(t, d.ReserveMemory(2))
			require.True(t, d.IsReserved())
			require.Equal(t, 2, d.NumYCols())
			for r := 0; r < 4; r++ {
				for c := 0; c < 3; c++ {
					require.Zero(t, d.GetX(r, c))
				}
				for c := 0; c < 2; c++ {
					require.Zero(t, d.GetY(r, c))
				}
			}
		})
	}
}

// TestReReserveDiscardsValues ensures a second ReserveMemory zeroes x and y
// and adopts the new target width.
func TestReReserveDiscardsValues(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			d := scenario(t, b)
			require.NoError(t, d.SetY(0, 2, 9))
			require.Equal(t, 6.0, d.GetX(2, 1))

			require.NoError(t, d.ReserveMemory(2))
			require.Equal(t, 2, d.NumYCols())
			for r := 0; r < 3; r++ {
				for c := 0; c < 2; c++ {
					require.Zero(t, d.GetX(r, c))
					require.Zero(t, d.GetY(r, c))
				}
			}
		})
	}
}

// TestLastWriteWins checks that reads return the most recent SetX/SetY.
func TestLastWriteWins(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			d := scenario(t, b)
			require.NoError(t, d.SetX(1, 2, 60))
			require.NoError(t, d.SetX(1, 2, -0.5))
			require.Equal(t, -0.5, d.GetX(2, 1))

			require.NoError(t, d.SetY(0, 1, 3.25))
			require.Equal(t, 3.25, d.GetY(1, 0))

			// writing zero into the sparse store removes the entry but still reads 0
			require.NoError(t, d.SetX(0, 0, 0))
			require.Zero(t, d.GetX(0, 0))
		})
	}
}

// TestWriteErrors covers every recoverable write failure.
func TestWriteErrors(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			d, err := data.New(b, 2, 2, data.WithValidateNaNInf())
			require.NoError(t, err)

			err = d.SetX(0, 0, 1)
			require.ErrorIs(t, err, data.ErrNotReserved)

			require.NoError(t, d.ReserveMemory(1))
			require.ErrorIs(t, d.SetX(2, 0, 1), data.ErrOutOfRange)
			require.ErrorIs(t, d.SetX(0, -1, 1), data.ErrOutOfRange)
			require.ErrorIs(t, d.SetY(1, 0, 1), data.ErrOutOfRange)
			require.ErrorIs(t, d.SetX(0, 0, math.NaN()), data.ErrNaNInf)
			require.ErrorIs(t, d.SetY(0, 0, math.Inf(-1)), data.ErrNaNInf)
			require.ErrorIs(t, d.ReserveMemory(-1), data.ErrInvalidDimensions)
		})
	}
}

// TestNaNAcceptedByDefault ensures the default policy stores non-finite values.
func TestNaNAcceptedByDefault(t *testing.T) {
	d := scenario(t, data.BackendDense)
	require.NoError(t, d.SetX(0, 1, math.NaN()))
	require.True(t, math.IsNaN(d.GetX(1, 0)))
}

// TestReadPreconditions ensures checked reads fail fast instead of returning a value.
func TestReadPreconditions(t *testing.T) {
	d, err := data.New(data.BackendDense, 3, 2)
	require.NoError(t, err)
	require.PanicsWithError(t, "Data.GetX(0,0): "+data.ErrNotReserved.Error(), func() { d.GetX(0, 0) })

	d = scenario(t, data.BackendDense)
	require.PanicsWithError(t, "Data.GetX(3,0): "+data.ErrOutOfRange.Error(), func() { d.GetX(3, 0) })
	require.Panics(t, func() { d.GetX(-1, 0) })
	require.Panics(t, func() { d.GetX(0, -1) })
	require.Panics(t, func() { d.GetY(0, 1) })
	require.PanicsWithError(t, "Data.GetX(0,2): "+data.ErrNoPermutation.Error(), func() { d.GetX(0, 2) })

	require.NoError(t, d.SetPermutedSampleIDs([]int{0, 1, 2}))
	// two permuted duplicates exist, column 4 is past them
	require.Panics(t, func() { d.GetX(0, 4) })
}

// TestUncheckedReads ensures the option removes the explicit checks only.
func TestUncheckedReads(t *testing.T) {
	d := scenario(t, data.BackendDense, data.WithUncheckedReads())
	require.Equal(t, 4.0, d.GetX(0, 1))
	// (3,0) aliases the next column's first cell in the flat buffer
	require.Equal(t, 4.0, d.GetX(3, 0))
}

// TestGenotypeColumns verifies decoder dispatch for columns ≥ NumColsNoSNP.
func TestGenotypeColumns(t *testing.T) {
	type call struct{ row, col, orig int }
	var calls []call
	dec := data.DecoderFunc(func(row, col, orig int) float64 {
		calls = append(calls, call{row, col, orig})
		return float64((row + col) % 3)
	})
	d, err := data.New(data.BackendDense, 3, 3,
		data.WithNumColsNoSNP(2), data.WithGenotypeDecoder(dec))
	require.NoError(t, err)
	fill(t, d, [][]float64{{1, 2, 3}, {4, 5, 6}}, 0)

	require.Equal(t, 6.0, d.GetX(2, 1)) // plain column, no decoder call
	require.Empty(t, calls)

	require.Equal(t, 2.0, d.GetX(0, 2))
	require.Equal(t, []call{{0, 2, 2}}, calls)

	// permuted duplicate of the genotype column: decoder sees the resolved
	// row/col plus the column originally requested
	require.NoError(t, d.SetPermutedSampleIDs([]int{1, 2, 0}))
	require.Equal(t, 1.0, d.GetX(1, 5)) // -> row 2, col 2: (2+2)%3
	require.Equal(t, call{2, 2, 5}, calls[len(calls)-1])
}

// TestCloneDenseIndependence ensures dense clones do not share storage.
func TestCloneDenseIndependence(t *testing.T) {
	d := scenario(t, data.BackendDense, data.WithVariableNames([]string{"a", "b"}))
	require.NoError(t, d.SetPermutedSampleIDs([]int{2, 0, 1}))
	require.NoError(t, d.SetY(0, 0, 9))

	c := d.Clone()
	require.NoError(t, c.SetX(0, 0, 100))
	require.NoError(t, c.SetY(0, 0, 100))

	require.Equal(t, 1.0, d.GetX(0, 0))
	require.Equal(t, 9.0, d.GetY(0, 0))
	require.Equal(t, 100.0, c.GetX(0, 0))

	// metadata is inherited by value
	require.Equal(t, []string{"a", "b"}, c.VariableNames())
	require.Equal(t, d.GetX(1, 2), c.GetX(1, 2))
	require.NoError(t, d.SetPermutedSampleIDs([]int{0, 1, 2}))
	require.Equal(t, 2, c.PermutedSampleID(0))
}

// TestCloneSparseSharing ensures sparse clones share coefficients until re-reserved.
func TestCloneSparseSharing(t *testing.T) {
	d := scenario(t, data.BackendSparse)
	c := d.Clone()

	require.NoError(t, c.SetX(1, 1, 50))
	require.Equal(t, 50.0, d.GetX(1, 1))
	require.NoError(t, d.SetX(0, 2, 30))
	require.Equal(t, 30.0, c.GetX(2, 0))

	// targets stay per-instance
	require.NoError(t, c.SetY(0, 0, 7))
	require.Zero(t, d.GetY(0, 0))

	// a new reservation detaches d; the clone keeps the old store
	require.NoError(t, d.ReserveMemory(1))
	require.Zero(t, d.GetX(1, 1))
	require.Equal(t, 50.0, c.GetX(1, 1))
}

// TestNewSparseShared adopts an external coefficient store.
func TestNewSparseShared(t *testing.T) {
	store, err := data.NewCoeffStore(3, 2)
	require.NoError(t, err)
	require.NoError(t, store.Set(1, 0, 2.5))

	d, err := data.NewSparseShared(store, 1)
	require.NoError(t, err)
	require.True(t, d.IsReserved())
	require.Equal(t, data.BackendSparse, d.Backend())
	require.Equal(t, 2.5, d.GetX(1, 0))

	require.NoError(t, d.SetX(1, 2, 4))
	require.Equal(t, 4.0, store.Get(2, 1))
	require.NoError(t, d.SetY(0, 2, 1))

	_, err = data.NewSparseShared(nil, 1)
	require.ErrorIs(t, err, data.ErrInvalidDimensions)
}

// TestVariableID resolves names to columns.
func TestVariableID(t *testing.T) {
	d := scenario(t, data.BackendDense, data.WithVariableNames([]string{"age", "bmi"}))
	id, err := d.VariableID("bmi")
	require.NoError(t, err)
	require.Equal(t, 1, id)

	_, err = d.VariableID("height")
	require.ErrorIs(t, err, data.ErrUnknownVariable)

	names := d.VariableNames()
	names[0] = "mutated"
	require.Equal(t, []string{"age", "bmi"}, d.VariableNames())
}

// TestParseBackend maps names to backends.
func TestParseBackend(t *testing.T) {
	b, err := data.ParseBackend("sparse")
	require.NoError(t, err)
	require.Equal(t, data.BackendSparse, b)

	b, err = data.ParseBackend("")
	require.NoError(t, err)
	require.Equal(t, data.BackendDense, b)

	_, err = data.ParseBackend("columnar")
	require.ErrorIs(t, err, data.ErrUnknownBackend)
	require.Equal(t, "Backend(7)", data.Backend(7).String())
}

// TestGetXZeroAlloc guards the hot path against allocations.
func TestGetXZeroAlloc(t *testing.T) {
	d := scenario(t, data.BackendDense)
	require.NoError(t, d.SetPermutedSampleIDs([]int{2, 0, 1}))
	var sink float64
	allocs := testing.AllocsPerRun(1000, func() {
		sink += d.GetX(1, 1)
		sink += d.GetX(1, 2)
		sink += d.GetY(2, 0)
	})
	require.Zero(t, allocs)
	require.NotZero(t, sink)
}
