// SPDX-License-Identifier: MIT

// Package data - permutation tables for corrected (permutation) importance.
//
// A permuted duplicate column c >= NumCols reads feature UnpermutedVarID(c)
// from row PermutedSampleID(row), leaving every other feature at the
// evaluated row. Tables are replaced wholesale, never edited in place, so
// readers never observe a half-written table.
package data

import (
	"math/rand/v2"
	"slices"

	pkgerrors "github.com/pkg/errors"
)

// PermuteSampleIDs draws a fresh uniform permutation of [0, NumRows) from rng.
func (d *Data) PermuteSampleIDs(rng *rand.Rand) {
	ids := make([]int, d.numRows)
	for i := range ids {
		ids[i] = i
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	d.permutedSampleIDs = ids
	tracer().Debugf("permuted %d sample ids", len(ids))
}

// SetPermutedSampleIDs installs an explicit row mapping; ids is copied.
// Returns ErrInvalidPermutation unless len(ids) == NumRows and every id
// lies in [0, NumRows).
func (d *Data) SetPermutedSampleIDs(ids []int) error {
	if len(ids) != d.numRows {
		return pkgerrors.Wrapf(ErrInvalidPermutation, "SetPermutedSampleIDs: %d ids for %d rows", len(ids), d.numRows)
	}
	for i, id := range ids {
		if id < 0 || id >= d.numRows {
			return pkgerrors.Wrapf(ErrInvalidPermutation, "SetPermutedSampleIDs: ids[%d]=%d", i, id)
		}
	}
	d.permutedSampleIDs = slices.Clone(ids)

	return nil
}

// SetUnpermutedVarIDs installs an explicit unpermute mapping: permuted
// column NumCols+k reads original column table[k]. table is copied.
// The table replaces any SetNoSplitVariables exclusion list.
func (d *Data) SetUnpermutedVarIDs(table []int) error {
	if len(table) == 0 {
		return pkgerrors.Wrap(ErrInvalidPermutation, "SetUnpermutedVarIDs: empty table")
	}
	for k, c := range table {
		if c < 0 || c >= d.numCols {
			return pkgerrors.Wrapf(ErrInvalidPermutation, "SetUnpermutedVarIDs: table[%d]=%d", k, c)
		}
	}
	d.unpermutedVarIDs = slices.Clone(table)
	d.noSplitVariables = nil

	return nil
}

// SetNoSplitVariables excludes the given columns from permuted duplication.
// Permuted column NumCols+k then maps to the k-th column that is not
// excluded, in ascending order. An empty list restores the default
// mapping (col mod NumCols).
func (d *Data) SetNoSplitVariables(cols []int) error {
	skip := slices.Clone(cols)
	slices.Sort(skip)
	skip = slices.Compact(skip)
	for _, c := range skip {
		if c < 0 || c >= d.numCols {
			return pkgerrors.Wrapf(ErrOutOfRange, "SetNoSplitVariables: column %d", c)
		}
	}
	if len(skip) == 0 {
		d.noSplitVariables, d.unpermutedVarIDs = nil, nil
		return nil
	}
	if len(skip) == d.numCols {
		return pkgerrors.Wrapf(ErrInvalidPermutation, "SetNoSplitVariables: all %d columns excluded", d.numCols)
	}

	table := make([]int, d.numCols-len(skip))
	for k := range table {
		id := k
		for _, s := range skip {
			if id >= s {
				id++
			}
		}
		table[k] = id
	}
	d.noSplitVariables = skip
	d.unpermutedVarIDs = table

	return nil
}

// NoSplitVariables returns the excluded columns in ascending order.
func (d *Data) NoSplitVariables() []int { return slices.Clone(d.noSplitVariables) }

// NumPermutedCols returns how many permuted duplicate columns follow NumCols.
func (d *Data) NumPermutedCols() int {
	if d.unpermutedVarIDs != nil {
		return len(d.unpermutedVarIDs)
	}

	return d.numCols
}

// UnpermutedVarID maps a column to its original variable; columns below
// NumCols map to themselves.
func (d *Data) UnpermutedVarID(col int) int {
	if col < d.numCols {
		return col
	}

	return d.unpermutedVarID(col)
}

// PermutedSampleID returns the row a permuted duplicate reads for row.
// Panics with ErrNoPermutation when no permutation is installed.
func (d *Data) PermutedSampleID(row int) int {
	if d.permutedSampleIDs == nil {
		panic(dataErrorf("PermutedSampleID", row, 0, ErrNoPermutation))
	}

	return d.permutedSampleIDs[row]
}

// HasPermutation reports whether permuted duplicates can be read.
func (d *Data) HasPermutation() bool { return d.permutedSampleIDs != nil }

func (d *Data) unpermutedVarID(col int) int {
	if d.unpermutedVarIDs != nil {
		return d.unpermutedVarIDs[col-d.numCols]
	}

	return col % d.numCols
}
