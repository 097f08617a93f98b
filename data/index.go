// SPDX-License-Identifier: MIT

// Package data - sorted index and value queries used by split search.
//
// Sort replaces every plain feature value by its rank among the column's
// unique values, so split search can bucket samples by integer index.
// NaN sorts after every number and forms one unique value of its own.
// Genotype columns are not indexed: their decoded genotype (0, 1 or 2)
// already is the index.
package data

import (
	"math"
	"slices"

	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// genotypeLevels is the number of distinct values a genotype column takes.
const genotypeLevels = 3

// Sort builds the per-column unique values and the per-cell index for all
// plain columns. Call after population and before concurrent reads; writes
// after Sort leave the index stale.
//
// Complexity: O(cols * rows log rows) time, O(rows*cols) space.
func (d *Data) Sort() error {
	if !d.reserved {
		return dataErrorf("Sort", d.numRows, d.numCols, ErrNotReserved)
	}
	index := make([]int, d.numColsNoSNP*d.numRows)
	unique := make([][]float64, d.numColsNoSNP)
	maxUnique := 0
	column := make([]float64, d.numRows)

	for col := 0; col < d.numColsNoSNP; col++ {
		for row := 0; row < d.numRows; row++ {
			column[row] = d.store.x(row, col)
		}
		u := sortedUnique(slices.Clone(column))
		base := col * d.numRows
		for row, v := range column {
			index[base+row] = rankOf(u, v)
		}
		unique[col] = u
		maxUnique = max(maxUnique, len(u))
	}
	if d.numColsNoSNP < d.numCols {
		maxUnique = max(maxUnique, genotypeLevels)
	}

	d.index, d.uniqueValues, d.maxUnique, d.sorted = index, unique, maxUnique, true
	tracer().Infof("sorted %d columns, max unique values=%d", d.numColsNoSNP, maxUnique)

	return nil
}

// IsSorted reports whether Sort has run since the last ReserveMemory.
func (d *Data) IsSorted() bool { return d.sorted }

// GetIndex returns the rank of x(row, col) among its column's unique values,
// resolving permuted duplicates like GetX. For genotype columns it returns
// the decoded genotype. Panics when Sort has not run (checked reads).
func (d *Data) GetIndex(row, col int) int {
	if d.checkedReads && !d.sorted {
		panic(dataErrorf(ctxIndex, row, col, ErrNotSorted))
	}
	colPermuted := col
	if col >= d.numCols {
		if d.checkedReads {
			d.checkPermuted(ctxIndex, row, col)
		}
		col = d.unpermutedVarID(col)
		row = d.permutedSampleIDs[row]
	} else if d.checkedReads {
		d.checkPlain(ctxIndex, row, col)
	}

	if col < d.numColsNoSNP {
		return d.index[col*d.numRows+row]
	}

	return int(d.decoder.Decode(row, col, colPermuted))
}

// UniqueDataValue returns the value with rank idx in column col.
// For genotype columns the rank is the value.
func (d *Data) UniqueDataValue(col, idx int) float64 {
	if d.checkedReads && !d.sorted {
		panic(dataErrorf(ctxUnique, col, idx, ErrNotSorted))
	}
	col = d.UnpermutedVarID(col)
	if col < d.numColsNoSNP {
		return d.uniqueValues[col][idx]
	}

	return float64(idx)
}

// NumUniqueDataValues returns the number of distinct values in column col.
func (d *Data) NumUniqueDataValues(col int) int {
	if d.checkedReads && !d.sorted {
		panic(dataErrorf(ctxNumUnique, col, 0, ErrNotSorted))
	}
	col = d.UnpermutedVarID(col)
	if col < d.numColsNoSNP {
		return len(d.uniqueValues[col])
	}

	return genotypeLevels
}

// MaxNumUniqueValues returns the largest NumUniqueDataValues over all columns.
func (d *Data) MaxNumUniqueValues() int {
	if d.checkedReads && !d.sorted {
		panic(dataErrorf(ctxMaxUnique, 0, 0, ErrNotSorted))
	}

	return d.maxUnique
}

// AllValues appends to dst[:0] the sorted unique values of column col over
// samples sampleIDs[start:end] and returns it. Genotype columns yield 0, 1, 2.
func (d *Data) AllValues(dst []float64, sampleIDs []int, col, start, end int) ([]float64, error) {
	if start < 0 || start > end || end > len(sampleIDs) {
		return dst[:0], pkgerrors.Wrapf(ErrOutOfRange, "AllValues: window [%d,%d) of %d samples", start, end, len(sampleIDs))
	}
	dst = dst[:0]
	if d.UnpermutedVarID(col) >= d.numColsNoSNP {
		for g := 0; g < genotypeLevels; g++ {
			dst = append(dst, float64(g))
		}
		return dst, nil
	}
	for _, id := range sampleIDs[start:end] {
		dst = append(dst, d.GetX(id, col))
	}

	return sortedUnique(dst), nil
}

// MinMaxValues returns the smallest and largest non-NaN value of column col
// over samples sampleIDs[start:end]. Both are NaN when no such value exists.
func (d *Data) MinMaxValues(sampleIDs []int, col, start, end int) (lo, hi float64, err error) {
	if start < 0 || start > end || end > len(sampleIDs) {
		return 0, 0, pkgerrors.Wrapf(ErrOutOfRange, "MinMaxValues: window [%d,%d) of %d samples", start, end, len(sampleIDs))
	}
	vals := make([]float64, 0, end-start)
	for _, id := range sampleIDs[start:end] {
		if v := d.GetX(id, col); !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return math.NaN(), math.NaN(), nil
	}

	return floats.Min(vals), floats.Max(vals), nil
}

// sortedUnique sorts vals in place, drops duplicates and keeps at most one
// trailing NaN. The returned slice aliases vals.
func sortedUnique(vals []float64) []float64 {
	n := 0
	hasNaN := false
	for _, v := range vals {
		if math.IsNaN(v) {
			hasNaN = true
			continue
		}
		vals[n] = v
		n++
	}
	vals = vals[:n]
	slices.Sort(vals)
	out := slices.Compact(vals)
	if hasNaN {
		out = append(out, math.NaN())
	}

	return out
}

// rankOf returns the position of v in the sorted unique slice u.
func rankOf(u []float64, v float64) int {
	if math.IsNaN(v) {
		return len(u) - 1
	}
	i, _ := slices.BinarySearch(u, v)

	return i
}
