// SPDX-License-Identifier: MIT

// Package data - sparse coefficient store.
//
// CoeffStore maps (row, col) to a value and answers 0 for absent entries.
// Entries live in a B-tree ordered by the column-major offset col*rows + row,
// so one column's coefficients are adjacent.
//
// Concurrency:
//   - Get/NonZeros/Each may run concurrently with each other.
//   - Set/Resize require exclusive access (population phase only).
package data

import (
	"github.com/google/btree"

	pkgerrors "github.com/pkg/errors"
)

// coeffDegree is the B-tree node degree.
const coeffDegree = 32

// coeff is one stored entry.
type coeff struct {
	key int // col*rows + row
	val float64
}

func lessCoeff(a, b coeff) bool { return a.key < b.key }

// CoeffStore is a sparse rows×cols matrix of float64 coefficients.
// Share a *CoeffStore to share storage: writes through any holder are
// visible to all of them.
type CoeffStore struct {
	rows, cols int
	tree       *btree.BTreeG[coeff]
}

// NewCoeffStore returns an empty rows×cols store.
// Returns ErrInvalidDimensions for negative dimensions.
func NewCoeffStore(rows, cols int) (*CoeffStore, error) {
	if rows < 0 || cols < 0 {
		return nil, pkgerrors.Wrapf(ErrInvalidDimensions, "NewCoeffStore(%d,%d)", rows, cols)
	}

	return &CoeffStore{
		rows: rows,
		cols: cols,
		tree: btree.NewG[coeff](coeffDegree, lessCoeff),
	}, nil
}

// Rows returns the row count.
func (s *CoeffStore) Rows() int { return s.rows }

// Cols returns the column count.
func (s *CoeffStore) Cols() int { return s.cols }

// NonZeros returns the number of physically stored entries.
func (s *CoeffStore) NonZeros() int { return s.tree.Len() }

// Get returns the coefficient at (row, col), or 0 when absent.
// Panics on out-of-range coordinates.
func (s *CoeffStore) Get(row, col int) float64 {
	if uint(row) >= uint(s.rows) || uint(col) >= uint(s.cols) {
		panic(pkgerrors.Wrapf(ErrOutOfRange, "CoeffStore.Get(%d,%d)", row, col))
	}
	if c, ok := s.tree.Get(coeff{key: col*s.rows + row}); ok {
		return c.val
	}

	return 0
}

// Set inserts or overwrites the coefficient at (row, col).
// A zero value removes the entry instead of storing it.
// Returns ErrOutOfRange on invalid coordinates.
func (s *CoeffStore) Set(row, col int, v float64) error {
	if uint(row) >= uint(s.rows) || uint(col) >= uint(s.cols) {
		return pkgerrors.Wrapf(ErrOutOfRange, "CoeffStore.Set(%d,%d)", row, col)
	}
	key := col*s.rows + row
	if v == 0 {
		s.tree.Delete(coeff{key: key})
		return nil
	}
	s.tree.ReplaceOrInsert(coeff{key: key, val: v})

	return nil
}

// Resize sets new dimensions and drops every stored coefficient.
func (s *CoeffStore) Resize(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return pkgerrors.Wrapf(ErrInvalidDimensions, "CoeffStore.Resize(%d,%d)", rows, cols)
	}
	s.rows, s.cols = rows, cols
	s.tree.Clear(false)

	return nil
}

// Each visits stored entries in column-major order until fn returns false.
func (s *CoeffStore) Each(fn func(row, col int, v float64) bool) {
	s.tree.Ascend(func(c coeff) bool {
		return fn(c.key%s.rows, c.key/s.rows, c.val)
	})
}
