// SPDX-License-Identifier: MIT

// Package data - sparse backend.
//
// x lives in a *CoeffStore that clones share by reference; y is a dense
// buffer owned per instance (targets are never sparse).
package data

// sparseStorage reads x from a shared coefficient store.
type sparseStorage struct {
	coeff *CoeffStore // shared between clones
	t     targets     // owned
}

var _ storage = (*sparseStorage)(nil)

func newSparseStorage() *sparseStorage { return &sparseStorage{} }

func (s *sparseStorage) kind() Backend { return BackendSparse }

// reserve replaces the coefficient store with a fresh empty one.
// Clones made before this call keep the previous store.
func (s *sparseStorage) reserve(rows, cols, yCols int) {
	// Dimensions are validated by Data, so the error path is unreachable.
	s.coeff, _ = NewCoeffStore(rows, cols)
	s.t.reserve(rows, yCols)
}

func (s *sparseStorage) x(row, col int) float64 {
	return s.coeff.Get(row, col)
}

func (s *sparseStorage) y(row, col int) float64 {
	return s.t.at(row, col)
}

func (s *sparseStorage) setX(col, row int, v float64) error {
	return s.coeff.Set(row, col, v)
}

func (s *sparseStorage) setY(col, row int, v float64) error {
	s.t.set(col, row, v)

	return nil
}

// clone shares the coefficient store and copies y.
func (s *sparseStorage) clone() storage {
	return &sparseStorage{coeff: s.coeff, t: s.t.clone()}
}
