// SPDX-License-Identifier: MIT

// Package data - dense backend.
//
// Purpose:
//   - Hold x as a numCols×numRows gonum matrix. gonum is row-major, so the
//     flat offset of (row, col) is col*numRows + row: column-major by feature,
//     which keeps one feature's samples contiguous for split scans.
//   - Hold y the same way (yCols×numRows), shared with the sparse backend.
//
// Complexity quicksheet:
//   - reserve: O(rows*(cols+yCols)) zero-init; x/y/setX/setY: O(1); clone: O(rows*(cols+yCols)).
package data

import (
	"gonum.org/v1/gonum/mat"
)

// targets is the dense y buffer used by both backends.
type targets struct {
	m      *mat.Dense // nil when yCols == 0
	raw    []float64  // m's backing slice, cached for the read path
	stride int        // == numRows
}

// reserve allocates a zeroed yCols×rows buffer, replacing any previous one.
func (t *targets) reserve(rows, yCols int) {
	if yCols == 0 || rows == 0 {
		*t = targets{}
		return
	}
	t.m = mat.NewDense(yCols, rows, nil)
	t.attach()
}

// attach caches the raw backing slice of t.m.
func (t *targets) attach() {
	raw := t.m.RawMatrix()
	t.raw = raw.Data
	t.stride = raw.Stride
}

func (t *targets) at(row, col int) float64 {
	return t.raw[col*t.stride+row]
}

func (t *targets) set(col, row int, v float64) {
	t.raw[col*t.stride+row] = v
}

// clone deep-copies the buffer.
func (t *targets) clone() targets {
	if t.m == nil {
		return targets{}
	}
	cp := targets{m: mat.DenseCopyOf(t.m)}
	cp.attach()

	return cp
}

// denseStorage owns flat x and y buffers exclusively.
type denseStorage struct {
	xm     *mat.Dense // numCols×numRows
	xs     []float64  // xm's backing slice
	stride int        // == numRows
	t      targets
}

var _ storage = (*denseStorage)(nil)

func newDenseStorage() *denseStorage { return &denseStorage{} }

func (s *denseStorage) kind() Backend { return BackendDense }

// reserve sizes x to cols*rows and y to yCols*rows, zero-filled.
func (s *denseStorage) reserve(rows, cols, yCols int) {
	s.xm = mat.NewDense(cols, rows, nil)
	raw := s.xm.RawMatrix()
	s.xs = raw.Data
	s.stride = raw.Stride
	s.t.reserve(rows, yCols)
}

func (s *denseStorage) x(row, col int) float64 {
	return s.xs[col*s.stride+row]
}

func (s *denseStorage) y(row, col int) float64 {
	return s.t.at(row, col)
}

func (s *denseStorage) setX(col, row int, v float64) error {
	s.xs[col*s.stride+row] = v

	return nil
}

func (s *denseStorage) setY(col, row int, v float64) error {
	s.t.set(col, row, v)

	return nil
}

// clone duplicates both buffers; the copy shares nothing with s.
func (s *denseStorage) clone() storage {
	cp := &denseStorage{t: s.t.clone()}
	if s.xm != nil {
		cp.xm = mat.DenseCopyOf(s.xm)
		raw := cp.xm.RawMatrix()
		cp.xs = raw.Data
		cp.stride = raw.Stride
	}

	return cp
}
