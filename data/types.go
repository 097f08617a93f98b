// SPDX-License-Identifier: MIT

// Package data: storage seam and collaborator interfaces.
package data

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Backend names the storage strategy behind a Data.
type Backend int

const (
	// BackendDense stores x and y in flat column-major buffers.
	BackendDense Backend = iota
	// BackendSparse stores x in a CoeffStore shared between clones; y stays dense.
	BackendSparse
)

// String implements fmt.Stringer.
func (b Backend) String() string {
	switch b {
	case BackendDense:
		return "dense"
	case BackendSparse:
		return "sparse"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend maps "dense"/"sparse" to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "dense", "":
		return BackendDense, nil
	case "sparse":
		return BackendSparse, nil
	default:
		return BackendDense, pkgerrors.Wrapf(ErrUnknownBackend, "ParseBackend(%q)", s)
	}
}

// GenotypeDecoder turns a compact genotype representation into a number.
// Implementations must be pure and deterministic; Decode is called
// concurrently from the read path.
//
// col is the resolved original column, originalCol the column the caller
// asked for (equal to col unless a permuted duplicate was requested).
type GenotypeDecoder interface {
	Decode(row, col, originalCol int) float64
}

// DecoderFunc adapts a plain function to GenotypeDecoder.
type DecoderFunc func(row, col, originalCol int) float64

// Decode implements GenotypeDecoder.
func (f DecoderFunc) Decode(row, col, originalCol int) float64 { return f(row, col, originalCol) }

// storage is the raw backend seam. All coordinates are already resolved
// (no permutation, no genotype logic) and bounds-checked by Data.
// Read methods must not mutate anything.
type storage interface {
	kind() Backend
	reserve(rows, cols, yCols int)
	x(row, col int) float64
	y(row, col int) float64
	setX(col, row int, v float64) error
	setY(col, row int, v float64) error
	clone() storage
}
