// SPDX-License-Identifier: MIT
// Package data: sentinel error set.
// Every exported operation returns these sentinels, possibly wrapped with
// method context; callers match them via errors.Is. Read-path contract
// violations panic with a message that carries the sentinel text.

package data

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrInvalidDimensions is returned when rows or cols are not positive.
	ErrInvalidDimensions = errors.New("data: dimensions must be > 0")

	// ErrOutOfRange indicates a row or column outside the fitted universe.
	ErrOutOfRange = errors.New("data: index out of range")

	// ErrDimensionMismatch indicates inconsistent lengths, e.g. variable names vs NumCols.
	ErrDimensionMismatch = errors.New("data: dimension mismatch")

	// ErrNotReserved is returned by writes issued before ReserveMemory.
	ErrNotReserved = errors.New("data: storage not reserved")

	// ErrNaNInf signals a non-finite value under the finite-only policy.
	ErrNaNInf = errors.New("data: NaN or Inf encountered")

	// ErrNoDecoder is returned when genotype columns exist but no decoder was supplied.
	ErrNoDecoder = errors.New("data: genotype columns require a decoder")

	// ErrNoPermutation indicates a permuted column was read before sample ids were permuted.
	ErrNoPermutation = errors.New("data: permuted sample ids not set")

	// ErrInvalidPermutation indicates a malformed permutation or unpermute table.
	ErrInvalidPermutation = errors.New("data: invalid permutation")

	// ErrUnknownVariable indicates a variable name that is not part of the dataset.
	ErrUnknownVariable = errors.New("data: unknown variable")

	// ErrNotSorted is returned by index queries issued before Sort.
	ErrNotSorted = errors.New("data: index not built, call Sort first")

	// ErrUnknownBackend indicates a Backend value or name with no storage strategy.
	ErrUnknownBackend = errors.New("data: unknown backend")

	// ErrParse indicates malformed input in Load.
	ErrParse = errors.New("data: parse error")
)

// dataErrorf attaches method context and the call's two coordinates (in the
// method's own argument order) to a sentinel.
func dataErrorf(method string, i, j int, err error) error {
	return pkgerrors.Wrapf(err, "Data.%s(%d,%d)", method, i, j)
}
