// SPDX-License-Identifier: MIT

// Package data - the Data contract and its addressing resolver.
//
// Purpose:
//   - Resolve logical (row, col) coordinates once, for every backend:
//     permuted duplicates first, genotype decoding second.
//   - Keep the read path allocation-free and lock-free.
//   - Keep the population phase (ReserveMemory, SetX, SetY) explicit and
//     error-returning.
package data

import (
	"math"

	pkgerrors "github.com/pkg/errors"
)

// method tags used in error and panic messages
const (
	ctxGetX    = "GetX"
	ctxGetY    = "GetY"
	ctxSetX    = "SetX"
	ctxSetY    = "SetY"
	ctxReserve = "ReserveMemory"
	ctxIndex   = "GetIndex"

	ctxUnique    = "UniqueDataValue"
	ctxNumUnique = "NumUniqueDataValues"
	ctxMaxUnique = "MaxNumUniqueValues"
)

// Data is the uniform access layer over feature (x) and target (y) values.
//
// Column space for GetX:
//   - [0, NumColsNoSNP): plain numeric, read from storage.
//   - [NumColsNoSNP, NumCols): genotype-encoded, decoded by the GenotypeDecoder.
//   - [NumCols, NumCols+NumPermutedCols): permuted duplicates, redirected to
//     (PermutedSampleID(row), UnpermutedVarID(col)) before the two rules above.
//
// A populated Data is safe for concurrent reads. Population and setup
// methods require exclusive access.
type Data struct {
	store storage

	numRows      int
	numCols      int
	numColsNoSNP int
	numYCols     int
	reserved     bool

	variableNames []string
	decoder       GenotypeDecoder

	validateNaNInf bool
	checkedReads   bool

	// permutation tables (see permutation.go)
	permutedSampleIDs []int
	unpermutedVarIDs  []int // indexed by col-numCols; nil means col mod numCols
	noSplitVariables  []int

	// sorted index (see index.go)
	index        []int
	uniqueValues [][]float64
	maxUnique    int
	sorted       bool
}

// New returns an empty numRows×numCols Data on the given backend.
// Storage is allocated by ReserveMemory.
//
// Errors:
//   - ErrInvalidDimensions when numRows or numCols is not positive.
//   - ErrUnknownBackend when backend is neither BackendDense nor BackendSparse.
//   - ErrDimensionMismatch when variable names or NumColsNoSNP disagree with numCols.
//   - ErrNoDecoder when genotype columns are declared without a decoder.
func New(backend Backend, numRows, numCols int, opts ...Option) (*Data, error) {
	if numRows <= 0 || numCols <= 0 {
		return nil, dataErrorf("New", numRows, numCols, ErrInvalidDimensions)
	}
	o, err := gatherOptions(numCols, opts...)
	if err != nil {
		return nil, err
	}
	var st storage
	switch backend {
	case BackendDense:
		st = newDenseStorage()
	case BackendSparse:
		st = newSparseStorage()
	default:
		return nil, pkgerrors.Wrapf(ErrUnknownBackend, "Data.New: %s", backend)
	}

	return newData(st, numRows, numCols, o), nil
}

// NewSparseShared adopts an existing coefficient store as x and allocates
// yCols dense target columns. The store stays shared with every other holder.
func NewSparseShared(coeffs *CoeffStore, yCols int, opts ...Option) (*Data, error) {
	if coeffs == nil || coeffs.Rows() <= 0 || coeffs.Cols() <= 0 || yCols < 0 {
		return nil, dataErrorf("NewSparseShared", 0, yCols, ErrInvalidDimensions)
	}
	o, err := gatherOptions(coeffs.Cols(), opts...)
	if err != nil {
		return nil, err
	}
	st := &sparseStorage{coeff: coeffs}
	st.t.reserve(coeffs.Rows(), yCols)
	d := newData(st, coeffs.Rows(), coeffs.Cols(), o)
	d.numYCols = yCols
	d.reserved = true
	tracer().Debugf("adopted shared coefficient store %dx%d nnz=%d", d.numRows, d.numCols, coeffs.NonZeros())

	return d, nil
}

func newData(st storage, numRows, numCols int, o options) *Data {
	return &Data{
		store:          st,
		numRows:        numRows,
		numCols:        numCols,
		numColsNoSNP:   o.numColsNoSNP,
		variableNames:  o.variableNames,
		decoder:        o.decoder,
		validateNaNInf: o.validateNaNInf,
		checkedReads:   o.checkedReads,
	}
}

// ---------- accessors ----------

// NumRows returns the number of samples.
func (d *Data) NumRows() int { return d.numRows }

// NumCols returns the number of original features.
func (d *Data) NumCols() int { return d.numCols }

// NumColsNoSNP returns the number of plain numeric features.
func (d *Data) NumColsNoSNP() int { return d.numColsNoSNP }

// NumYCols returns the number of target columns reserved.
func (d *Data) NumYCols() int { return d.numYCols }

// Backend reports the storage strategy.
func (d *Data) Backend() Backend { return d.store.kind() }

// IsReserved reports whether ReserveMemory has run.
func (d *Data) IsReserved() bool { return d.reserved }

// VariableNames returns a copy of the feature identifiers (nil if none were set).
func (d *Data) VariableNames() []string {
	if d.variableNames == nil {
		return nil
	}

	return append([]string(nil), d.variableNames...)
}

// VariableID returns the column of the named feature.
func (d *Data) VariableID(name string) (int, error) {
	for i, n := range d.variableNames {
		if n == name {
			return i, nil
		}
	}

	return 0, ErrUnknownVariable
}

// ---------- read path ----------

// GetX returns the feature value at the logical coordinate (row, col).
//
// Implementation:
//   - Stage 1: col >= NumCols selects a permuted duplicate; row and col are
//     rewritten to the permuted sample and the original variable.
//   - Stage 2: plain columns read storage; genotype columns are decoded with
//     the original requested column as context.
//
// Panics (unless WithUncheckedReads) when the coordinate is outside the
// fitted universe, storage is not reserved, or a permuted column is read
// before sample ids were permuted.
//
// Complexity: O(1) dense, O(log nnz) sparse; no allocations.
func (d *Data) GetX(row, col int) float64 {
	colPermuted := col
	if col >= d.numCols {
		if d.checkedReads {
			d.checkPermuted(ctxGetX, row, col)
		}
		col = d.unpermutedVarID(col)
		row = d.permutedSampleIDs[row]
	} else if d.checkedReads {
		d.checkPlain(ctxGetX, row, col)
	}

	if col < d.numColsNoSNP {
		return d.store.x(row, col)
	}

	return d.decoder.Decode(row, col, colPermuted)
}

// GetY returns the target value at (row, col). Targets are never redirected.
func (d *Data) GetY(row, col int) float64 {
	if d.checkedReads && (!d.reserved || uint(row) >= uint(d.numRows) || uint(col) >= uint(d.numYCols)) {
		d.readPanic(ctxGetY, row, col)
	}

	return d.store.y(row, col)
}

// checkPlain validates an unredirected coordinate.
func (d *Data) checkPlain(method string, row, col int) {
	if !d.reserved || uint(row) >= uint(d.numRows) || col < 0 {
		d.readPanic(method, row, col)
	}
}

// checkPermuted validates a permuted-duplicate coordinate.
func (d *Data) checkPermuted(method string, row, col int) {
	if d.permutedSampleIDs == nil {
		panic(dataErrorf(method, row, col, ErrNoPermutation))
	}
	if !d.reserved || uint(row) >= uint(d.numRows) || col >= d.numCols+d.NumPermutedCols() {
		d.readPanic(method, row, col)
	}
}

// readPanic reports a read-path contract violation.
func (d *Data) readPanic(method string, row, col int) {
	if !d.reserved {
		panic(dataErrorf(method, row, col, ErrNotReserved))
	}
	panic(dataErrorf(method, row, col, ErrOutOfRange))
}

// ---------- population phase ----------

// ReserveMemory allocates zeroed storage for NumRows×NumCols features and
// NumRows×yCols targets. Previous contents are discarded; a sparse store
// shared with clones is replaced, not cleared, so the clones keep theirs.
// Any sorted index is invalidated.
//
// Errors:
//   - ErrInvalidDimensions when yCols < 0.
//
// Allocation failure is fatal (runtime panic).
func (d *Data) ReserveMemory(yCols int) error {
	if yCols < 0 {
		return dataErrorf(ctxReserve, d.numRows, yCols, ErrInvalidDimensions)
	}
	d.store.reserve(d.numRows, d.numCols, yCols)
	d.numYCols = yCols
	d.reserved = true
	d.index, d.uniqueValues, d.maxUnique, d.sorted = nil, nil, 0, false
	tracer().Debugf("reserved %s storage rows=%d cols=%d yCols=%d", d.store.kind(), d.numRows, d.numCols, yCols)

	return nil
}

// SetX stores v at the raw coordinate (col, row). No permutation or
// genotype logic applies on write.
//
// Errors:
//   - ErrNotReserved before ReserveMemory.
//   - ErrOutOfRange when col ∉ [0,NumCols) or row ∉ [0,NumRows).
//   - ErrNaNInf for non-finite v under WithValidateNaNInf.
func (d *Data) SetX(col, row int, v float64) error {
	if err := d.checkWrite(ctxSetX, col, row, d.numCols, v); err != nil {
		return err
	}
	if err := d.store.setX(col, row, v); err != nil {
		return dataErrorf(ctxSetX, col, row, err)
	}

	return nil
}

// SetY stores v at target coordinate (col, row); same contract as SetX.
func (d *Data) SetY(col, row int, v float64) error {
	if err := d.checkWrite(ctxSetY, col, row, d.numYCols, v); err != nil {
		return err
	}

	return d.store.setY(col, row, v)
}

// checkWrite applies the shared write preconditions.
func (d *Data) checkWrite(method string, col, row, cols int, v float64) error {
	if !d.reserved {
		return dataErrorf(method, col, row, ErrNotReserved)
	}
	if uint(col) >= uint(cols) || uint(row) >= uint(d.numRows) {
		return dataErrorf(method, col, row, ErrOutOfRange)
	}
	if d.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return dataErrorf(method, col, row, ErrNaNInf)
	}

	return nil
}

// ---------- cloning ----------

// Clone returns an independent logical copy. Dense storage is duplicated;
// sparse coefficient storage is shared by reference. Dimensions, names,
// policies, permutation tables and the sorted index are inherited.
func (d *Data) Clone() *Data {
	cp := *d
	cp.store = d.store.clone()
	cp.variableNames = d.VariableNames()
	// index and uniqueValues are never written after Sort builds them,
	// so the copy keeps the same slices.
	cp.permutedSampleIDs = cloneInts(d.permutedSampleIDs)
	cp.unpermutedVarIDs = cloneInts(d.unpermutedVarIDs)
	cp.noSplitVariables = cloneInts(d.noSplitVariables)
	tracer().Debugf("cloned %s data rows=%d cols=%d", d.store.kind(), d.numRows, d.numCols)

	return &cp
}

// cloneInts copies s, keeping nil as nil.
func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}

	return append([]int(nil), s...)
}
