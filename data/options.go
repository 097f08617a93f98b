// SPDX-License-Identifier: MIT

// Package data: functional configuration for Data construction.
// This file defines:
//   - Option / options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values (programmer error),
//   - gatherOptions, which resolves a ...Option list.
//
// Design goals:
//   - No global state; every Data carries its own resolved options.
//   - Each switch changes behavior and is covered by tests.
package data

import pkgerrors "github.com/pkg/errors"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles finite-only validation in SetX/SetY.
	// Off by default: dense writes always succeed and NaN may encode missing values.
	DefaultValidateNaNInf = false

	// DefaultCheckedReads enables explicit bounds checks on GetX/GetY/GetIndex.
	// A failed check panics; it never returns a value.
	DefaultCheckedReads = true
)

// ---------- Internal panic messages ----------

const (
	panicNumColsNoSNPInvalid = "data: WithNumColsNoSNP: n must be >= 0"
	panicDecoderNil          = "data: WithGenotypeDecoder: decoder must not be nil"
)

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*options)

// options stores the effective configuration after applying Option setters.
type options struct {
	variableNames  []string        // len == numCols when set
	numColsNoSNP   int             // -1 means "all columns are plain numeric"
	decoder        GenotypeDecoder // required when numColsNoSNP < numCols
	validateNaNInf bool            // DefaultValidateNaNInf
	checkedReads   bool            // DefaultCheckedReads
}

// WithVariableNames sets the ordered feature identifiers. The slice is copied.
// New returns ErrDimensionMismatch when len(names) != numCols.
func WithVariableNames(names []string) Option {
	cp := append([]string(nil), names...)

	return func(o *options) { o.variableNames = cp }
}

// WithNumColsNoSNP declares that columns [n, numCols) are genotype-encoded.
// Panics when n is negative; New rejects n > numCols.
func WithNumColsNoSNP(n int) Option {
	if n < 0 {
		panic(panicNumColsNoSNPInvalid)
	}

	return func(o *options) { o.numColsNoSNP = n }
}

// WithGenotypeDecoder installs the codec used for genotype-encoded columns.
func WithGenotypeDecoder(dec GenotypeDecoder) Option {
	if dec == nil {
		panic(panicDecoderNil)
	}

	return func(o *options) { o.decoder = dec }
}

// WithValidateNaNInf makes SetX/SetY reject NaN and ±Inf with ErrNaNInf.
func WithValidateNaNInf() Option {
	return func(o *options) { o.validateNaNInf = true }
}

// WithUncheckedReads drops the explicit precondition checks on the read path.
// Out-of-range reads then either panic inside the runtime or return
// a value from a neighbouring cell; use only for fully validated callers.
func WithUncheckedReads() Option {
	return func(o *options) { o.checkedReads = false }
}

// defaultOptions returns the zero-configuration state.
func defaultOptions() options {
	return options{
		numColsNoSNP:   -1,
		validateNaNInf: DefaultValidateNaNInf,
		checkedReads:   DefaultCheckedReads,
	}
}

// gatherOptions applies opts on top of defaults and checks them against the shape.
func gatherOptions(numCols int, opts ...Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.numColsNoSNP < 0 {
		o.numColsNoSNP = numCols
	}
	if o.numColsNoSNP > numCols {
		return o, pkgerrors.Wrapf(ErrDimensionMismatch, "numColsNoSNP=%d > numCols=%d", o.numColsNoSNP, numCols)
	}
	if o.variableNames != nil && len(o.variableNames) != numCols {
		return o, pkgerrors.Wrapf(ErrDimensionMismatch, "%d variable names for %d columns", len(o.variableNames), numCols)
	}
	if o.numColsNoSNP < numCols && o.decoder == nil {
		return o, pkgerrors.Wrapf(ErrNoDecoder, "%d genotype columns", numCols-o.numColsNoSNP)
	}

	return o, nil
}
