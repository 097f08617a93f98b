// SPDX-License-Identifier: MIT

// Package data - text loader.
//
// Input format: one header line of variable names followed by one line per
// sample. The delimiter is taken from the header: comma if present, else
// semicolon if present, else any run of whitespace. Columns named in
// dependent become y columns (in that order); the rest become x columns in
// file order.
package data

import (
	"bufio"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 64 << 20

// LoadFile opens path and calls Load.
func LoadFile(path string, backend Backend, dependent []string, opts ...Option) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "LoadFile")
	}
	defer f.Close()

	d, err := Load(f, backend, dependent, opts...)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "LoadFile %s", path)
	}

	return d, nil
}

// Load parses r into a populated Data on the given backend.
//
// Errors:
//   - ErrParse for a missing header, ragged lines or non-numeric cells
//     (the message names the line).
//   - ErrUnknownVariable for a dependent name absent from the header.
//   - ErrInvalidDimensions when no samples or no feature columns remain.
func Load(r io.Reader, backend Backend, dependent []string, opts ...Option) (*Data, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	// Stage 1: header and delimiter.
	line := 0
	var header []string
	var split func(string) []string
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		split = splitterFor(text)
		header = split(text)
		break
	}
	if err := sc.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "Load")
	}
	if header == nil {
		return nil, pkgerrors.Wrap(ErrParse, "Load: missing header")
	}

	// Stage 2: map dependent names to header positions.
	yPos := make([]int, len(dependent))
	isY := make([]bool, len(header))
	for k, name := range dependent {
		pos := slices.Index(header, name)
		if pos < 0 {
			return nil, pkgerrors.Wrapf(ErrUnknownVariable, "Load: dependent variable %q", name)
		}
		yPos[k] = pos
		isY[pos] = true
	}
	xPos := make([]int, 0, len(header))
	names := make([]string, 0, len(header))
	for pos, name := range header {
		if !isY[pos] {
			xPos = append(xPos, pos)
			names = append(names, name)
		}
	}

	// Stage 3: numeric body.
	var rows [][]float64
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := split(text)
		if len(fields) != len(header) {
			return nil, pkgerrors.Wrapf(ErrParse, "Load: line %d has %d fields, header has %d", line, len(fields), len(header))
		}
		vals := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, pkgerrors.Wrapf(ErrParse, "Load: line %d field %d %q", line, i+1, f)
			}
			vals[i] = v
		}
		rows = append(rows, vals)
	}
	if err := sc.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "Load")
	}

	// Stage 4: populate.
	all := append(slices.Clip(opts), WithVariableNames(names))
	d, err := New(backend, len(rows), len(xPos), all...)
	if err != nil {
		return nil, err
	}
	if err = d.ReserveMemory(len(yPos)); err != nil {
		return nil, err
	}
	for row, vals := range rows {
		for col, pos := range xPos {
			if err = d.SetX(col, row, vals[pos]); err != nil {
				return nil, pkgerrors.Wrapf(err, "Load: sample %d", row)
			}
		}
		for col, pos := range yPos {
			if err = d.SetY(col, row, vals[pos]); err != nil {
				return nil, pkgerrors.Wrapf(err, "Load: sample %d", row)
			}
		}
	}
	tracer().Infof("loaded %d samples, %d features, %d targets (%s)", d.numRows, d.numCols, d.numYCols, backend)

	return d, nil
}

// splitterFor picks the field splitter from the header line.
func splitterFor(header string) func(string) []string {
	for _, sep := range []string{",", ";"} {
		if strings.Contains(header, sep) {
			return func(s string) []string {
				fields := strings.Split(s, sep)
				for i := range fields {
					fields[i] = strings.TrimSpace(fields[i])
				}
				return fields
			}
		}
	}

	return strings.Fields
}
