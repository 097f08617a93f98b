// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/tfcyoo/rangerts-ars/data"
)

// columnSummary describes one feature column.
type columnSummary struct {
	Col    int
	Name   string
	Min    float64
	Max    float64
	Mean   float64
	Unique int
}

// summarize computes a columnSummary per feature using up to workers
// goroutines. d must be populated and sorted; it is only read.
func summarize(ctx context.Context, d *data.Data, workers int) ([]columnSummary, error) {
	names := d.VariableNames()
	samples := make([]int, d.NumRows())
	for i := range samples {
		samples[i] = i
	}
	out := make([]columnSummary, d.NumCols())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for col := range out {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lo, hi, err := d.MinMaxValues(samples, col, 0, len(samples))
			if err != nil {
				return err
			}
			s := columnSummary{Col: col, Min: lo, Max: hi, Mean: columnMean(d, col), Unique: d.NumUniqueDataValues(col)}
			if names != nil {
				s.Name = names[col]
			}
			out[col] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// columnMean averages the non-NaN values of col; NaN when there are none.
func columnMean(d *data.Data, col int) float64 {
	vals := make([]float64, 0, d.NumRows())
	for row := 0; row < d.NumRows(); row++ {
		if v := d.GetX(row, col); !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return math.NaN()
	}

	return floats.Sum(vals) / float64(len(vals))
}
