// SPDX-License-Identifier: MIT

package data_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tfcyoo/rangerts-ars/data"
)

// backends lists every storage strategy; table tests range over it.
var backends = []data.Backend{data.BackendDense, data.BackendSparse}

// fill reserves d and writes cols (column-major: cols[c][r]) into x.
func fill(t testing.TB, d *data.Data, cols [][]float64, yCols int) {
	t.Helper()
	require.NoError(t, d.ReserveMemory(yCols))
	for c, col := range cols {
		for r, v := range col {
			require.NoError(t, d.SetX(c, r, v))
		}
	}
}

// scenario builds the 3×2 dataset x = [[1,2,3],[4,5,6]] on backend.
func scenario(t testing.TB, backend data.Backend, opts ...data.Option) *data.Data {
	t.Helper()
	d, err := data.New(backend, 3, 2, opts...)
	require.NoError(t, err)
	fill(t, d, [][]float64{{1, 2, 3}, {4, 5, 6}}, 1)

	return d
}
