// SPDX-License-Identifier: MIT

// Package rangerts is the data layer of a random-forest implementation:
// uniform access to feature and target values for tree growing, with
// permuted-duplicate columns for corrected importance.
//
// Everything is organized under three packages:
//
//	data/            — Data contract, dense and sparse backends, permutation tables,
//	                   sorted index and text loader
//	config/          — YAML dataset description for tools
//	cmd/rangerdata/  — CLI that loads a table and prints per-feature statistics
//
// Quick example:
//
//	d, _ := data.New(data.BackendDense, 3, 2)
//	_ = d.ReserveMemory(1)
//	_ = d.SetX(0, 0, 1.5)
//	v := d.GetX(0, 0) // 1.5
package rangerts
