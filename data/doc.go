// SPDX-License-Identifier: MIT

// Package data provides the feature/target storage consumed by tree growing.
//
// What & Why:
//
//	Split evaluation reads feature values x(row, col) and targets y(row, col)
//	in its innermost loop. Data hides two things from those callers:
//	  - the storage layout (a dense column-major buffer or a sparse
//	    coefficient store shared between clones), and
//	  - the logical column space, which overlays three tiers:
//	    plain numeric columns [0, NumColsNoSNP),
//	    genotype-encoded columns [NumColsNoSNP, NumCols), and
//	    permuted duplicates [NumCols, NumCols+NumPermutedCols) used by
//	    corrected (permutation) importance.
//
// Lifecycle:
//
//	New → ReserveMemory → SetX/SetY (single writer) → optional Sort and
//	permutation setup → concurrent GetX/GetY from any number of goroutines.
//	Nothing on the read path writes, so a populated Data needs no locking.
//
// Complexity:
//
//	GetX/GetY on the dense backend are O(1) with zero allocations.
//	The sparse backend reads in O(log nnz).
//	Clone copies dense buffers in O(rows*cols) and shares sparse storage in O(1).
package data
