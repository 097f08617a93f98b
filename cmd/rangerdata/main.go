// SPDX-License-Identifier: MIT

// Command rangerdata loads a training table through the data package and
// prints a per-feature summary.
//
//	rangerdata inspect --file train.csv --dependent y --backend sparse
//	rangerdata inspect --config dataset.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
