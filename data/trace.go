// SPDX-License-Identifier: MIT

package data

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'rangerdata'
func tracer() tracing.Trace {
	return tracing.Select("rangerdata")
}
