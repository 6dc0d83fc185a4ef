package internal

import (
	"math"
	"sync/atomic"
)

// ID orders effects and jobs. Effects receive a monotonically increasing ID
// at creation time, so sorting by ID yields parent-before-child execution
// whenever parents are constructed before the children they own.
type ID int64

// NoID is the sentinel for "no id" (spec: ids with value none sort as +inf,
// i.e. last). Jobs with NoID are always appended, never binary-searched
// into the middle of the queue.
const NoID ID = math.MaxInt64

var nextID atomic.Int64

// NewID hands out the next monotonic id. Shared process-wide: two runtimes
// in two goroutines still need globally ordered ids so that, should state
// ever migrate between them, parent-before-child ordering is preserved.
func NewID() ID {
	return ID(nextID.Add(1))
}
