package partition

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration rejects non-positive worker counts and
// negative totals before any work is scheduled.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Range is a contiguous half-open index interval [Start, End) assigned
// to one worker.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int { return r.End - r.Start }

func (r Range) Empty() bool { return r.End <= r.Start }

// Split divides [0, total) into workers disjoint contiguous ranges.
// Every worker gets total/workers indexes; the final worker absorbs the
// remainder. When total < workers the trailing ranges are empty, which
// callers must treat as no-ops.
func Split(total, workers int) ([]Range, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("worker count %d: %w", workers, ErrInvalidConfiguration)
	}
	if total < 0 {
		return nil, fmt.Errorf("total %d: %w", total, ErrInvalidConfiguration)
	}

	per := total / workers
	ranges := make([]Range, workers)
	for i := 0; i < workers; i++ {
		ranges[i] = Range{Start: i * per, End: (i + 1) * per}
	}
	ranges[workers-1].End = total
	return ranges, nil
}
