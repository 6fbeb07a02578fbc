// Package batch holds the pure partition math for splitting oversized
// production blocks into capacity-bounded sub-batches.
package batch

import (
	"fmt"
)

// Part describes one sub-batch of a split: its quantity, its label ("T1",
// "T2", ...) and the derived external id, empty when the source had none.
type Part struct {
	Units int
	Label string
	ErpID string
}

// ErrNoSplitNeeded is returned when the block fits within the limit.
type ErrNoSplitNeeded struct {
	Units int
	Limit int
}

func (e *ErrNoSplitNeeded) Error() string {
	return fmt.Sprintf("no split needed: %d units within limit %d", e.Units, e.Limit)
}

// Split partitions units into the smallest number of parts where no part
// exceeds limit; the parts sum to units exactly, every part except possibly
// the last carrying exactly limit units. sourceErpID may be empty, in which
// case parts carry no external id.
func Split(units, limit int, sourceErpID string) ([]Part, error) {
	if units <= 0 {
		return nil, fmt.Errorf("units must be positive, got %d", units)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if units <= limit {
		return nil, &ErrNoSplitNeeded{Units: units, Limit: limit}
	}

	count := (units + limit - 1) / limit
	parts := make([]Part, 0, count)
	remaining := units
	for i := 1; i <= count; i++ {
		size := remaining
		if size > limit {
			size = limit
		}
		part := Part{Units: size, Label: Label(i)}
		if sourceErpID != "" {
			part.ErpID = sourceErpID + "-" + part.Label
		}
		parts = append(parts, part)
		remaining -= size
	}
	return parts, nil
}

// Label returns the sub-batch marker for the i-th part, 1-based.
func Label(i int) string {
	return fmt.Sprintf("T%d", i)
}
