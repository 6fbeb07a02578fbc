// Package lifecycle defines the production block status machine. Every status
// mutation in the service goes through Validate so that nothing outside this
// table can reach storage.
package lifecycle

import "fmt"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPlanned   Status = "PLANNED"
	StatusProduced  Status = "PRODUCED"
	StatusCancelled Status = "CANCELLED"
)

// Initial is the status of every newly created block, including split children.
const Initial = StatusPending

// TransitionError reports a transition outside the table.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

var validTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusPlanned:   true,
		StatusCancelled: true,
	},
	StatusPlanned: {
		StatusProduced:  true,
		StatusPending:   true, // unplan / conflict resolution
		StatusCancelled: true,
	},
	StatusProduced: {
		StatusCancelled: true,
	},
	StatusCancelled: {},
}

// IsValid reports whether s is one of the four known statuses.
func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusPlanned, StatusProduced, StatusCancelled:
		return true
	}
	return false
}

// Validate checks a transition against the table. Cancellation is allowed
// from any valid state; everything else must be enumerated.
func Validate(from, to Status) error {
	if !IsValid(from) || !IsValid(to) {
		return &TransitionError{From: from, To: to}
	}
	if to == StatusCancelled {
		return nil
	}
	if validTransitions[from][to] {
		return nil
	}
	return &TransitionError{From: from, To: to}
}
