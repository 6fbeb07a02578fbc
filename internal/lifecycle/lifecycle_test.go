package lifecycle

import (
	"errors"
	"testing"
)

func TestValidateAllowedTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusPlanned},
		{StatusPlanned, StatusProduced},
		{StatusPlanned, StatusPending},
		{StatusPending, StatusCancelled},
		{StatusPlanned, StatusCancelled},
		{StatusProduced, StatusCancelled},
		{StatusCancelled, StatusCancelled},
	}
	for _, tc := range allowed {
		if err := Validate(tc.from, tc.to); err != nil {
			t.Fatalf("%s -> %s should be allowed: %v", tc.from, tc.to, err)
		}
	}
}

func TestValidateRejectedTransitions(t *testing.T) {
	rejected := []struct{ from, to Status }{
		{StatusPending, StatusProduced},
		{StatusProduced, StatusPlanned},
		{StatusProduced, StatusPending},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusPlanned},
		{StatusCancelled, StatusProduced},
		{Status("SHIPPED"), StatusPlanned},
		{StatusPending, Status("shipped")},
	}
	for _, tc := range rejected {
		err := Validate(tc.from, tc.to)
		if err == nil {
			t.Fatalf("%s -> %s should be rejected", tc.from, tc.to)
		}
		var transitionErr *TransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("%s -> %s: expected TransitionError, got %T", tc.from, tc.to, err)
		}
		if transitionErr.From != tc.from || transitionErr.To != tc.to {
			t.Fatalf("error does not carry transition: %v", transitionErr)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPlanned, StatusProduced, StatusCancelled} {
		if !IsValid(s) {
			t.Fatalf("%s should be valid", s)
		}
	}
	for _, s := range []Status{"", "pending", "DONE"} {
		if IsValid(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

