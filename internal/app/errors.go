package app

import (
	"fmt"
	"net/http"
)

type DomainError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func domainError(status int, code, message string, details any) *DomainError {
	return &DomainError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func validationError(message string) *DomainError {
	return domainError(http.StatusBadRequest, "VALIDATION", message, nil)
}

func notFoundError(what string) *DomainError {
	return domainError(http.StatusNotFound, "NOT_FOUND", what+" not found", nil)
}

func conflictError(message string) *DomainError {
	return domainError(http.StatusConflict, "CONFLICT", message, nil)
}

func noSplitNeededError(units, limit int) *DomainError {
	return domainError(http.StatusConflict, "NO_SPLIT_NEEDED",
		fmt.Sprintf("block of %d units fits within the batch limit", units),
		map[string]int{"units": units, "limit": limit})
}

func invalidTransitionError(from, to string) *DomainError {
	return domainError(http.StatusConflict, "INVALID_TRANSITION",
		fmt.Sprintf("cannot transition block from %s to %s", from, to), nil)
}

func forbiddenError() *DomainError {
	return domainError(http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
}

// storageError hides infrastructure detail from callers; the cause is logged
// where it happened.
func storageError() *DomainError {
	return domainError(http.StatusInternalServerError, "STORAGE", "storage failure", nil)
}
