package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Store-level outcomes. Every one of them is per-request and recoverable by
// the caller; none is fatal to the process.
var (
	ErrNotFound     = errors.New("not_found")
	ErrDuplicateKey = errors.New("duplicate_key")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	ErrInvalidPayload = errors.New("invalid_payload")
)

/*
RowVersionConflictError is returned when a compare-and-swap write finds a
different row_version than the caller expected. It carries the record as it
is stored now so the caller can show it for manual reconciliation.
*/
type RowVersionConflictError struct {
	Key      string
	Expected int64
	Actual   int64
	Current  any
}

func (e *RowVersionConflictError) Error() string {
	return fmt.Sprintf("row_version_conflict: %s expected version %d, stored version %d", e.Key, e.Expected, e.Actual)
}

// Is lets errors.Is(err, ErrRowVersionConflict) match.
func (e *RowVersionConflictError) Is(target error) bool {
	return target == ErrRowVersionConflict
}

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
