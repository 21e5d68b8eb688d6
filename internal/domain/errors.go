package domain

import (
	"errors"
	"fmt"
)

// ErrReportNotFound is returned when a report id is unknown to the active backend.
var ErrReportNotFound = errors.New("report not found")

// AuthError means the osu! token endpoint rejected the client credentials or
// could not be reached.
type AuthError struct {
	Status int
	Err    error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("osu token request failed: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("osu token request failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError carries a non-2xx response of the osu! API verbatim. Status is
// zero when the request never got a response; Err then holds the cause.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("osu api unreachable: %v", e.Err)
	case e.Body == "":
		return fmt.Sprintf("osu api error: %d", e.Status)
	default:
		return fmt.Sprintf("osu api error: %d %s", e.Status, e.Body)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StorageError wraps any read/write failure of a storage backend.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
