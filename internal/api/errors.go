package api

import (
	"errors"
	"fmt"
)

// The client reports every failure as one of four terminal categories:
//
//   - ValidationError: rejected locally, never sent to the backend
//   - TransportError: the backend was unreachable or the request never
//     completed
//   - BackendError: the backend answered with a non-success status
//   - EmptyResponseError: success status but an unusable payload, handled
//     like a backend failure with a generic reason
//
// None of them trigger an automatic retry.

// ValidationError marks input rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// TransportError wraps a connectivity failure for one operation.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BackendError marks a reachable backend answering with a non-success
// status. Reason carries the body's detail when one was provided.
type BackendError struct {
	Op         string
	StatusCode int
	Reason     string
}

func (e *BackendError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
}

// EmptyResponseError marks a success status whose payload was missing or
// could not be decoded.
type EmptyResponseError struct {
	Op  string
	Err error
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("%s: backend returned an unusable response", e.Op)
}

func (e *EmptyResponseError) Unwrap() error { return e.Err }

// IsValidation reports whether err was rejected locally without reaching
// the backend.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UserMessage renders err as a short human-readable reason suitable for a
// dismissible notice.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		ve *ValidationError
		te *TransportError
		be *BackendError
		ee *EmptyResponseError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &te):
		return "backend unreachable"
	case errors.As(err, &be):
		if be.Reason != "" {
			return be.Reason
		}
		return fmt.Sprintf("backend error (status %d)", be.StatusCode)
	case errors.As(err, &ee):
		return "backend returned an unusable response"
	}
	return err.Error()
}
