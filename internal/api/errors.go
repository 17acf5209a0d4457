package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a non-success answer from the backend: an HTTP error status or a
// body with "success": false.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// Temporary reports whether repeating the same request may succeed.
func (e *Error) Temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// Message returns the text to show the user for err.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The request timed out. Please try again."
	}
	return "Something went wrong. Please try again later."
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	var decodeErr *decodeError
	if errors.As(err, &decodeErr) {
		return false
	}
	// transport failure
	return true
}

type decodeError struct {
	op  string
	err error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.op, e.err)
}

func (e *decodeError) Unwrap() error {
	return e.err
}
