package services

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing resource. It is an expected outcome, not a failure.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// IsNotFound reports whether err is or wraps a *NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// HTTPError represents a network or server failure from a collaborator service
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *HTTPError) Error() string {
	target := e.Method + " " + e.URL
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s failed: %s: %v", target, e.Message, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s failed with status %d: %s", target, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s failed: %s", target, e.Message)
	}
}

func (e *HTTPError) Unwrap() error {
	return e.Cause
}
