package apperrors

import (
	"errors"
	"fmt"
)

// Reason classifies why a request to the show directory failed.
type Reason string

const (
	ReasonNetwork     Reason = "network"
	ReasonStatus      Reason = "status"
	ReasonDecode      Reason = "decode"
	ReasonShape       Reason = "shape"
	ReasonUnavailable Reason = "unavailable"
)

// RequestFailure is the single error kind returned by the TVMaze client.
// It covers unreachable hosts, non-success statuses and response bodies
// that cannot be mapped to the display model.
type RequestFailure struct {
	Op         string
	URL        string
	StatusCode int
	Reason     Reason
	Err        error
}

// Error implements the error interface.
func (e *RequestFailure) Error() string {
	msg := fmt.Sprintf("%s failed (%s)", e.Op, e.Reason)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *RequestFailure) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *RequestFailure) Is(target error) bool {
	_, ok := target.(*RequestFailure)
	return ok
}

// NewRequestFailure creates a RequestFailure for the given operation.
func NewRequestFailure(op, url string, reason Reason, err error) *RequestFailure {
	return &RequestFailure{
		Op:     op,
		URL:    url,
		Reason: reason,
		Err:    err,
	}
}

// NewStatusFailure creates a RequestFailure for a non-success HTTP status.
// A 404 carries an ErrNotFound cause for the given resource.
func NewStatusFailure(op, url string, statusCode int, resource string, id interface{}) *RequestFailure {
	var cause error
	if statusCode == 404 {
		cause = NewNotFoundError(resource, id)
	}
	return &RequestFailure{
		Op:         op,
		URL:        url,
		StatusCode: statusCode,
		Reason:     ReasonStatus,
		Err:        cause,
	}
}

// NewShapeFailure creates a RequestFailure for a payload that decoded but
// does not match the expected shape.
func NewShapeFailure(op string, index int, field string) *RequestFailure {
	return &RequestFailure{
		Op:     op,
		Reason: ReasonShape,
		Err:    fmt.Errorf("item %d: missing %s", index, field),
	}
}

// IsRequestFailure reports whether err is or wraps a RequestFailure.
func IsRequestFailure(err error) bool {
	return errors.Is(err, &RequestFailure{})
}

// ReasonOf returns the Reason of the RequestFailure in err's chain, or "".
func ReasonOf(err error) Reason {
	var rf *RequestFailure
	if errors.As(err, &rf) {
		return rf.Reason
	}
	return ""
}

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}
