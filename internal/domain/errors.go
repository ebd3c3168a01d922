package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal ErrorCode = "INTERNAL_ERROR"
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Quiz flow errors
	CodeRequestFailed   ErrorCode = "REQUEST_FAILED"
	CodeNetworkOrDecode ErrorCode = "NETWORK_OR_DECODE_ERROR"
)

// UnknownErrorMessage is shown when a failure carries no message of its own.
const UnknownErrorMessage = "Unknown error"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Status is the upstream HTTP status for CodeRequestFailed.
	Status int   `json:"status,omitempty"`
	Err    error `json:"-"`
}

// Error returns the user-facing message; the cause is reachable through Unwrap.
func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Status  int    `json:"status,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Status:  e.Status,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

// NewRequestFailedError reports a response whose status is outside 2xx.
func NewRequestFailedError(status int) *DomainError {
	e := NewError(CodeRequestFailed, fmt.Sprintf("Request failed: %d", status), nil)
	e.Status = status
	return e
}

// NewNetworkOrDecodeError reports a transport failure or an undecodable body.
// The message is the cause's own text, or UnknownErrorMessage when it has none.
func NewNetworkOrDecodeError(err error) *DomainError {
	return NewError(CodeNetworkOrDecode, MessageOf(err), err)
}

// MessageOf turns any error into the single line shown to the user.
func MessageOf(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}

// IsRequestFailed reports whether err is a non-2xx upstream response.
func IsRequestFailed(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == CodeRequestFailed
}
