// Package errors provides categorized fetch errors for the crawler.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrorType categorizes errors for handling decisions.
type ErrorType int

const (
	// Unknown is an uncategorized error.
	Unknown ErrorType = iota
	// Network represents network-related errors (DNS, connection).
	Network
	// Timeout represents timeout errors.
	Timeout
	// NotFound represents 404 errors.
	NotFound
	// ServerError represents 5xx errors.
	ServerError
	// ClientError represents other 4xx errors.
	ClientError
	// Cancelled represents context cancellation.
	Cancelled
)

// String returns the string representation of ErrorType.
func (t ErrorType) String() string {
	switch t {
	case Network:
		return "network"
	case Timeout:
		return "timeout"
	case NotFound:
		return "not_found"
	case ServerError:
		return "server_error"
	case ClientError:
		return "client_error"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// FetchError represents a categorized transport error for one URL.
type FetchError struct {
	Type       ErrorType
	URL        string
	Operation  string
	Message    string
	Cause      error
	StatusCode int
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error during %s on %s: %s (caused by: %v)",
			e.Type.String(), e.Operation, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error during %s on %s: %s",
		e.Type.String(), e.Operation, e.URL, e.Message)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target by type.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// New creates a new FetchError.
func New(errType ErrorType, url, operation, message string, cause error) *FetchError {
	return &FetchError{
		Type:      errType,
		URL:       url,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// NewNetworkError creates a network error.
func NewNetworkError(url, operation string, cause error) *FetchError {
	return New(Network, url, operation, "network failure", cause)
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(url, operation string, cause error) *FetchError {
	return New(Timeout, url, operation, "request timed out", cause)
}

// NewCancelledError creates a cancelled error.
func NewCancelledError(url, operation string) *FetchError {
	return New(Cancelled, url, operation, "operation cancelled", nil)
}

// Categorize determines the error type from a generic error.
func Categorize(err error, url string) *FetchError {
	if err == nil {
		return nil
	}

	var fetchErr *FetchError
	if stderrors.As(err, &fetchErr) {
		return fetchErr
	}

	if stderrors.Is(err, context.Canceled) {
		return NewCancelledError(url, "request")
	}

	if isTimeout(err) {
		return NewTimeoutError(url, "request", err)
	}

	if isNetworkError(err) {
		return NewNetworkError(url, "request", err)
	}

	return New(Unknown, url, "request", err.Error(), err)
}

// CategorizeHTTPStatus creates an error from a non-success HTTP status
// code; success codes yield nil.
func CategorizeHTTPStatus(statusCode int, url string) *FetchError {
	switch {
	case statusCode == 404:
		e := New(NotFound, url, "request", "page not found", nil)
		e.StatusCode = statusCode
		return e
	case statusCode >= 500:
		e := New(ServerError, url, "request", fmt.Sprintf("server returned %d", statusCode), nil)
		e.StatusCode = statusCode
		return e
	case statusCode >= 400:
		e := New(ClientError, url, "request", fmt.Sprintf("client error %d", statusCode), nil)
		e.StatusCode = statusCode
		return e
	default:
		return nil
	}
}

// GetStatusCode extracts the status code from an error.
func GetStatusCode(err error) int {
	var fetchErr *FetchError
	if stderrors.As(err, &fetchErr) {
		return fetchErr.StatusCode
	}
	return 0
}

// GetErrorType extracts the error type from an error.
func GetErrorType(err error) ErrorType {
	var fetchErr *FetchError
	if stderrors.As(err, &fetchErr) {
		return fetchErr.Type
	}
	return Unknown
}

// isTimeout checks if an error is a timeout.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// isNetworkError checks if an error is network-related.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if stderrors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if stderrors.As(err, &dnsErr) {
		return true
	}

	if stderrors.Is(err, syscall.ECONNREFUSED) ||
		stderrors.Is(err, syscall.ECONNRESET) ||
		stderrors.Is(err, syscall.ETIMEDOUT) ||
		stderrors.Is(err, syscall.EHOSTUNREACH) ||
		stderrors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "dial tcp")
}
