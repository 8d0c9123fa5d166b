package httpop

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError reports a response with status code >= 400. It carries the
// numeric code and the reason phrase so callers can inspect the code (for
// example to treat 404 as "not found" rather than a failure).
type HTTPError struct {
	// StatusCode is the HTTP status code (>= 400).
	StatusCode int
	// Reason is the reason phrase from the status line.
	Reason string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("httpop: HTTP %d %s", e.StatusCode, e.Reason)
}

// TransportError wraps a connectivity or protocol fault from the underlying
// HTTP transport (connection refused, reset, malformed response framing).
type TransportError struct {
	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("httpop: transport: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid or absent target URI or other caller-side
// misconfiguration. It is not retryable.
type ConfigError struct {
	// Message describes the configuration problem.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("httpop: config: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("httpop: config: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// AsHTTPError extracts an *HTTPError from an error chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var e *HTTPError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsStatus checks whether an error is an HTTP status error with the given code.
func IsStatus(err error, statusCode int) bool {
	e, ok := AsHTTPError(err)
	return ok && e.StatusCode == statusCode
}

// IsNotFound checks whether an error is an HTTP 404 error.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsTransport checks whether an error is a transport-level error.
func IsTransport(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}
