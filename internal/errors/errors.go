package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// Configuration errors - missing or invalid configuration
	ErrorTypeConfig ErrorType = iota
	// Validation errors - invalid input data
	ErrorTypeValidation
	// Database errors - query failures, malformed traversals, dropped connections
	ErrorTypeDatabase
	// Unavailable errors - the store did not answer in time (retryable)
	ErrorTypeUnavailable
	// DataIntegrity errors - a record carried a value the service cannot coerce
	ErrorTypeDataIntegrity
	// NotFound errors - zero matching records for an exact lookup
	ErrorTypeNotFound
	// Internal errors - unexpected internal state
	ErrorTypeInternal
)

// Severity represents how critical an error is
type Severity int

const (
	// SeverityLow - can continue with degraded functionality
	SeverityLow Severity = iota
	// SeverityMedium - should be addressed but not fatal
	SeverityMedium
	// SeverityHigh - significant issue, fails the current request
	SeverityHigh
	// SeverityCritical - must be addressed, stops execution
	SeverityCritical
)

// Error represents a structured error with context
type Error struct {
	Type       ErrorType
	Severity   Severity
	Message    string
	Cause      error
	Context    map[string]interface{}
	StackTrace string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Is reports a match when target is an *Error of the same type.
// This lets callers write errors.Is(err, errors.NotFound) against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// IsFatal returns true if this error should stop execution
func (e *Error) IsFatal() bool {
	return e.Severity == SeverityCritical
}

// Retryable reports whether the same request may succeed if issued again
func (e *Error) Retryable() bool {
	return e.Type == ErrorTypeUnavailable
}

// DetailedString returns a detailed error message with context
func (e *Error) DetailedString() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] [%s] %s\n",
		severityString(e.Severity),
		typeString(e.Type),
		e.Message))

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Caused by: %v\n", e.Cause))
	}

	if len(e.Context) > 0 {
		sb.WriteString("Context:\n")
		for k, v := range e.Context {
			sb.WriteString(fmt.Sprintf("  %s: %v\n", k, v))
		}
	}

	if e.StackTrace != "" {
		sb.WriteString(fmt.Sprintf("Stack trace:\n%s\n", e.StackTrace))
	}

	return sb.String()
}

func (t ErrorType) String() string { return typeString(t) }

func (s Severity) String() string { return severityString(s) }

func typeString(t ErrorType) string {
	switch t {
	case ErrorTypeConfig:
		return "CONFIG"
	case ErrorTypeValidation:
		return "VALIDATION"
	case ErrorTypeDatabase:
		return "DATABASE"
	case ErrorTypeUnavailable:
		return "UNAVAILABLE"
	case ErrorTypeDataIntegrity:
		return "DATA_INTEGRITY"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	case ErrorTypeInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

func severityString(s Severity) string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// captureStackTrace captures the current stack trace
func captureStackTrace(skip int) string {
	var sb strings.Builder
	for i := skip; i < skip+10; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			break
		}
		sb.WriteString(fmt.Sprintf("  %s:%d %s\n", file, line, fn.Name()))
	}
	return sb.String()
}

// New creates a new error with the given type, severity, and message
func New(errType ErrorType, severity Severity, message string) *Error {
	return &Error{
		Type:       errType,
		Severity:   severity,
		Message:    message,
		Context:    make(map[string]interface{}),
		StackTrace: captureStackTrace(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, severity Severity, message string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Type:       errType,
		Severity:   severity,
		Message:    message,
		Cause:      err,
		Context:    make(map[string]interface{}),
		StackTrace: captureStackTrace(2),
	}
}

// Sentinels for errors.Is comparisons. Only the Type field is compared.
var (
	NotFound      = &Error{Type: ErrorTypeNotFound}
	Unavailable   = &Error{Type: ErrorTypeUnavailable}
	DataIntegrity = &Error{Type: ErrorTypeDataIntegrity}
	Database      = &Error{Type: ErrorTypeDatabase}
)

// ConfigError creates a configuration error
func ConfigError(message string) *Error {
	return New(ErrorTypeConfig, SeverityCritical, message)
}

// ConfigErrorf creates a configuration error with formatting
func ConfigErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeConfig, SeverityCritical, fmt.Sprintf(format, args...))
}

// ValidationErrorf creates a validation error with formatting
func ValidationErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeValidation, SeverityHigh, fmt.Sprintf(format, args...))
}

// DatabaseError wraps a store/query failure
func DatabaseError(err error, message string) *Error {
	return Wrap(err, ErrorTypeDatabase, SeverityHigh, message)
}

// DatabaseErrorf wraps a store/query failure with formatting
func DatabaseErrorf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, ErrorTypeDatabase, SeverityHigh, fmt.Sprintf(format, args...))
}

// UnavailableError wraps a timeout or exhausted deadline
func UnavailableError(err error, message string) *Error {
	return Wrap(err, ErrorTypeUnavailable, SeverityMedium, message)
}

// DataIntegrityErrorf creates an error for a record value that cannot be coerced
func DataIntegrityErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeDataIntegrity, SeverityHigh, fmt.Sprintf(format, args...))
}

// NotFoundErrorf creates a not-found error with formatting
func NotFoundErrorf(format string, args ...interface{}) *Error {
	return New(ErrorTypeNotFound, SeverityLow, fmt.Sprintf(format, args...))
}

// IsFatal checks if an error is fatal (should stop execution)
func IsFatal(err error) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.IsFatal()
	}
	return false
}

// IsRetryable checks if an error marks a transient condition
func IsRetryable(err error) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Retryable()
	}
	return false
}

// GetSeverity returns the severity of an error
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityLow
	}

	var e *Error
	if stderrors.As(err, &e) {
		return e.Severity
	}

	return SeverityMedium
}

// GetType returns the type of an error
func GetType(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeInternal
}

// HTTPStatus maps an error to the status code the API answers with.
// Every store failure, timeouts included, is a 500; retryability travels in Retry-After.
// NotFound is listed for completeness; the recipe routes turn it into an empty array.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch GetType(err) {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text safe to show clients for err.
// Store and driver details stay in the logs.
func PublicMessage(err error) string {
	switch GetType(err) {
	case ErrorTypeValidation, ErrorTypeNotFound:
		var e *Error
		if stderrors.As(err, &e) {
			return e.Message
		}
		return "invalid request"
	case ErrorTypeUnavailable:
		return "graph store did not answer in time"
	case ErrorTypeDataIntegrity:
		return "graph store returned malformed data"
	default:
		return "failed to query the graph store"
	}
}
