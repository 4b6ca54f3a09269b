package errors

import (
	"fmt"
)

// Error is the structured error returned by every client operation. It
// carries the failure kind, the operation that produced it, and, for
// HTTP failures, the response status and body.
type Error struct {
	kind      Kind
	op        string // client operation, e.g. "CreateTask"
	message   string
	cause     error
	status    int    // HTTP status, for KindHTTPStatus
	body      string // raw response body, for KindHTTPStatus
	attempts  int    // attempts made, for KindRetriesExhausted
	retryable *bool  // nil means use the kind's default
}

// Error returns the error message, prefixed with the operation when known.
func (e *Error) Error() string {
	msg := e.message
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	if e.op != "" {
		return e.op + ": " + msg
	}
	return msg
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Op returns the client operation that produced the error, if known.
func (e *Error) Op() string {
	return e.op
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Status returns the HTTP status code for KindHTTPStatus errors, and
// zero otherwise.
func (e *Error) Status() int {
	return e.status
}

// Body returns the raw response body for KindHTTPStatus errors. Servers
// usually put a JSON error document here.
func (e *Error) Body() string {
	return e.body
}

// Attempts returns how many attempts were made, for KindRetriesExhausted
// errors.
func (e *Error) Attempts() int {
	return e.attempts
}

// Retryable returns whether the operation may succeed if tried again.
// An explicit override wins; otherwise HTTP status errors consult the
// status code and every other kind uses its default.
func (e *Error) Retryable() bool {
	if e.retryable != nil {
		return *e.retryable
	}
	if e.kind == KindHTTPStatus {
		return RetryableStatus(e.status)
	}
	return e.kind.DefaultRetryable()
}

// Option is a functional option for configuring an Error.
type Option func(*Error)

// WithOp stamps the error with the operation that produced it.
func WithOp(op string) Option {
	return func(e *Error) {
		e.op = op
	}
}

// WithRetryable explicitly sets whether the error is retryable,
// overriding the kind's default.
func WithRetryable(retryable bool) Option {
	return func(e *Error) {
		e.retryable = &retryable
	}
}

// WithCause sets the underlying cause.
func WithCause(cause error) Option {
	return func(e *Error) {
		e.cause = cause
	}
}

// New creates a new Error with the given kind and message.
func New(kind Kind, message string, opts ...Option) *Error {
	e := &Error{
		kind:    kind,
		message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Newf creates a new Error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Config creates a configuration error.
func Config(message string, opts ...Option) *Error {
	return New(KindConfig, message, opts...)
}

// Validation creates an invalid-input error.
func Validation(message string, opts ...Option) *Error {
	return New(KindValidation, message, opts...)
}

// Transport creates an error for a request that produced no response.
func Transport(message string, cause error, opts ...Option) *Error {
	opts = append([]Option{WithCause(cause)}, opts...)
	return New(KindTransport, message, opts...)
}

// HTTPStatus creates an error for a non-success response. The body is
// preserved both in the message and structured on the error.
func HTTPStatus(status int, body []byte, opts ...Option) *Error {
	e := New(KindHTTPStatus, fmt.Sprintf("unexpected response status %d: %s", status, body), opts...)
	e.status = status
	e.body = string(body)
	return e
}

// Deserialization creates an error for a response body that could not
// be decoded.
func Deserialization(message string, cause error, opts ...Option) *Error {
	opts = append([]Option{WithCause(cause)}, opts...)
	return New(KindDeserialization, message, opts...)
}

// Encoding creates an error for a payload that could not be encoded,
// or inline content that could not be decoded.
func Encoding(message string, cause error, opts ...Option) *Error {
	opts = append([]Option{WithCause(cause)}, opts...)
	return New(KindEncoding, message, opts...)
}

// Exhausted creates an error marking that every attempt failed. The last
// attempt's error is kept as the cause.
func Exhausted(attempts int, cause error, opts ...Option) *Error {
	opts = append([]Option{WithCause(cause)}, opts...)
	e := New(KindRetriesExhausted, fmt.Sprintf("giving up after %d attempts", attempts), opts...)
	e.attempts = attempts
	return e
}
