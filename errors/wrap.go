package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the error
// chain. If err is nil, Wrap returns nil. If err is already an *Error,
// its kind, HTTP details, and retryability carry over to the wrapper.
// Anything else is classified as a non-retryable transport failure:
// errors that did not originate in this module carry no evidence that a
// retry could succeed.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	var clientErr *Error
	if errors.As(err, &clientErr) {
		wrapped := &Error{
			kind:      clientErr.kind,
			op:        clientErr.op,
			message:   message,
			cause:     err,
			status:    clientErr.status,
			body:      clientErr.body,
			attempts:  clientErr.attempts,
			retryable: clientErr.retryable,
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	// Context cancellation and expiry land here too: once the caller's
	// context is done, further attempts cannot succeed.
	opts = append([]Option{WithCause(err), WithRetryable(false)}, opts...)
	return New(KindTransport, message, opts...)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// AsError extracts an *Error from an error chain. Returns nil if the
// chain contains none.
func AsError(err error) *Error {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr
	}
	return nil
}

// IsKind checks if any error in the chain has the given kind.
func IsKind(err error, kind Kind) bool {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr.kind == kind
	}
	return false
}

// KindOf extracts the kind from an error chain. Returns empty string if
// the chain contains no *Error.
func KindOf(err error) Kind {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr.kind
	}
	return ""
}

// IsRetryable checks if the error is retryable. Errors from outside this
// module are not.
func IsRetryable(err error) bool {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr.Retryable()
	}
	return false
}

// StatusCode extracts the HTTP status from an error chain, looking past
// wrappers such as retry exhaustion. Returns zero if no HTTP status
// error is present.
func StatusCode(err error) int {
	for err != nil {
		var clientErr *Error
		if !errors.As(err, &clientErr) {
			return 0
		}
		if clientErr.status != 0 {
			return clientErr.status
		}
		err = clientErr.cause
	}
	return 0
}

// ResponseBody extracts the raw HTTP response body from an error chain,
// looking past wrappers such as retry exhaustion. Returns empty string
// if no HTTP status error is present.
func ResponseBody(err error) string {
	for err != nil {
		var clientErr *Error
		if !errors.As(err, &clientErr) {
			return ""
		}
		if clientErr.body != "" {
			return clientErr.body
		}
		err = clientErr.cause
	}
	return ""
}

// Cause returns the root cause of the error chain.
func Cause(err error) error {
	for {
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		inner := unwrapper.Unwrap()
		if inner == nil {
			return err
		}
		err = inner
	}
}
