package errors

import "net/http"

// Kind classifies every error the client can produce. The set is closed:
// callers can switch over it exhaustively to decide how to react.
type Kind string

const (
	// KindConfig indicates invalid client configuration, detected before
	// any request is made. Examples: malformed base URL, unsupported
	// URL scheme.
	KindConfig Kind = "CONFIG"

	// KindValidation indicates invalid caller input, detected before any
	// request is made. Examples: task without executors, empty task ID,
	// out-of-range page size.
	KindValidation Kind = "VALIDATION"

	// KindTransport indicates the request never produced an HTTP
	// response. Examples: connection refused, DNS failure, timeout,
	// connection reset mid-body.
	KindTransport Kind = "TRANSPORT"

	// KindHTTPStatus indicates the server responded with a non-success
	// status. The status code and response body are preserved.
	KindHTTPStatus Kind = "HTTP_STATUS"

	// KindDeserialization indicates a response arrived but its body
	// could not be decoded as the expected JSON shape.
	KindDeserialization Kind = "DESERIALIZATION"

	// KindEncoding indicates a payload could not be encoded for the
	// wire, or inline content could not be decoded from base64.
	KindEncoding Kind = "ENCODING"

	// KindRetriesExhausted indicates every configured attempt failed.
	// The last attempt's error is the cause.
	KindRetriesExhausted Kind = "RETRIES_EXHAUSTED"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// DefaultRetryable returns whether errors of this kind may succeed on
// retry when nothing more specific is known. Transport failures are the
// only kind retryable by default; HTTP status errors consult the status
// code instead (see RetryableStatus).
func (k Kind) DefaultRetryable() bool {
	return k == KindTransport
}

// RetryableStatus returns true if a response status is worth retrying:
// 429 (rate limited) and all 5xx statuses. Client errors other than 429
// will fail the same way on every attempt.
func RetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
