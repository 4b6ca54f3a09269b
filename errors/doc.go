// Package errors provides the structured error taxonomy for the TES
// client. Every failure a client operation can return is classified into
// one of a closed set of kinds, so callers can decide how to react
// without parsing error strings.
//
// # Error Kinds
//
//   - CONFIG: invalid client configuration (bad base URL)
//   - VALIDATION: invalid caller input (task without executors, empty ID)
//   - TRANSPORT: the request produced no HTTP response
//   - HTTP_STATUS: the server responded with a non-success status
//   - DESERIALIZATION: the response body could not be decoded
//   - ENCODING: a payload could not be encoded, or inline content could
//     not be decoded from base64
//   - RETRIES_EXHAUSTED: every configured attempt failed
//
// # Retryability
//
// Transport errors are retryable by default. HTTP status errors are
// retryable for 429 and 5xx responses. Everything else fails the same
// way on every attempt and is not retried. Constructors can override
// the default with WithRetryable, which is how task creation marks its
// status errors non-retryable: a POST that reached the server may have
// been applied, so repeating it could create a duplicate task.
//
// # Usage
//
// Check what went wrong:
//
//	task, err := client.GetTask(ctx, id, tes.ViewMinimal)
//	if errors.IsKind(err, errors.KindHTTPStatus) && errors.StatusCode(err) == 404 {
//	    // task does not exist
//	}
//
// Decide whether a custom retry layer should try again:
//
//	if errors.IsRetryable(err) {
//	    // safe to retry
//	}
//
// Distinguish "create was rejected" from "create may have been applied":
//
//	_, err := client.CreateTask(ctx, task)
//	switch errors.KindOf(err) {
//	case errors.KindHTTPStatus:
//	    // processed and rejected; not applied
//	case errors.KindTransport, errors.KindRetriesExhausted:
//	    // unknown; the task may or may not exist
//	case errors.KindDeserialization:
//	    // applied, but the task ID was lost with the response
//	}
package errors
