package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// ============================================================================
// 1. Error creation
// ============================================================================

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"config", KindConfig},
		{"validation", KindValidation},
		{"transport", KindTransport},
		{"http_status", KindHTTPStatus},
		{"deserialization", KindDeserialization},
		{"encoding", KindEncoding},
		{"retries_exhausted", KindRetriesExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.kind, "boom")
			if err.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", err.Kind(), tt.kind)
			}
			if err.Error() != "boom" {
				t.Errorf("Error() = %v, want boom", err.Error())
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(KindValidation, "page size %d out of range", 5000)
	want := "page size 5000 out of range"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestErrorWithOp(t *testing.T) {
	err := New(KindValidation, "task id is required", WithOp("GetTask"))
	if err.Op() != "GetTask" {
		t.Errorf("Op() = %v, want GetTask", err.Op())
	}
	if err.Error() != "GetTask: task id is required" {
		t.Errorf("Error() = %v", err.Error())
	}
}

func TestErrorWithCauseMessage(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Transport("request failed", cause, WithOp("ListTasks"))
	want := "ListTasks: request failed: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

// ============================================================================
// 2. Constructors
// ============================================================================

func TestConfig(t *testing.T) {
	err := Config("base URL must use http or https")
	if err.Kind() != KindConfig {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindConfig)
	}
	if err.Retryable() {
		t.Error("config errors should not be retryable")
	}
}

func TestValidation(t *testing.T) {
	err := Validation("task requires at least one executor")
	if err.Kind() != KindValidation {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindValidation)
	}
	if err.Retryable() {
		t.Error("validation errors should not be retryable")
	}
}

func TestTransport(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Transport("request failed", cause)
	if err.Kind() != KindTransport {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindTransport)
	}
	if !err.Retryable() {
		t.Error("transport errors should be retryable by default")
	}
}

func TestHTTPStatus(t *testing.T) {
	err := HTTPStatus(503, []byte(`{"error":"overloaded"}`))
	if err.Kind() != KindHTTPStatus {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindHTTPStatus)
	}
	if err.Status() != 503 {
		t.Errorf("Status() = %d, want 503", err.Status())
	}
	if err.Body() != `{"error":"overloaded"}` {
		t.Errorf("Body() = %q", err.Body())
	}
}

func TestDeserialization(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := Deserialization("failed to parse response", cause)
	if err.Kind() != KindDeserialization {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindDeserialization)
	}
	if err.Retryable() {
		t.Error("deserialization errors should never be retryable")
	}
}

func TestEncoding(t *testing.T) {
	cause := fmt.Errorf("illegal base64 data")
	err := Encoding("input content is not valid base64", cause)
	if err.Kind() != KindEncoding {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindEncoding)
	}
	if err.Retryable() {
		t.Error("encoding errors should not be retryable")
	}
}

func TestExhausted(t *testing.T) {
	last := HTTPStatus(503, []byte("unavailable"))
	err := Exhausted(3, last, WithOp("GetTask"))
	if err.Kind() != KindRetriesExhausted {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindRetriesExhausted)
	}
	if err.Attempts() != 3 {
		t.Errorf("Attempts() = %d, want 3", err.Attempts())
	}
	if err.Retryable() {
		t.Error("exhausted errors should not be retryable")
	}
	if !errors.Is(err, last) {
		t.Error("exhausted error should wrap the last attempt's error")
	}

	// The status and body of the last attempt stay reachable through the
	// exhaustion wrapper.
	if got := StatusCode(err); got != 503 {
		t.Errorf("StatusCode() = %d, want 503", got)
	}
	if got := ResponseBody(err); got != "unavailable" {
		t.Errorf("ResponseBody() = %q, want %q", got, "unavailable")
	}
}

// ============================================================================
// 3. Retryability
// ============================================================================

func TestRetryableStatus(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
		{400, false},
		{401, false},
		{403, false},
		{404, false},
		{409, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			if RetryableStatus(tt.status) != tt.retryable {
				t.Errorf("RetryableStatus(%d) = %v, want %v", tt.status, !tt.retryable, tt.retryable)
			}
			err := HTTPStatus(tt.status, nil)
			if err.Retryable() != tt.retryable {
				t.Errorf("HTTPStatus(%d).Retryable() = %v, want %v", tt.status, err.Retryable(), tt.retryable)
			}
		})
	}
}

func TestWithRetryableOverride(t *testing.T) {
	// Task creation marks retryable statuses non-retryable because the
	// request may already have been applied.
	err := HTTPStatus(503, nil, WithRetryable(false))
	if err.Retryable() {
		t.Error("override should make 503 non-retryable")
	}

	err2 := New(KindValidation, "forced", WithRetryable(true))
	if !err2.Retryable() {
		t.Error("override should make validation retryable")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(Transport("down", nil)) {
		t.Error("IsRetryable() should be true for transport errors")
	}
	if IsRetryable(Validation("bad input")) {
		t.Error("IsRetryable() should be false for validation errors")
	}
	if IsRetryable(fmt.Errorf("plain error")) {
		t.Error("IsRetryable() should be false for foreign errors")
	}
	if IsRetryable(nil) {
		t.Error("IsRetryable(nil) should be false")
	}
}

// ============================================================================
// 4. Wrapping
// ============================================================================

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}
}

func TestWrapPreservesClassification(t *testing.T) {
	original := HTTPStatus(429, []byte("slow down"), WithOp("ListTasks"))
	wrapped := Wrap(original, "page 3 failed")

	if wrapped.Kind() != KindHTTPStatus {
		t.Errorf("Kind() = %v, want %v", wrapped.Kind(), KindHTTPStatus)
	}
	if wrapped.Status() != 429 {
		t.Errorf("Status() = %d, want 429", wrapped.Status())
	}
	if wrapped.Body() != "slow down" {
		t.Errorf("Body() = %q", wrapped.Body())
	}
	if wrapped.Op() != "ListTasks" {
		t.Errorf("Op() = %q, want ListTasks", wrapped.Op())
	}
	if !wrapped.Retryable() {
		t.Error("wrapping should preserve retryability")
	}
	if !errors.Is(wrapped, original) {
		t.Error("wrapped error should be 'Is' the original")
	}
}

func TestWrapForeignError(t *testing.T) {
	err := Wrap(fmt.Errorf("something odd"), "operation failed")
	if err.Kind() != KindTransport {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindTransport)
	}
	if err.Retryable() {
		t.Error("foreign errors should wrap as non-retryable")
	}
}

func TestWrapContextErrors(t *testing.T) {
	for _, cause := range []error{context.Canceled, context.DeadlineExceeded} {
		err := Wrap(cause, "aborted")
		if err.Kind() != KindTransport {
			t.Errorf("Kind() = %v, want %v", err.Kind(), KindTransport)
		}
		if err.Retryable() {
			t.Errorf("%v should wrap as non-retryable", cause)
		}
		if !errors.Is(err, cause) {
			t.Error("should preserve the context error in the chain")
		}
	}
}

func TestWrapf(t *testing.T) {
	cause := Validation("bad page token")
	err := Wrapf(cause, "page %d", 7)
	if err.Error() != "page 7: bad page token" {
		t.Errorf("Error() = %v", err.Error())
	}
	if err.Kind() != KindValidation {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindValidation)
	}
}

// ============================================================================
// 5. Inspection helpers
// ============================================================================

func TestIsKind(t *testing.T) {
	err := Validation("missing path")
	if !IsKind(err, KindValidation) {
		t.Error("IsKind() should match the error's kind")
	}
	if IsKind(err, KindTransport) {
		t.Error("IsKind() should not match other kinds")
	}
	if IsKind(fmt.Errorf("plain"), KindValidation) {
		t.Error("IsKind() should be false for foreign errors")
	}
}

func TestIsKindThroughChain(t *testing.T) {
	inner := HTTPStatus(404, []byte("no such task"))
	outer := fmt.Errorf("getting task: %w", inner)
	if !IsKind(outer, KindHTTPStatus) {
		t.Error("IsKind() should find the kind through fmt.Errorf wrapping")
	}
	if StatusCode(outer) != 404 {
		t.Errorf("StatusCode() = %d, want 404", StatusCode(outer))
	}
	if ResponseBody(outer) != "no such task" {
		t.Errorf("ResponseBody() = %q", ResponseBody(outer))
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(Encoding("bad", nil)) != KindEncoding {
		t.Errorf("KindOf() = %v, want %v", KindOf(Encoding("bad", nil)), KindEncoding)
	}
	if KindOf(fmt.Errorf("plain")) != "" {
		t.Error("KindOf() should be empty for foreign errors")
	}
}

func TestAsError(t *testing.T) {
	original := Transport("down", nil)
	wrapped := fmt.Errorf("outer: %w", original)

	extracted := AsError(wrapped)
	if extracted == nil {
		t.Fatal("AsError() should extract the structured error")
	}
	if extracted.Kind() != KindTransport {
		t.Errorf("Kind() = %v, want %v", extracted.Kind(), KindTransport)
	}
	if AsError(fmt.Errorf("plain")) != nil {
		t.Error("AsError() should return nil for foreign errors")
	}
}

func TestStatusCodeNonHTTP(t *testing.T) {
	if StatusCode(Validation("nope")) != 0 {
		t.Error("StatusCode() should be zero for non-HTTP errors")
	}
	if StatusCode(fmt.Errorf("plain")) != 0 {
		t.Error("StatusCode() should be zero for foreign errors")
	}
}

func TestCause(t *testing.T) {
	root := fmt.Errorf("root cause")
	middle := Transport("request failed", root)
	outer := Wrap(middle, "attempt 2")

	if Cause(outer) != root {
		t.Errorf("Cause() = %v, want root", Cause(outer))
	}
	if Cause(root) != root {
		t.Error("Cause() of a chainless error should be itself")
	}
}

// ============================================================================
// 6. Kind coverage
// ============================================================================

func TestAllKindsDefaultRetryability(t *testing.T) {
	kinds := map[Kind]bool{
		KindConfig:           false,
		KindValidation:       false,
		KindTransport:        true,
		KindDeserialization:  false,
		KindEncoding:         false,
		KindRetriesExhausted: false,
	}
	for kind, want := range kinds {
		if kind.DefaultRetryable() != want {
			t.Errorf("%s.DefaultRetryable() = %v, want %v", kind, !want, want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindHTTPStatus.String() != "HTTP_STATUS" {
		t.Errorf("String() = %v, want HTTP_STATUS", KindHTTPStatus.String())
	}
}
