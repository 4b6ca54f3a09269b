package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/teskit/teskit/errors"
	"github.com/teskit/teskit/retry"
	"github.com/teskit/teskit/tes"
)

// Client talks to one TES service. All configuration is fixed at Build
// time, so a single Client is safe for concurrent use: operations share
// nothing but the immutable configuration and the underlying HTTP client.
type Client struct {
	base    string
	headers http.Header
	policy  retry.Policy
	client  *http.Client
	log     *zap.Logger
}

// request describes one operation for do. Outputs are pure functions of
// the request and the client configuration.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   interface{}
	out    interface{}

	// idempotent marks operations that are safe to re-send after an HTTP
	// error response. Task creation is not: a 5xx may arrive after the
	// server already accepted the task, so only transport-level failures
	// before any response are retried for it.
	idempotent bool
}

// ServiceInfo fetches the service's identity and capability descriptor.
//
// This method makes a request to the `GET /service-info` endpoint.
func (c *Client) ServiceInfo(ctx context.Context) (*tes.ServiceInfo, error) {
	var info tes.ServiceInfo
	err := c.do(ctx, request{
		op:         "ServiceInfo",
		method:     http.MethodGet,
		path:       "/service-info",
		out:        &info,
		idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateTask submits a task and returns the server-assigned ID. The task
// is validated before any I/O; validation failures carry
// KindValidation and wrap the tes sentinel errors, except malformed
// inline content, which carries KindEncoding.
//
// This method makes a request to the `POST /tasks` endpoint.
func (c *Client) CreateTask(ctx context.Context, task *tes.Task) (string, error) {
	if task == nil {
		return "", errors.Validation("task is required", errors.WithOp("CreateTask"))
	}
	if err := task.Validate(); err != nil {
		if errors.Cause(err) == tes.ErrBadContent {
			return "", errors.Encoding("invalid task content", err, errors.WithOp("CreateTask"))
		}
		return "", errors.Validation("invalid task", errors.WithOp("CreateTask"), errors.WithCause(err))
	}

	var created tes.CreateTaskResponse
	err := c.do(ctx, request{
		op:     "CreateTask",
		method: http.MethodPost,
		path:   "/tasks",
		body:   task,
		out:    &created,
	})
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// GetTask fetches one task. An empty view requests MINIMAL, the
// narrowest; fields beyond id and state are only populated under wider
// views.
//
// This method makes a request to the `GET /tasks/{id}` endpoint.
func (c *Client) GetTask(ctx context.Context, id string, view tes.View) (*tes.Task, error) {
	if id == "" {
		return nil, errors.Validation("task id is required", errors.WithOp("GetTask"))
	}

	query := url.Values{}
	query.Set("view", viewParam(view))

	var task tes.Task
	err := c.do(ctx, request{
		op:         "GetTask",
		method:     http.MethodGet,
		path:       "/tasks/" + url.PathEscape(id),
		query:      query,
		out:        &task,
		idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CancelTask asks the service to cancel a task. Cancellation is
// idempotent from the caller's perspective: the server answers 200 for
// tasks that are already terminal, and the client does not synthesize an
// error for them.
//
// This method makes a request to the `POST /tasks/{id}:cancel` endpoint.
func (c *Client) CancelTask(ctx context.Context, id string) error {
	if id == "" {
		return errors.Validation("task id is required", errors.WithOp("CancelTask"))
	}

	return c.do(ctx, request{
		op:         "CancelTask",
		method:     http.MethodPost,
		path:       "/tasks/" + url.PathEscape(id) + ":cancel",
		idempotent: true,
	})
}

// do runs one operation under the retry policy. The body is marshaled
// once; each attempt sends the same bytes.
func (c *Client) do(ctx context.Context, r request) error {
	var body []byte
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return errors.Encoding("cannot encode request body", err, errors.WithOp(r.op))
		}
		body = b
	}

	target := c.base + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	return c.policy.Do(ctx, r.op, func(ctx context.Context) error {
		return c.attempt(ctx, r, target, body)
	})
}

// attempt performs a single HTTP exchange and classifies its outcome.
func (c *Client) attempt(ctx context.Context, r request, target string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, reader)
	if err != nil {
		return errors.Transport("cannot build request", err, errors.WithOp(r.op), errors.WithRetryable(false))
	}

	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("tes request",
		zap.String("method", r.method),
		zap.String("url", target))

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Transport("request failed", err, errors.WithOp(r.op))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Transport("cannot read response", err, errors.WithOp(r.op))
	}

	if resp.StatusCode != http.StatusOK {
		opts := []errors.Option{errors.WithOp(r.op)}
		if !r.idempotent {
			opts = append(opts, errors.WithRetryable(false))
		}
		return errors.HTTPStatus(resp.StatusCode, respBody, opts...)
	}

	if r.out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, r.out); err != nil {
		return errors.Deserialization("cannot decode response", err, errors.WithOp(r.op))
	}
	return nil
}

// viewParam renders a view for a query string, defaulting to MINIMAL.
func viewParam(view tes.View) string {
	if view == "" {
		view = tes.ViewMinimal
	}
	return view.String()
}
