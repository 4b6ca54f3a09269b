package client

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/teskit/teskit/errors"
	"github.com/teskit/teskit/tes"
)

// MaxPageSize is the largest page size TES servers accept. Larger values
// are not rejected client-side: servers clamp out-of-range sizes
// silently, so sending them is not an error.
const MaxPageSize = 2048

// DefaultMaxPages bounds a pager traversal that never observes an empty
// continuation token, which protects against servers that keep returning
// the same token.
const DefaultMaxPages = 1000

// Pager sentinels, checkable with errors.Is.
var (
	// ErrDone is returned by TaskPager.Next once the listing is complete.
	ErrDone = stderrors.New("no more pages")

	// ErrPageLimit is returned by TaskPager.Next when a traversal
	// exceeds its page budget without the server ending the listing.
	ErrPageLimit = stderrors.New("task listing exceeded the page limit")
)

// ListTasksParams filters and pages a task listing. The zero value lists
// every task with the server's defaults.
type ListTasksParams struct {
	// NamePrefix keeps only tasks whose name starts with it.
	NamePrefix string

	// State keeps only tasks in one lifecycle state.
	State tes.State

	// TagKeys and TagValues keep only tasks carrying matching tags. Keys
	// zip positionally with values; a key without a value matches any
	// value. Supplying more values than keys is a validation error.
	TagKeys   []string
	TagValues []string

	// PageSize asks the server for that many tasks per page. Zero omits
	// the parameter; the server default is 256 and values outside
	// 1..MaxPageSize may be clamped silently by the server.
	PageSize int

	// PageToken resumes a listing from a previous response's
	// NextPageToken. Empty starts from the beginning.
	PageToken string

	// View selects how much of each task is returned. Empty means
	// MINIMAL.
	View tes.View

	// MaxPages bounds a pager traversal. Zero means DefaultMaxPages.
	MaxPages int
}

// values renders the parameters as a query string.
func (p *ListTasksParams) values() (url.Values, error) {
	if len(p.TagValues) > len(p.TagKeys) {
		return nil, errors.Validation("more tag values than tag keys", errors.WithOp("ListTasks"))
	}
	if p.PageSize < 0 {
		return nil, errors.Validation("page size cannot be negative", errors.WithOp("ListTasks"))
	}

	q := url.Values{}
	if p.NamePrefix != "" {
		q.Set("name_prefix", p.NamePrefix)
	}
	if p.State != "" {
		q.Set("state", p.State.String())
	}
	for i, key := range p.TagKeys {
		q.Add("tag_key", key)
		if i < len(p.TagValues) {
			q.Add("tag_value", p.TagValues[i])
		}
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.PageToken != "" {
		q.Set("page_token", p.PageToken)
	}
	q.Set("view", viewParam(p.View))
	return q, nil
}

// clone copies the parameters so a pager is unaffected by later caller
// mutations.
func (p *ListTasksParams) clone() ListTasksParams {
	cp := *p
	cp.TagKeys = append([]string(nil), p.TagKeys...)
	cp.TagValues = append([]string(nil), p.TagValues...)
	return cp
}

// ListTasks fetches one page of the task listing. Page order is the
// server's; the client never re-sorts or deduplicates.
//
// This method makes a request to the `GET /tasks` endpoint.
func (c *Client) ListTasks(ctx context.Context, params *ListTasksParams) (*tes.ListTasksResponse, error) {
	if params == nil {
		params = &ListTasksParams{}
	}
	query, err := params.values()
	if err != nil {
		return nil, err
	}

	var page tes.ListTasksResponse
	err = c.do(ctx, request{
		op:         "ListTasks",
		method:     http.MethodGet,
		path:       "/tasks",
		query:      query,
		out:        &page,
		idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Tasks returns a pager over the task listing described by params. A nil
// params lists everything. The traversal starts from params.PageToken,
// so a listing can resume where a previous response left off.
func (c *Client) Tasks(params *ListTasksParams) *TaskPager {
	p := &TaskPager{client: c, maxPages: DefaultMaxPages}
	if params != nil {
		p.params = params.clone()
		p.token = params.PageToken
		if params.MaxPages > 0 {
			p.maxPages = params.MaxPages
		}
	}
	return p
}

// TaskPager walks a task listing page by page: a lazy, forward-only
// traversal. Page N+1 is never requested before page N's response has
// been observed. A pager cannot rewind; start a fresh one to list again.
// Not safe for concurrent use.
type TaskPager struct {
	client   *Client
	params   ListTasksParams
	token    string
	pages    int
	maxPages int
	done     bool
}

// More reports whether Next may produce another page. It is true before
// the first call to Next.
func (p *TaskPager) More() bool {
	return !p.done
}

// Next fetches the next page. It returns ErrDone after the listing ends
// and ErrPageLimit when the page budget is spent before the server ends
// the listing. A failed fetch does not advance the traversal, so Next
// may be called again.
func (p *TaskPager) Next(ctx context.Context) (*tes.ListTasksResponse, error) {
	if p.done {
		return nil, ErrDone
	}
	if p.pages >= p.maxPages {
		p.done = true
		return nil, ErrPageLimit
	}

	params := p.params
	params.PageToken = p.token

	p.client.log.Debug("reading task page",
		zap.Int("page", p.pages+1),
		zap.String("token", p.token))

	page, err := p.client.ListTasks(ctx, &params)
	if err != nil {
		return nil, err
	}

	p.pages++
	p.token = page.NextPageToken
	if p.token == "" {
		p.done = true
	}
	return page, nil
}

// ListAllTasks walks every page of a listing and returns the combined
// tasks in server order.
func (c *Client) ListAllTasks(ctx context.Context, params *ListTasksParams) ([]tes.Task, error) {
	var tasks []tes.Task

	pager := c.Tasks(params)
	for pager.More() {
		page, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, page.Tasks...)
	}
	return tasks, nil
}
