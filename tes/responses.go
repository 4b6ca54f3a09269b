package tes

// View selects how much of a task the server returns.
type View string

const (
	// ViewMinimal returns only the task's ID and state. This is the
	// default view and the cheapest for the server to produce.
	ViewMinimal View = "MINIMAL"

	// ViewBasic returns everything except large fields: executor
	// stdout/stderr, inline input content, and system logs.
	ViewBasic View = "BASIC"

	// ViewFull returns the complete task record.
	ViewFull View = "FULL"
)

// String returns the string representation of the view.
func (v View) String() string {
	return string(v)
}

// CreateTaskResponse is returned by task submission.
type CreateTaskResponse struct {
	// ID is the server-assigned task identifier.
	ID string `json:"id"`
}

// ListTasksResponse is one page of a task listing.
type ListTasksResponse struct {
	// Tasks holds the page's tasks in the server's order.
	Tasks []Task `json:"tasks"`

	// NextPageToken requests the next page when passed to ListTasks.
	// Empty on the final page.
	NextPageToken string `json:"next_page_token,omitempty"`
}
