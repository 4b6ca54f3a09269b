// Package client implements the GA4GH Task Execution Service (TES) v1
// HTTP client: service discovery, task submission, retrieval, listing
// with cursor pagination, and cancellation.
//
// # Building a Client
//
// Configuration is accumulated on a Builder and validated once:
//
//	c, err := client.NewBuilder().
//		URL("https://tes.example.org").
//		BearerToken(token).
//		MaxAttempts(5).
//		Build()
//
// The returned Client is immutable and safe for concurrent use. Every
// operation takes a context and suspends only while waiting on the HTTP
// exchange or a retry backoff, so abandoning the context stops the
// operation without leaving retries running in the background.
//
// # Operations
//
// The five TES operations map one-to-one onto methods:
//
//	info, err := c.ServiceInfo(ctx)
//	id, err := c.CreateTask(ctx, task)
//	task, err := c.GetTask(ctx, id, tes.ViewFull)
//	page, err := c.ListTasks(ctx, &client.ListTasksParams{NamePrefix: "align-"})
//	err = c.CancelTask(ctx, id)
//
// # Retries
//
// Transport failures and retryable HTTP statuses (429 and 5xx) are
// retried with exponential backoff and jitter up to the configured
// attempt budget. Task creation is the exception: once any HTTP response
// has arrived the request may already have been applied, so CreateTask
// retries transport failures only. Validation and decoding failures are
// never retried. Failures surface as *errors.Error values carrying the
// operation, kind, and cause; the client never logs on the caller's
// behalf.
//
// # Listing Tasks
//
// ListTasks returns one page. TaskPager walks all of them lazily:
//
//	pager := c.Tasks(&client.ListTasksParams{View: tes.ViewBasic})
//	for pager.More() {
//		page, err := pager.Next(ctx)
//		if err != nil {
//			return err
//		}
//		for _, t := range page.Tasks {
//			fmt.Println(t.ID, t.State)
//		}
//	}
//
// ListAllTasks collects every page into one slice when laziness is not
// needed.
package client
