// Package tes defines the GA4GH Task Execution Service (TES) v1 data model:
// tasks, executors, inputs/outputs, resource requests, execution logs, and
// the task lifecycle state machine.
//
// The types mirror the TES v1.1 JSON schema. Optional fields are omitted
// from the wire format when unset (never serialized as null), and pointer
// fields are used where the zero value is meaningful and must be
// distinguishable from absence (resource requests, exit codes, inline
// content, timestamps).
//
// # Building Tasks
//
// Tasks can be assembled with the builder, which validates on Build:
//
//	task, err := tes.NewTask().
//	    Name("md5sum").
//	    Executor(tes.Executor{
//	        Image:   "alpine:3.20",
//	        Command: []string{"md5sum", "/data/input.txt"},
//	    }).
//	    Input(tes.Input{
//	        URL:  "s3://bucket/input.txt",
//	        Path: "/data/input.txt",
//	    }).
//	    Resources(tes.Resources{CPUCores: tes.Int64(1)}).
//	    Build()
//
// Hand-built Task values can be checked with Validate before submission.
//
// # Task Lifecycle
//
// A task moves through the following states:
//
//	QUEUED → INITIALIZING → RUNNING → COMPLETE
//	                           ↓
//	          PAUSED, PREEMPTED, CANCELING, *_ERROR
//
// COMPLETE, EXECUTOR_ERROR, SYSTEM_ERROR, and CANCELED are terminal.
// UNKNOWN is never terminal: a task whose state cannot be determined may
// still be running. Use State.IsTerminal to decide when to stop polling
// and CanTransition to check whether an observed state change is one the
// lifecycle allows.
//
// # Inline Content
//
// Small input files can be inlined instead of fetched from a URL. The
// wire encoding is base64; use Input.SetContent and Input.ContentBytes
// rather than writing the field directly:
//
//	var in tes.Input
//	in.Path = "/data/config.json"
//	in.SetContent([]byte(`{"threads": 4}`))
package tes
