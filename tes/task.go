package tes

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	// ErrNoExecutors indicates the task has no executors.
	ErrNoExecutors = errors.New("task requires at least one executor")

	// ErrMissingImage indicates an executor has no container image.
	ErrMissingImage = errors.New("executor image is required")

	// ErrMissingCommand indicates an executor has an empty command.
	ErrMissingCommand = errors.New("executor command is required")

	// ErrMissingPath indicates an input or output has no container path.
	ErrMissingPath = errors.New("path is required")

	// ErrMissingURL indicates an output has no destination URL.
	ErrMissingURL = errors.New("output url is required")

	// ErrInputSource indicates an input does not have exactly one of
	// url or content set.
	ErrInputSource = errors.New("input requires exactly one of url or content")

	// ErrBadContent indicates inline input content is not valid base64.
	ErrBadContent = errors.New("input content is not valid base64")
)

// FileType distinguishes files from directories in task inputs and outputs.
type FileType string

const (
	// FileTypeFile marks a single file. This is the default when the
	// type is omitted.
	FileTypeFile FileType = "FILE"

	// FileTypeDirectory marks a directory transferred recursively.
	FileTypeDirectory FileType = "DIRECTORY"
)

// Task is a unit of containerized work: one or more executors run in
// sequence against shared inputs, outputs, and volumes.
type Task struct {
	// ID is the server-assigned task identifier. Empty on submission.
	ID string `json:"id,omitempty"`

	// State is the current lifecycle state. Assigned by the server.
	State State `json:"state,omitempty"`

	// Name is a user-provided task name. Not unique.
	Name string `json:"name,omitempty"`

	// Description is free-form task documentation.
	Description string `json:"description,omitempty"`

	// Inputs are files or directories staged into the task before the
	// first executor starts.
	Inputs []Input `json:"inputs,omitempty"`

	// Outputs are files or directories uploaded from the task after the
	// last executor finishes.
	Outputs []Output `json:"outputs,omitempty"`

	// Resources are scheduling hints: CPU, RAM, disk, zones. Nil means
	// the backend chooses.
	Resources *Resources `json:"resources,omitempty"`

	// Executors run in order. Each must complete before the next
	// starts, and a failure stops the sequence unless the executor sets
	// IgnoreError.
	Executors []Executor `json:"executors"`

	// Volumes are paths shared between executors, relative to the
	// container root. Contents are discarded when the task ends.
	Volumes []string `json:"volumes,omitempty"`

	// Tags are arbitrary key-value labels. Servers can filter task
	// listings by tag.
	Tags map[string]string `json:"tags,omitempty"`

	// Logs holds one entry per task attempt, newest last. Populated by
	// the server; the level of detail depends on the requested view.
	Logs []TaskLog `json:"logs,omitempty"`

	// CreationTime is when the server accepted the task.
	CreationTime *time.Time `json:"creation_time,omitempty"`
}

// Validate checks that the task is well-formed for submission: at least
// one executor, image and command on every executor, paths on all inputs
// and outputs, exactly one source per input, and decodable inline content.
func (t *Task) Validate() error {
	if len(t.Executors) == 0 {
		return ErrNoExecutors
	}
	for i, e := range t.Executors {
		if e.Image == "" {
			return fmt.Errorf("executors[%d]: %w", i, ErrMissingImage)
		}
		if len(e.Command) == 0 {
			return fmt.Errorf("executors[%d]: %w", i, ErrMissingCommand)
		}
	}
	for i, in := range t.Inputs {
		if in.Path == "" {
			return fmt.Errorf("inputs[%d]: %w", i, ErrMissingPath)
		}
		hasURL := in.URL != ""
		hasContent := in.Content != nil
		if hasURL == hasContent {
			return fmt.Errorf("inputs[%d]: %w", i, ErrInputSource)
		}
		if hasContent {
			if _, err := in.ContentBytes(); err != nil {
				return fmt.Errorf("inputs[%d]: %w", i, err)
			}
		}
	}
	for i, out := range t.Outputs {
		if out.URL == "" {
			return fmt.Errorf("outputs[%d]: %w", i, ErrMissingURL)
		}
		if out.Path == "" {
			return fmt.Errorf("outputs[%d]: %w", i, ErrMissingPath)
		}
	}
	return nil
}

// Clone creates a deep copy of the task.
func (t *Task) Clone() *Task {
	clone := &Task{
		ID:          t.ID,
		State:       t.State,
		Name:        t.Name,
		Description: t.Description,
	}

	if t.Inputs != nil {
		clone.Inputs = make([]Input, len(t.Inputs))
		for i, in := range t.Inputs {
			clone.Inputs[i] = *in.clone()
		}
	}

	if t.Outputs != nil {
		clone.Outputs = append([]Output(nil), t.Outputs...)
	}

	if t.Resources != nil {
		clone.Resources = t.Resources.clone()
	}

	if t.Executors != nil {
		clone.Executors = make([]Executor, len(t.Executors))
		for i, e := range t.Executors {
			clone.Executors[i] = *e.clone()
		}
	}

	if t.Volumes != nil {
		clone.Volumes = append([]string(nil), t.Volumes...)
	}

	if t.Tags != nil {
		clone.Tags = make(map[string]string, len(t.Tags))
		for k, v := range t.Tags {
			clone.Tags[k] = v
		}
	}

	if t.Logs != nil {
		clone.Logs = make([]TaskLog, len(t.Logs))
		for i, l := range t.Logs {
			clone.Logs[i] = *l.clone()
		}
	}

	if t.CreationTime != nil {
		created := *t.CreationTime
		clone.CreationTime = &created
	}

	return clone
}

// Executor describes a single container run within a task.
type Executor struct {
	// Image is the container image reference, including tag or digest.
	Image string `json:"image"`

	// Command is the argv to run inside the container. The first
	// element is the executable.
	Command []string `json:"command"`

	// Workdir is the working directory inside the container.
	Workdir string `json:"workdir,omitempty"`

	// Stdin is a container path to attach to the executor's stdin,
	// typically the path of a staged input.
	Stdin string `json:"stdin,omitempty"`

	// Stdout is a container path to capture the executor's stdout.
	Stdout string `json:"stdout,omitempty"`

	// Stderr is a container path to capture the executor's stderr.
	Stderr string `json:"stderr,omitempty"`

	// Env is the environment visible to the command.
	Env map[string]string `json:"env,omitempty"`

	// IgnoreError lets the task continue to the next executor even if
	// this one exits non-zero.
	IgnoreError bool `json:"ignore_error,omitempty"`
}

func (e *Executor) clone() *Executor {
	clone := &Executor{
		Image:       e.Image,
		Workdir:     e.Workdir,
		Stdin:       e.Stdin,
		Stdout:      e.Stdout,
		Stderr:      e.Stderr,
		IgnoreError: e.IgnoreError,
	}
	if e.Command != nil {
		clone.Command = append([]string(nil), e.Command...)
	}
	if e.Env != nil {
		clone.Env = make(map[string]string, len(e.Env))
		for k, v := range e.Env {
			clone.Env[k] = v
		}
	}
	return clone
}

// Input is a file or directory staged into the task before execution.
// Exactly one of URL or Content must be set.
type Input struct {
	// Name is an optional label for the input.
	Name string `json:"name,omitempty"`

	// Description is free-form documentation for the input.
	Description string `json:"description,omitempty"`

	// URL is the storage location to fetch the input from.
	URL string `json:"url,omitempty"`

	// Path is where the input appears inside the container. Required.
	Path string `json:"path"`

	// Type marks the input as a file or directory. Defaults to FILE.
	Type FileType `json:"type,omitempty"`

	// Content is inline file data, base64-encoded on the wire. Use
	// SetContent and ContentBytes instead of writing this directly.
	Content *string `json:"content,omitempty"`
}

// SetContent inlines data as the input's source, replacing any URL. The
// data is stored base64-encoded as the wire format requires.
func (i *Input) SetContent(data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	i.Content = &encoded
	i.URL = ""
}

// ContentBytes decodes the inline content. It returns nil with no error
// when the input has no inline content, and ErrBadContent when the
// content is present but not valid base64.
func (i *Input) ContentBytes() ([]byte, error) {
	if i.Content == nil {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(*i.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadContent, err)
	}
	return data, nil
}

func (i *Input) clone() *Input {
	clone := &Input{
		Name:        i.Name,
		Description: i.Description,
		URL:         i.URL,
		Path:        i.Path,
		Type:        i.Type,
	}
	if i.Content != nil {
		content := *i.Content
		clone.Content = &content
	}
	return clone
}

// Output is a file or directory uploaded from the task after execution.
type Output struct {
	// Name is an optional label for the output.
	Name string `json:"name,omitempty"`

	// Description is free-form documentation for the output.
	Description string `json:"description,omitempty"`

	// URL is the storage location to upload the output to. Required.
	URL string `json:"url"`

	// Path is where the output is produced inside the container. Required.
	Path string `json:"path"`

	// Type marks the output as a file or directory. Defaults to FILE.
	Type FileType `json:"type,omitempty"`
}

// Resources describes the compute the task asks for. All fields are
// optional: nil means no preference, which is different from zero.
type Resources struct {
	// CPUCores is the requested number of CPU cores.
	CPUCores *int64 `json:"cpu_cores,omitempty"`

	// Preemptible indicates the task tolerates preemptible machines.
	Preemptible *bool `json:"preemptible,omitempty"`

	// RAMGB is the requested memory in gigabytes.
	RAMGB *float64 `json:"ram_gb,omitempty"`

	// DiskGB is the requested disk space in gigabytes.
	DiskGB *float64 `json:"disk_gb,omitempty"`

	// Zones restricts scheduling to the named compute zones.
	Zones []string `json:"zones,omitempty"`
}

func (r *Resources) clone() *Resources {
	clone := &Resources{}
	if r.CPUCores != nil {
		cores := *r.CPUCores
		clone.CPUCores = &cores
	}
	if r.Preemptible != nil {
		preemptible := *r.Preemptible
		clone.Preemptible = &preemptible
	}
	if r.RAMGB != nil {
		ram := *r.RAMGB
		clone.RAMGB = &ram
	}
	if r.DiskGB != nil {
		disk := *r.DiskGB
		clone.DiskGB = &disk
	}
	if r.Zones != nil {
		clone.Zones = append([]string(nil), r.Zones...)
	}
	return clone
}

// TaskLog records one attempt at running the task.
type TaskLog struct {
	// Logs holds one entry per executor, in execution order.
	Logs []ExecutorLog `json:"logs"`

	// StartTime is when this attempt started.
	StartTime *time.Time `json:"start_time,omitempty"`

	// EndTime is when this attempt ended.
	EndTime *time.Time `json:"end_time,omitempty"`

	// Outputs describes the files the attempt uploaded. Populated once
	// the task completes.
	Outputs []OutputFileLog `json:"outputs"`

	// SystemLogs holds backend diagnostics, typically explaining
	// SYSTEM_ERROR states. Only returned in the FULL view.
	SystemLogs []string `json:"system_logs,omitempty"`
}

func (l *TaskLog) clone() *TaskLog {
	clone := &TaskLog{}
	if l.Logs != nil {
		clone.Logs = make([]ExecutorLog, len(l.Logs))
		for i, el := range l.Logs {
			clone.Logs[i] = *el.clone()
		}
	}
	if l.StartTime != nil {
		start := *l.StartTime
		clone.StartTime = &start
	}
	if l.EndTime != nil {
		end := *l.EndTime
		clone.EndTime = &end
	}
	if l.Outputs != nil {
		clone.Outputs = append([]OutputFileLog(nil), l.Outputs...)
	}
	if l.SystemLogs != nil {
		clone.SystemLogs = append([]string(nil), l.SystemLogs...)
	}
	return clone
}

// ExecutorLog records a single executor run.
type ExecutorLog struct {
	// StartTime is when the executor started.
	StartTime *time.Time `json:"start_time,omitempty"`

	// EndTime is when the executor exited.
	EndTime *time.Time `json:"end_time,omitempty"`

	// Stdout is captured standard output. Only returned in the FULL
	// view, and servers may truncate it.
	Stdout string `json:"stdout,omitempty"`

	// Stderr is captured standard error. Only returned in the FULL
	// view, and servers may truncate it.
	Stderr string `json:"stderr,omitempty"`

	// ExitCode is the executor's exit status. Nil while running.
	ExitCode *int32 `json:"exit_code,omitempty"`
}

func (l *ExecutorLog) clone() *ExecutorLog {
	clone := &ExecutorLog{
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	}
	if l.StartTime != nil {
		start := *l.StartTime
		clone.StartTime = &start
	}
	if l.EndTime != nil {
		end := *l.EndTime
		clone.EndTime = &end
	}
	if l.ExitCode != nil {
		code := *l.ExitCode
		clone.ExitCode = &code
	}
	return clone
}

// OutputFileLog describes one uploaded output file.
type OutputFileLog struct {
	// URL is where the file was uploaded.
	URL string `json:"url"`

	// Path is the container path the file was read from.
	Path string `json:"path"`

	// SizeBytes is the file size in bytes, as a decimal string. The
	// schema uses a string because 64-bit sizes overflow JSON numbers.
	SizeBytes string `json:"size_bytes"`
}

// Pointer helpers for optional fields.

// Int32 returns a pointer to v.
func Int32(v int32) *int32 { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
