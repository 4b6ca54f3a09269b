package tes

// TaskBuilder assembles a Task incrementally. It is not safe for
// concurrent use; build the task on one goroutine and share the result.
type TaskBuilder struct {
	task Task
}

// NewTask returns an empty task builder.
func NewTask() *TaskBuilder {
	return &TaskBuilder{}
}

// Name sets the task name.
func (b *TaskBuilder) Name(name string) *TaskBuilder {
	b.task.Name = name
	return b
}

// Description sets the task description.
func (b *TaskBuilder) Description(description string) *TaskBuilder {
	b.task.Description = description
	return b
}

// Input appends an input to stage into the task.
func (b *TaskBuilder) Input(in Input) *TaskBuilder {
	b.task.Inputs = append(b.task.Inputs, in)
	return b
}

// Output appends an output to upload from the task.
func (b *TaskBuilder) Output(out Output) *TaskBuilder {
	b.task.Outputs = append(b.task.Outputs, out)
	return b
}

// Resources sets the task's resource request.
func (b *TaskBuilder) Resources(r Resources) *TaskBuilder {
	b.task.Resources = &r
	return b
}

// Executor appends an executor to the run sequence.
func (b *TaskBuilder) Executor(e Executor) *TaskBuilder {
	b.task.Executors = append(b.task.Executors, e)
	return b
}

// Volume adds a path shared between the task's executors.
func (b *TaskBuilder) Volume(path string) *TaskBuilder {
	b.task.Volumes = append(b.task.Volumes, path)
	return b
}

// Tag adds a key-value label to the task.
func (b *TaskBuilder) Tag(key, value string) *TaskBuilder {
	if b.task.Tags == nil {
		b.task.Tags = make(map[string]string)
	}
	b.task.Tags[key] = value
	return b
}

// Build validates the accumulated task and returns a copy of it, so the
// builder can keep being used without aliasing the returned task.
func (b *TaskBuilder) Build() (*Task, error) {
	if err := b.task.Validate(); err != nil {
		return nil, err
	}
	return b.task.Clone(), nil
}
