package tes

import "encoding/json"

// State represents the lifecycle state of a task.
type State string

const (
	// StateUnknown indicates the task state cannot be determined.
	// Unknown is never terminal: the task may still be running.
	StateUnknown State = "UNKNOWN"

	// StateQueued indicates the task has been accepted and is waiting
	// to be scheduled.
	StateQueued State = "QUEUED"

	// StateInitializing indicates the task is being prepared: inputs
	// are downloading and executor images are being pulled.
	StateInitializing State = "INITIALIZING"

	// StateRunning indicates at least one executor has started.
	StateRunning State = "RUNNING"

	// StatePaused indicates the backend has suspended the task.
	StatePaused State = "PAUSED"

	// StateComplete indicates all executors finished successfully.
	StateComplete State = "COMPLETE"

	// StateExecutorError indicates an executor exited with a failure.
	StateExecutorError State = "EXECUTOR_ERROR"

	// StateSystemError indicates the backend failed outside the task's
	// control (node loss, image pull failure, internal error).
	StateSystemError State = "SYSTEM_ERROR"

	// StateCanceled indicates the task was canceled by the user.
	StateCanceled State = "CANCELED"

	// StateCanceling indicates a cancel request was accepted and
	// teardown is in progress.
	StateCanceling State = "CANCELING"

	// StatePreempted indicates the backend reclaimed the task's
	// resources. The task may be requeued.
	StatePreempted State = "PREEMPTED"
)

// States lists every defined task state.
var States = []State{
	StateUnknown,
	StateQueued,
	StateInitializing,
	StateRunning,
	StatePaused,
	StateComplete,
	StateExecutorError,
	StateSystemError,
	StateCanceled,
	StateCanceling,
	StatePreempted,
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// Valid returns true if the state is one of the defined task states.
func (s State) Valid() bool {
	switch s {
	case StateUnknown, StateQueued, StateInitializing, StateRunning,
		StatePaused, StateComplete, StateExecutorError, StateSystemError,
		StateCanceled, StateCanceling, StatePreempted:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the state is final and the task will not
// change state again. UNKNOWN is not terminal.
func (s State) IsTerminal() bool {
	switch s {
	case StateComplete, StateExecutorError, StateSystemError, StateCanceled:
		return true
	default:
		return false
	}
}

// IsError returns true if the state indicates failure. CANCELED is not
// an error: it reflects a user decision, not a fault.
func (s State) IsError() bool {
	return s == StateExecutorError || s == StateSystemError
}

// IsExecuting returns true if the task has not finished and is not being
// canceled or preempted. UNKNOWN counts as executing because the task may
// still be running.
func (s State) IsExecuting() bool {
	switch s {
	case StateUnknown, StateQueued, StateInitializing, StateRunning, StatePaused:
		return true
	default:
		return false
	}
}

// UnmarshalJSON decodes a state, mapping null and unrecognized values to
// UNKNOWN so that clients keep working against servers that add states.
func (s *State) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = StateUnknown
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := State(raw)
	if !parsed.Valid() {
		parsed = StateUnknown
	}
	*s = parsed
	return nil
}

// CanTransition returns true if the lifecycle allows a task to move from
// one state to another. Servers are authoritative about the states they
// report; this table exists for consumers that track or display task
// progress and want to flag impossible sequences.
func CanTransition(from, to State) bool {
	switch from {
	case StateQueued:
		return to == StateInitializing || to == StateCanceled || to == StateSystemError
	case StateInitializing:
		return to == StateRunning || to == StateExecutorError ||
			to == StateSystemError || to == StateCanceling
	case StateRunning:
		return to == StateComplete || to == StateExecutorError ||
			to == StateSystemError || to == StatePaused ||
			to == StatePreempted || to == StateCanceling
	case StatePaused:
		return to == StateRunning || to == StateCanceling
	case StateCanceling:
		return to == StateCanceled
	case StatePreempted:
		return to == StateQueued || to == StateSystemError
	default:
		return false
	}
}
