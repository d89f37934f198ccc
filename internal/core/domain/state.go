package domain

// TaskState is the lifecycle state of a test task or a test run.
type TaskState uint8

const (
	// StateCreated is the initial state.
	StateCreated TaskState = iota
	// StateInitializing is entered while the driver prepares the task.
	StateInitializing
	// StateInitialized is entered once the task is ready to run.
	StateInitialized
	// StateRunning is entered while the task body executes.
	StateRunning
	// StateCompleted is entered when the task body returned without failure.
	StateCompleted
	// StateCanceling is entered when a cancellation was requested.
	StateCanceling
	// StateCanceled is entered after the cancellation hook ran.
	StateCanceled
	// StateFailed is entered when the task could not be completed.
	StateFailed
	// StateFinalizing is entered while resources are released.
	StateFinalizing
)

var stateNames = [...]string{
	StateCreated:      "CREATED",
	StateInitializing: "INITIALIZING",
	StateInitialized:  "INITIALIZED",
	StateRunning:      "RUNNING",
	StateCompleted:    "COMPLETED",
	StateCanceling:    "CANCELING",
	StateCanceled:     "CANCELED",
	StateFailed:       "FAILED",
	StateFinalizing:   "FINALIZING",
}

// String returns the upper case name of the state.
func (s TaskState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

// MarshalText implements encoding.TextMarshaler.
func (s TaskState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal reports whether no further work happens in this state.
func (s TaskState) IsTerminal() bool {
	return s == StateCompleted || s == StateCanceled || s == StateFailed
}

// IsActive reports whether the state can still be canceled or fail.
func (s TaskState) IsActive() bool {
	return s <= StateRunning
}

// CanTransitionTo reports whether next is a legal successor of s.
// Re-entering StateFinalizing is allowed; all other self transitions are not.
func (s TaskState) CanTransitionTo(next TaskState) bool {
	switch next {
	case StateInitializing:
		return s == StateCreated
	case StateInitialized:
		return s == StateInitializing
	case StateRunning:
		return s == StateInitialized
	case StateCompleted:
		return s == StateRunning
	case StateCanceling, StateFailed:
		return s.IsActive()
	case StateCanceled:
		return s == StateCanceling
	case StateFinalizing:
		return s.IsTerminal() || s == StateFinalizing
	default:
		return false
	}
}
