package ecs

// State is the lifecycle stage of an Object.
type State uint8

const (
	StateUninitialized State = iota
	StateInitialized
	StatePendingCleanup
	StateRemovable
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StatePendingCleanup:
		return "pending-cleanup"
	case StateRemovable:
		return "removable"
	default:
		return "uninitialized"
	}
}

// lifecycle holds the flags behind State. Embedded in Object.
type lifecycle struct {
	initialized    bool
	pendingCleanup bool
	removable      bool
}

// Initialized reports whether DoInit ran and DeInit has not been called since.
func (l *lifecycle) Initialized() bool { return l.initialized }

// PendingCleanup reports whether DeInit was called and cleanup has not run yet.
func (l *lifecycle) PendingCleanup() bool { return l.pendingCleanup }

// Removable reports whether cleanup finished and the owner may evict the object.
func (l *lifecycle) Removable() bool { return l.removable }

// State collapses the flags into a single stage.
func (l *lifecycle) State() State {
	switch {
	case l.pendingCleanup:
		return StatePendingCleanup
	case l.initialized:
		return StateInitialized
	case l.removable:
		return StateRemovable
	default:
		return StateUninitialized
	}
}
