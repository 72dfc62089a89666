package booking

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

type Event string

const (
	EventApprove  Event = "approve"
	EventReject   Event = "reject"
	EventCancel   Event = "cancel"
	EventComplete Event = "complete"
)

// InventoryEffect is the seat-inventory side effect a transition carries.
type InventoryEffect int

const (
	EffectNone InventoryEffect = iota
	// EffectRelease returns the booking's party size to its slot.
	EffectRelease
)

// InvalidTransitionError reports a lifecycle event applied to a status that
// does not permit it, carrying the status actually observed.
type InvalidTransitionError struct {
	Current Status
	Event   Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking with status %q", e.Event, e.Current)
}

// Transition is the entire lifecycle table. Every status check in the system
// funnels through here; callers must not branch on statuses themselves.
//
//	pending  -> approved | rejected | cancelled
//	approved -> cancelled | completed
//	rejected, cancelled, completed are terminal
func Transition(current Status, ev Event) (Status, InventoryEffect, error) {
	switch ev {
	case EventApprove:
		if current == StatusPending {
			return StatusApproved, EffectNone, nil
		}
	case EventReject:
		if current == StatusPending {
			return StatusRejected, EffectRelease, nil
		}
	case EventCancel:
		if current == StatusPending || current == StatusApproved {
			return StatusCancelled, EffectRelease, nil
		}
	case EventComplete:
		if current == StatusApproved {
			return StatusCompleted, EffectNone, nil
		}
	}
	return current, EffectNone, &InvalidTransitionError{Current: current, Event: ev}
}
