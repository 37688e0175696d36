package booking

import "github.com/servihub/marketplace-api/internal/httperr"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"

	// Declared in the schema but not reachable through any exposed
	// operation. Kept so stored rows using them stay representable.
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Blocking statuses occupy vendor time for conflict purposes.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusAccepted
}

type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

func InitialStatus() Status {
	return StatusPending
}

// ParseAction validates a vendor response action.
func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case ActionAccept, ActionReject:
		return Action(raw), nil
	default:
		return "", httperr.ErrBusiness("invalid_action")
	}
}

// Resolve returns the status a pending booking moves to for the action.
// Only pending bookings may transition; everything else is already resolved.
func Resolve(current Status, action Action) (Status, error) {
	if current != StatusPending {
		return current, httperr.ErrBusiness("already_resolved")
	}
	if action == ActionAccept {
		return StatusAccepted, nil
	}
	return StatusRejected, nil
}
