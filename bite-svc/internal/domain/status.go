package domain

import "errors"

var ErrInvalidTransition = errors.New("status transition not allowed")

// Status is shared by purchases and purchase lines.
type Status int

const (
	StatusPending   Status = 1
	StatusPaid      Status = 2
	StatusDelivered Status = 3
	StatusCancelled Status = 4

	// statusCancelledLegacy is still found in rows written by older clients.
	statusCancelledLegacy Status = 5
)

func (s Status) Normalize() Status {
	if s == statusCancelledLegacy {
		return StatusCancelled
	}
	return s
}

func (s Status) Valid() bool {
	switch s.Normalize() {
	case StatusPending, StatusPaid, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s.Normalize() {
	case StatusPending:
		return "pending"
	case StatusPaid:
		return "paid"
	case StatusDelivered:
		return "delivered"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// CanTransitionTo reports whether a line may move from s to next.
// pending -> paid -> delivered moves forward only; cancelled is reachable
// from anywhere and never left.
func (s Status) CanTransitionTo(next Status) bool {
	from, to := s.Normalize(), next.Normalize()
	if !to.Valid() || from == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return to > from
}
