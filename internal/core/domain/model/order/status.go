package order

import (
	"fmt"
	"strings"

	"fooddispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	NEW ──assign──> ASSIGNED ──start──> IN_PROGRESS ──complete──> DELIVERED
//	 │                 │                     │
//	 └─────cancel──────┴────────cancel───────┴──────> CANCELLED
//
// NEW is the only initial state; DELIVERED and CANCELLED are terminal.
// Every transition method returns *errs.ConflictError when the receiver is
// not a valid source state for the event.
type Status int

const (
	// Unknown is the zero value and never a persisted state.
	Unknown Status = iota
	New
	Assigned
	InProgress
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	New:        "NEW",
	Assigned:   "ASSIGNED",
	InProgress: "IN_PROGRESS",
	Delivered:  "DELIVERED",
	Cancelled:  "CANCELLED",
}

// ActiveStatuses are the non-terminal states.
func ActiveStatuses() []Status {
	return []Status{New, Assigned, InProgress}
}

// AllStatuses lists every valid state in lifecycle order.
func AllStatuses() []Status {
	return []Status{New, Assigned, InProgress, Delivered, Cancelled}
}

// ParseStatus converts the persisted or wire name ("NEW", "IN_PROGRESS", ...)
// into a Status. Matching is case-insensitive.
//
// Returns:
//   - Status: the parsed state
//   - error: *errs.ValueIsInvalidError for an unknown name
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for st, n := range statusNames {
		if n == name {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// String returns the persisted name, or "UNKNOWN".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// HoldsCourierLoad reports whether an order in this state is counted in its
// courier's current load.
func (s Status) HoldsCourierLoad() bool {
	return s == Assigned || s == InProgress
}

// Assign transitions NEW -> ASSIGNED.
func (s Status) Assign() (Status, error) {
	return s.transition("assign", Assigned, New)
}

// Start transitions ASSIGNED -> IN_PROGRESS.
func (s Status) Start() (Status, error) {
	return s.transition("start", InProgress, Assigned)
}

// Complete transitions IN_PROGRESS -> DELIVERED.
func (s Status) Complete() (Status, error) {
	return s.transition("complete", Delivered, InProgress)
}

// Cancel transitions any non-terminal state to CANCELLED.
func (s Status) Cancel() (Status, error) {
	return s.transition("cancel", Cancelled, New, Assigned, InProgress)
}

func (s Status) transition(event string, to Status, from ...Status) (Status, error) {
	for _, f := range from {
		if s == f {
			return to, nil
		}
	}
	return Unknown, NewTransitionConflict(event, s)
}

// StatusConflict is the subject of conflicts raised by refused transitions.
const StatusConflict = "order status"

// NewTransitionConflict builds the conflict returned when event is not
// allowed from the current status.
func NewTransitionConflict(event string, current Status) *errs.ConflictError {
	return errs.NewConflictErrorWithCause(
		StatusConflict,
		fmt.Errorf("cannot %s an order in status %s", event, current),
	)
}
