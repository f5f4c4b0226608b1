package order

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with a fixed legal edge set so that orders follow the correct
// business workflow no matter which actor requests the change.
//
// State transitions:
//
//	Pending ──> Assigned ──> OnTheWay ──> Delivered
//	   ^            │            │
//	   └────────────┴────────────┘  (return-to-queue)
//
//	{Pending, Assigned, OnTheWay} ──> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
// Re-applying a transition that already happened is rejected rather than
// treated as a no-op, so stale clients surface instead of silently racing.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is placed and waiting for
	// a driver. Return-to-queue also lands orders back here.
	Pending

	// Assigned indicates a driver has been attached to the order.
	// Reassignment is allowed while in this status.
	Assigned

	// OnTheWay indicates the driver has started the delivery run.
	OnTheWay

	// Delivered indicates the order was handed over. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled by an operator or the
	// customer, with a stored reason. Terminal.
	Cancelled
)

// getStatusStrings returns the string representation for every Status value,
// including Unknown, to support display and logging.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		OnTheWay:  "OnTheWay",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns only the statuses accepted from external
// sources such as the database or API payloads.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Assigned:  "Assigned",
		OnTheWay:  "OnTheWay",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// legalEdges is the complete transition table. A requested change is allowed
// iff it appears here; everything else is a conflict. Keeping the edge set as
// data makes the validator a pure table lookup.
func legalEdges() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Pending:  {Assigned, Cancelled},
		Assigned: {Assigned, OnTheWay, Cancelled, Pending},
		OnTheWay: {Delivered, Cancelled, Pending},
	}
}

// Validate checks that the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the edge s -> next is in the legal edge set.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range legalEdges()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// transitionTo is the single gate every transition method goes through.
// Illegal edges yield a ConflictError and leave the caller's state untouched.
func (s Status) transitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return 0, errs.NewConflictErrorWithCause("order status",
			fmt.Errorf("transition from %s to %s is not allowed", s, next))
	}
	return next, nil
}

// Assign transitions the status to Assigned.
//
// Valid from Pending (initial assignment) and Assigned (reassignment, which
// overwrites the prior driver atomically). Conflict from everywhere else.
func (s Status) Assign() (Status, error) {
	return s.transitionTo(Assigned)
}

// Advance moves the status exactly one step along the forward path:
// Assigned -> OnTheWay -> Delivered. The requested next status must be the
// immediate successor; skip-ahead, backward, and terminal-source requests
// are conflicts.
func (s Status) Advance(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	forward := map[Status]Status{
		Assigned: OnTheWay,
		OnTheWay: Delivered,
	}

	successor, ok := forward[s]
	if !ok || successor != next {
		return 0, errs.NewConflictErrorWithCause("order status",
			fmt.Errorf("cannot advance from %s to %s", s, next))
	}
	return s.transitionTo(next)
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.transitionTo(Cancelled)
}

// ReturnToQueue transitions Assigned or OnTheWay back to Pending.
// Conflict from Pending itself: a no-op there would mask a stale caller.
func (s Status) ReturnToQueue() (Status, error) {
	return s.transitionTo(Pending)
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment when reconstructing orders from persistence.
//
// Orders in Pending must not carry a driver; Assigned, OnTheWay, and Delivered
// must. Cancelled orders may or may not, depending on when the cancel landed.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s))
	}

	if !hasDriver && (s == Assigned || s == OnTheWay || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s))
	}

	return nil
}
