package domain

import (
	"fmt"
	"time"

	"service-dispatch/internal/apperr"
)

// AssignmentStatus is the lifecycle state of an assignment row.
type AssignmentStatus string

// List of assignment statuses
const (
	AssignmentPending   AssignmentStatus = "PENDING"
	AssignmentAccepted  AssignmentStatus = "ACCEPTED"
	AssignmentRejected  AssignmentStatus = "REJECTED"
	AssignmentCancelled AssignmentStatus = "CANCELLED"
	AssignmentCompleted AssignmentStatus = "COMPLETED"
)

var allowedAssignmentStatuses = [...]AssignmentStatus{
	AssignmentPending, AssignmentAccepted, AssignmentRejected, AssignmentCancelled, AssignmentCompleted,
}

// Valid checks if the AssignmentStatus is known.
func (s AssignmentStatus) Valid() bool {
	for _, v := range allowedAssignmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// AssignmentEvent is something that happens to an assignment row.
type AssignmentEvent string

// List of assignment events
const (
	EventAccept   AssignmentEvent = "accept"
	EventReject   AssignmentEvent = "reject"
	EventExpire   AssignmentEvent = "expire"
	EventCancel   AssignmentEvent = "cancel"
	EventComplete AssignmentEvent = "complete"
)

type transitionKey struct {
	from  AssignmentStatus
	event AssignmentEvent
}

// assignmentTransitions is the whole assignment state machine.
var assignmentTransitions = map[transitionKey]AssignmentStatus{
	{AssignmentPending, EventAccept}:    AssignmentAccepted,
	{AssignmentPending, EventReject}:    AssignmentRejected,
	{AssignmentPending, EventExpire}:    AssignmentRejected,
	{AssignmentPending, EventCancel}:    AssignmentCancelled,
	{AssignmentAccepted, EventComplete}: AssignmentCompleted,
	{AssignmentAccepted, EventCancel}:   AssignmentCancelled,
}

// Transition returns the status reached by applying event to from.
func Transition(from AssignmentStatus, event AssignmentEvent) (AssignmentStatus, error) {
	to, ok := assignmentTransitions[transitionKey{from: from, event: event}]
	if !ok {
		return "", fmt.Errorf("assignment %s cannot %s: %w", from, event, apperr.ErrConflict)
	}
	return to, nil
}

// Rejection reasons written by the engine itself.
const (
	ReasonExpired       = "expired"
	ReasonSiblingWon    = "order assigned to another courier"
	ReasonOrderCanceled = "order canceled"
)

// Assignment is the durable record of one courier being offered one order.
type Assignment struct {
	ID              int64
	OrderID         string
	CourierID       int64
	Round           int
	Escalation      int
	Status          AssignmentStatus
	AssignedAt      time.Time
	OfferExpiresAt  time.Time
	AcceptedAt      *time.Time
	RejectedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	RejectionReason string
}

// ActiveStatuses are the statuses counted as courier load.
func ActiveStatuses() []AssignmentStatus {
	return []AssignmentStatus{AssignmentPending, AssignmentAccepted}
}

// OrderAssignmentState summarizes the ledger rows of a single order.
type OrderAssignmentState struct {
	LastRound      int
	LastEscalation int
	Pending        int
	Accepted       bool
	HasRounds      bool
}
