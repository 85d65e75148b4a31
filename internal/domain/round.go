package domain

import (
	"fmt"
	"time"

	"service-dispatch/internal/apperr"
)

// RoundState is the state of one order-matching round.
type RoundState string

// List of round states
const (
	RoundIdle        RoundState = "IDLE"
	RoundSearching   RoundState = "SEARCHING"
	RoundOffered     RoundState = "OFFERED"
	RoundResolved    RoundState = "RESOLVED"
	RoundAllDeclined RoundState = "ALL_DECLINED"
	RoundExpired     RoundState = "EXPIRED"
)

// RoundEvent drives a round between states.
type RoundEvent string

// List of round events
const (
	RoundStart        RoundEvent = "start"
	RoundCandidates   RoundEvent = "candidates_found"
	RoundNoCandidates RoundEvent = "no_candidates"
	RoundWon          RoundEvent = "courier_won"
	RoundAllRejected  RoundEvent = "all_rejected"
	RoundTimedOut     RoundEvent = "all_expired"
)

type roundKey struct {
	from  RoundState
	event RoundEvent
}

var roundTransitions = map[roundKey]RoundState{
	{RoundIdle, RoundStart}:             RoundSearching,
	{RoundSearching, RoundCandidates}:   RoundOffered,
	{RoundSearching, RoundNoCandidates}: RoundAllDeclined,
	{RoundOffered, RoundWon}:            RoundResolved,
	{RoundOffered, RoundAllRejected}:    RoundAllDeclined,
	{RoundOffered, RoundTimedOut}:       RoundExpired,
}

// NextRoundState returns the state reached by applying event to from.
func NextRoundState(from RoundState, event RoundEvent) (RoundState, error) {
	to, ok := roundTransitions[roundKey{from: from, event: event}]
	if !ok {
		return "", fmt.Errorf("round %s cannot handle %s: %w", from, event, apperr.ErrConflict)
	}
	return to, nil
}

// Terminal reports whether no further event may move the round.
func (s RoundState) Terminal() bool {
	return s == RoundResolved || s == RoundAllDeclined || s == RoundExpired
}

// RoundResult is returned by Dispatch.
type RoundResult struct {
	OrderID           string
	Round             int
	Escalation        int
	RadiusKm          float64
	Offered           []int64
	ExpiresAt         time.Time
	State             RoundState
	NoAgentsAvailable bool
}

// AcceptOutcome tells a courier whether they got the order.
type AcceptOutcome string

// List of accept outcomes
const (
	AcceptWon     AcceptOutcome = "won"
	AcceptTooLate AcceptOutcome = "too_late"
)

// AcceptResult is returned by Accept.
type AcceptResult struct {
	Outcome    AcceptOutcome
	OrderID    string
	CourierID  int64
	AcceptedAt time.Time
	// RoundState is RESOLVED for the winner and empty otherwise.
	RoundState RoundState
}

// RejectResult is returned by Reject.
type RejectResult struct {
	OrderID   string
	CourierID int64
	// RoundState is the state of the courier's round after the refusal.
	RoundState   RoundState
	Redispatched bool
	Exhausted    bool
	Round        *RoundResult
}
