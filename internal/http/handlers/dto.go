package handlers

import "time"

type roundResponse struct {
	OrderID           string     `json:"order_id"`
	Round             int        `json:"round"`
	Escalation        int        `json:"escalation"`
	RadiusKm          float64    `json:"radius_km"`
	State             string     `json:"state"`
	Offered           []int64    `json:"offered"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	NoAgentsAvailable bool       `json:"no_agents_available"`
}

type acceptResponse struct {
	Outcome    string     `json:"outcome"`
	OrderID    string     `json:"order_id"`
	CourierID  int64      `json:"courier_id"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	RoundState string     `json:"round_state,omitempty"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type rejectResponse struct {
	OrderID      string         `json:"order_id"`
	CourierID    int64          `json:"courier_id"`
	RoundState   string         `json:"round_state,omitempty"`
	Redispatched bool           `json:"redispatched"`
	Exhausted    bool           `json:"exhausted"`
	Round        *roundResponse `json:"round,omitempty"`
}

type statusResponse struct {
	OrderID   string `json:"order_id"`
	CourierID int64  `json:"courier_id"`
	Status    string `json:"status"`
}

type assignmentDTO struct {
	ID              int64      `json:"id"`
	OrderID         string     `json:"order_id"`
	CourierID       int64      `json:"courier_id"`
	Round           int        `json:"round"`
	Escalation      int        `json:"escalation"`
	Status          string     `json:"status"`
	AssignedAt      time.Time  `json:"assigned_at"`
	OfferExpiresAt  time.Time  `json:"offer_expires_at"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	PickedUpAt      *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

type locationRequest struct {
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Online *bool    `json:"online"`
}

type snapshotResponse struct {
	CourierID         int64      `json:"courier_id"`
	Online            bool       `json:"online"`
	Lat               float64    `json:"lat"`
	Lon               float64    `json:"lon"`
	RecordedAt        *time.Time `json:"recorded_at,omitempty"`
	Rating            float64    `json:"rating"`
	ActiveAssignments int        `json:"active_assignments"`
}
