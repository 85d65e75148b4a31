package handlers

import (
	"time"

	"service-dispatch/internal/domain"
)

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func roundToResponse(r domain.RoundResult) roundResponse {
	offered := r.Offered
	if offered == nil {
		offered = []int64{}
	}
	return roundResponse{
		OrderID:           r.OrderID,
		Round:             r.Round,
		Escalation:        r.Escalation,
		RadiusKm:          r.RadiusKm,
		State:             string(r.State),
		Offered:           offered,
		ExpiresAt:         timePtr(r.ExpiresAt),
		NoAgentsAvailable: r.NoAgentsAvailable,
	}
}

func acceptToResponse(r domain.AcceptResult) acceptResponse {
	return acceptResponse{
		Outcome:    string(r.Outcome),
		OrderID:    r.OrderID,
		CourierID:  r.CourierID,
		AcceptedAt: timePtr(r.AcceptedAt),
		RoundState: string(r.RoundState),
	}
}

func rejectToResponse(r domain.RejectResult) rejectResponse {
	out := rejectResponse{
		OrderID:      r.OrderID,
		CourierID:    r.CourierID,
		RoundState:   string(r.RoundState),
		Redispatched: r.Redispatched,
		Exhausted:    r.Exhausted,
	}
	if r.Round != nil {
		rr := roundToResponse(*r.Round)
		out.Round = &rr
	}
	return out
}

func assignmentToDTO(a domain.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:              a.ID,
		OrderID:         a.OrderID,
		CourierID:       a.CourierID,
		Round:           a.Round,
		Escalation:      a.Escalation,
		Status:          string(a.Status),
		AssignedAt:      a.AssignedAt,
		OfferExpiresAt:  a.OfferExpiresAt,
		AcceptedAt:      a.AcceptedAt,
		RejectedAt:      a.RejectedAt,
		PickedUpAt:      a.PickedUpAt,
		DeliveredAt:     a.DeliveredAt,
		RejectionReason: a.RejectionReason,
	}
}

func assignmentsToResponse(list []domain.Assignment) []assignmentDTO {
	out := make([]assignmentDTO, 0, len(list))
	for _, a := range list {
		out = append(out, assignmentToDTO(a))
	}
	return out
}

func snapshotToResponse(s domain.CourierSnapshot) snapshotResponse {
	return snapshotResponse{
		CourierID:         s.ID,
		Online:            s.Online,
		Lat:               s.Location.Lat,
		Lon:               s.Location.Lon,
		RecordedAt:        timePtr(s.RecordedAt),
		Rating:            s.Rating,
		ActiveAssignments: s.ActiveAssignments,
	}
}
