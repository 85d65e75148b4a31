package handlers

import (
	"context"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/dispatch"
)

type dispatchUsecase interface {
	Dispatch(ctx context.Context, orderID string) (domain.RoundResult, error)
	Accept(ctx context.Context, orderID string, courierID int64) (domain.AcceptResult, error)
	Reject(ctx context.Context, orderID string, courierID int64, reason string) (domain.RejectResult, error)
	MarkPickedUp(ctx context.Context, orderID string, courierID int64) error
	MarkDelivered(ctx context.Context, orderID string, courierID int64) error
	Assignment(ctx context.Context, id int64) (domain.Assignment, error)
}

// NewDispatchUsecase wires the engine into a dispatchUsecase.
func NewDispatchUsecase(svc *dispatch.Service) dispatchUsecase {
	return svc
}

type courierUsecase interface {
	CourierAssignments(ctx context.Context, courierID int64, statuses []domain.AssignmentStatus, limit, offset int) ([]domain.Assignment, error)
	UpdateLocation(ctx context.Context, courierID int64, loc domain.Point, online bool) error
	CourierSnapshot(ctx context.Context, courierID int64) (domain.CourierSnapshot, error)
}

// NewCourierUsecase wires the engine into a courierUsecase.
func NewCourierUsecase(svc *dispatch.Service) courierUsecase {
	return svc
}
