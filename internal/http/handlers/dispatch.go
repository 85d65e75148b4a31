package handlers

import (
	"net/http"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// DispatchHandler serves order-side endpoints of the assignment engine.
type DispatchHandler struct {
	usecase dispatchUsecase
	logger  logx.Logger
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(logger logx.Logger, uc dispatchUsecase) *DispatchHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DispatchHandler{usecase: uc, logger: logger}
}

// Dispatch handles POST /orders/{orderID}/dispatch.
// @Summary Запустить раунд назначения
// @Description Рассылает офферы ближайшим курьерам; если никого нет, no_agents_available=true
// @Tags dispatch
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} roundResponse
// @Failure 404 {object} ErrorResponse "order not found"
// @Failure 409 {object} ErrorResponse "round already open or order assigned"
// @Failure 503 {object} ErrorResponse "temporarily unavailable"
// @Router /orders/{orderID}/dispatch [post]
func (h *DispatchHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	res, err := h.usecase.Dispatch(r.Context(), orderID)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err, "order not found", "order already dispatched")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, roundToResponse(res))
}

// Accept handles POST /orders/{orderID}/offers/{courierID}/accept.
// @Summary Принять оффер
// @Description Ровно один курьер получает заказ, остальным 409
// @Tags dispatch
// @Produce json
// @Success 200 {object} acceptResponse
// @Failure 409 {object} ErrorResponse "order no longer available"
// @Router /orders/{orderID}/offers/{courierID}/accept [post]
func (h *DispatchHandler) Accept(w http.ResponseWriter, r *http.Request) {
	orderID, courierID, ok := h.orderAndCourier(w, r)
	if !ok {
		return
	}

	res, err := h.usecase.Accept(r.Context(), orderID, courierID)
	switch {
	case err != nil:
		writeUsecaseError(h.logger, w, r, err, "offer not found", "order no longer available")
	case res.Outcome != domain.AcceptWon:
		writeError(h.logger, w, r, http.StatusConflict, "order no longer available")
	default:
		writeJSON(h.logger, w, r, http.StatusOK, acceptToResponse(res))
	}
}

// Reject handles POST /orders/{orderID}/offers/{courierID}/reject.
func (h *DispatchHandler) Reject(w http.ResponseWriter, r *http.Request) {
	orderID, courierID, ok := h.orderAndCourier(w, r)
	if !ok {
		return
	}
	var req rejectRequest
	if ok := decodeJSON(h.logger, w, r, &req, true); !ok {
		return
	}

	res, err := h.usecase.Reject(r.Context(), orderID, courierID, req.Reason)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err, "offer not found", "offer is no longer pending")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, rejectToResponse(res))
}

// PickedUp handles POST /orders/{orderID}/couriers/{courierID}/picked-up.
func (h *DispatchHandler) PickedUp(w http.ResponseWriter, r *http.Request) {
	orderID, courierID, ok := h.orderAndCourier(w, r)
	if !ok {
		return
	}
	if err := h.usecase.MarkPickedUp(r.Context(), orderID, courierID); err != nil {
		writeUsecaseError(h.logger, w, r, err, "assignment not found", "order already picked up")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statusResponse{OrderID: orderID, CourierID: courierID, Status: "picked_up"})
}

// Delivered handles POST /orders/{orderID}/couriers/{courierID}/delivered.
func (h *DispatchHandler) Delivered(w http.ResponseWriter, r *http.Request) {
	orderID, courierID, ok := h.orderAndCourier(w, r)
	if !ok {
		return
	}
	if err := h.usecase.MarkDelivered(r.Context(), orderID, courierID); err != nil {
		writeUsecaseError(h.logger, w, r, err, "assignment not found", "assignment already closed")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statusResponse{OrderID: orderID, CourierID: courierID, Status: "delivered"})
}

// Assignment handles GET /assignments/{assignmentID}.
func (h *DispatchHandler) Assignment(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "assignmentID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid assignment id")
		return
	}
	a, err := h.usecase.Assignment(r.Context(), id)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err, "assignment not found", "conflict")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentToDTO(a))
}

func (h *DispatchHandler) orderAndCourier(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	orderID, err := orderFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return "", 0, false
	}
	courierID, err := idFromURL(r, "courierID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid courier id")
		return "", 0, false
	}
	return orderID, courierID, true
}
