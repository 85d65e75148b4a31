package handlers

import (
	"net/http"
	"strings"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// CourierHandler serves courier-side endpoints: location pings, snapshot, assignment list.
type CourierHandler struct {
	usecase courierUsecase
	logger  logx.Logger
}

// NewCourierHandler wires a courierUsecase into HTTP handlers.
func NewCourierHandler(logger logx.Logger, uc courierUsecase) *CourierHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CourierHandler{usecase: uc, logger: logger}
}

// Assignments handles GET /couriers/{courierID}/assignments?status=&limit=&offset=.
// status may be repeated or comma separated.
func (h *CourierHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	courierID, err := idFromURL(r, "courierID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid courier id")
		return
	}
	limit, err := intQuery(r, "limit")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := intQuery(r, "offset")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid offset")
		return
	}

	var statuses []domain.AssignmentStatus
	for _, raw := range r.URL.Query()["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, domain.AssignmentStatus(strings.ToUpper(s)))
			}
		}
	}

	list, err := h.usecase.CourierAssignments(r.Context(), courierID, statuses, limit, offset)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err, "courier not found", "conflict")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignmentsToResponse(list))
}

// UpdateLocation handles PUT /couriers/{courierID}/location.
func (h *CourierHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	courierID, err := idFromURL(r, "courierID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid courier id")
		return
	}
	var req locationRequest
	if ok := decodeJSON(h.logger, w, r, &req, false); !ok {
		return
	}
	if req.Lat == nil || req.Lon == nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}
	online := true
	if req.Online != nil {
		online = *req.Online
	}

	err = h.usecase.UpdateLocation(r.Context(), courierID, domain.Point{Lat: *req.Lat, Lon: *req.Lon}, online)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err, "courier not found", "conflict")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Snapshot handles GET /couriers/{courierID}/snapshot.
func (h *CourierHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	courierID, err := idFromURL(r, "courierID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid courier id")
		return
	}
	snap, err := h.usecase.CourierSnapshot(r.Context(), courierID)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err, "courier not found", "conflict")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, snapshotToResponse(snap))
}
