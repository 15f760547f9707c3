package handler

import (
	"errors"
	"net/http"

	"petclinic-booking/internal/delivery/http/middleware"
	"petclinic-booking/internal/usecase"
	"petclinic-booking/pkg/response"
)

type PanelHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
}

func NewPanelHandler(appointmentUsecase usecase.AppointmentUsecase) *PanelHandler {
	return &PanelHandler{
		appointmentUsecase: appointmentUsecase,
	}
}

// GetUserPanel returns the current user's appointments and pets
func (h *PanelHandler) GetUserPanel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	panel, err := h.appointmentUsecase.UserPanel(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalServerError(w, "Failed to get user panel")
		return
	}

	response.Success(w, http.StatusOK, "User panel retrieved successfully", panel)
}

// GetStaffAppointments lists appointments for staff.
// Optional query params: from, to (YYYY-MM-DD)
func (h *PanelHandler) GetStaffAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	appointments, err := h.appointmentUsecase.StaffPanel(r.Context(), query.Get("from"), query.Get("to"))
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
