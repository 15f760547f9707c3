package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"petclinic-booking/internal/delivery/dto"
	"petclinic-booking/internal/delivery/http/middleware"
	"petclinic-booking/internal/usecase"
	"petclinic-booking/pkg/response"
	"petclinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type BookingHandler struct {
	bookingUsecase   usecase.BookingUsecase
	selectionUsecase usecase.SelectionUsecase
	validator        *validator.CustomValidator
	log              *logrus.Logger
}

func NewBookingHandler(
	bookingUsecase usecase.BookingUsecase,
	selectionUsecase usecase.SelectionUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingUsecase:   bookingUsecase,
		selectionUsecase: selectionUsecase,
		validator:        validator,
		log:              log,
	}
}

// GetAvailableDays lists the days of the booking window
func (h *BookingHandler) GetAvailableDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.bookingUsecase.AvailableDays(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get available days")
		return
	}

	response.Success(w, http.StatusOK, "Available days retrieved successfully", days)
}

// StageSelection stores the day and service of a new booking
func (h *BookingHandler) StageSelection(w http.ResponseWriter, r *http.Request) {
	h.stage(w, r, 0)
}

// GetAvailableTimes lists the free times of the staged day
func (h *BookingHandler) GetAvailableTimes(w http.ResponseWriter, r *http.Request) {
	h.times(w, r, 0)
}

// SubmitBooking books the staged day and service at the submitted time
func (h *BookingHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.SubmitBookingRequest
	if !h.decode(w, r, &req) {
		return
	}

	selection, err := h.selectionUsecase.Current(r.Context(), sessionID)
	if err != nil {
		response.InternalServerError(w, "Failed to read selection")
		return
	}

	result, err := h.bookingUsecase.Submit(r.Context(), userID, selection, &req)
	if err != nil {
		writeBookingError(w, err, "Failed to create appointment")
		return
	}
	h.clearSelection(r, sessionID)

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	response.Success(w, status, "Appointment saved", result)
}

// GetEditForm returns an appointment with the options for changing it
func (h *BookingHandler) GetEditForm(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	appointmentID, ok := appointmentIDFromPath(w, r)
	if !ok {
		return
	}

	form, err := h.bookingUsecase.EditForm(r.Context(), userID, appointmentID)
	if err != nil {
		writeBookingError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", form)
}

// StageEditSelection stores the new day and service for an appointment
func (h *BookingHandler) StageEditSelection(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := appointmentIDFromPath(w, r)
	if !ok {
		return
	}
	h.stage(w, r, appointmentID)
}

// GetEditTimes lists the free times of the day staged for an appointment
func (h *BookingHandler) GetEditTimes(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := appointmentIDFromPath(w, r)
	if !ok {
		return
	}
	h.times(w, r, appointmentID)
}

// UpdateAppointment moves an appointment to the staged day and service
func (h *BookingHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}
	appointmentID, ok := appointmentIDFromPath(w, r)
	if !ok {
		return
	}

	var req dto.SubmitBookingRequest
	if !h.decode(w, r, &req) {
		return
	}

	selection, err := h.selectionUsecase.Current(r.Context(), sessionID)
	if err != nil {
		response.InternalServerError(w, "Failed to read selection")
		return
	}

	result, err := h.bookingUsecase.Update(r.Context(), userID, appointmentID, selection, &req)
	if err != nil {
		writeBookingError(w, err, "Failed to update appointment")
		return
	}
	h.clearSelection(r, sessionID)

	response.Success(w, http.StatusOK, "Appointment edited", result)
}

func (h *BookingHandler) stage(w http.ResponseWriter, r *http.Request, appointmentID int64) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	var req dto.StageSelectionRequest
	if !h.decode(w, r, &req) {
		return
	}

	selection, err := h.selectionUsecase.Stage(r.Context(), sessionID, userID, appointmentID, &req)
	if err != nil {
		writeBookingError(w, err, "Failed to stage selection")
		return
	}

	response.Success(w, http.StatusOK, "Selection saved", selection)
}

func (h *BookingHandler) times(w http.ResponseWriter, r *http.Request, appointmentID int64) {
	userID, sessionID, ok := identity(w, r)
	if !ok {
		return
	}

	selection, err := h.selectionUsecase.Current(r.Context(), sessionID)
	if err != nil {
		response.InternalServerError(w, "Failed to read selection")
		return
	}

	times, err := h.bookingUsecase.AvailableTimes(r.Context(), userID, appointmentID, selection)
	if err != nil {
		writeBookingError(w, err, "Failed to get available times")
		return
	}

	response.Success(w, http.StatusOK, "Available times retrieved successfully", times)
}

// clearSelection drops the staged selection once a booking is confirmed.
// The booking stands even if this fails; the selection then expires on its own.
func (h *BookingHandler) clearSelection(r *http.Request, sessionID string) {
	if err := h.selectionUsecase.Clear(r.Context(), sessionID); err != nil {
		h.log.Warnf("Failed to clear selection after booking: %+v", err)
	}
}

func (h *BookingHandler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return false
	}
	return true
}

// writeBookingError maps booking errors to responses. Rule violations carry
// a reason code; a taken slot is a conflict, the other rules are 422.
func writeBookingError(w http.ResponseWriter, err error, fallback string) {
	if reason := usecase.RejectionReason(err); reason != "" {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, usecase.ErrSlotTaken) {
			status = http.StatusConflict
		}
		response.Rejected(w, status, reason, err.Error())
		return
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrAppointmentNotOwned):
		response.Forbidden(w, "Appointment does not belong to you")
	default:
		response.InternalServerError(w, fallback)
	}
}

// identity returns the authenticated user and the session the request belongs to
func identity(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, "", false
	}
	sessionID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, "", false
	}
	return userID, sessionID, true
}

func appointmentIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return 0, false
	}
	return id, true
}
