package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// StageSelectionRequest is the first step of the booking form. Values are
// staged as sent and checked on submission.
type StageSelectionRequest struct {
	Day     string `json:"day" validate:"omitempty,max=32"` // Format: YYYY-MM-DD
	Service string `json:"service" validate:"omitempty,max=50"`
}

type SubmitBookingRequest struct {
	Time string `json:"time" validate:"required,max=10"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        int64      `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Username  string     `json:"username,omitempty"`
	Service   string     `json:"service"`
	Day       string     `json:"day"`
	Time      string     `json:"time"`
	CreatedAt time.Time  `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type SelectionResponse struct {
	Day           string `json:"day"`
	Service       string `json:"service"`
	AppointmentID int64  `json:"appointment_id,omitempty"`
}

type AvailableDaysResponse struct {
	Days     []string `json:"days"`
	OpenDays []string `json:"open_days"`
	Services []string `json:"services"`
}

type AvailableTimesResponse struct {
	Day     string   `json:"day"`
	Service string   `json:"service"`
	Times   []string `json:"times"`
}

type EditFormResponse struct {
	Appointment AppointmentResponse   `json:"appointment"`
	Editable    bool                  `json:"editable"`
	Options     AvailableDaysResponse `json:"options"`
}

// BookingResultResponse is returned for a confirmed booking or edit.
// Next names the view the client should navigate to.
type BookingResultResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Created     bool                `json:"created"`
	Next        string              `json:"next"`
}

type UserPanelResponse struct {
	User         UserResponse          `json:"user"`
	Appointments []AppointmentResponse `json:"appointments"`
	Pets         []PetResponse         `json:"pets"`
}

// NextHome is where clients go after a confirmed booking
const NextHome = "home"
