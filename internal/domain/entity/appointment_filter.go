package entity

import "github.com/google/uuid"

// AppointmentFilter is a domain-level filter for listing appointments.
// Zero values mean "no constraint".
type AppointmentFilter struct {
	From   Date
	To     Date
	UserID *uuid.UUID
}
