package entity

// Selection is the day and service a user picked in the first step of the
// booking form. Values are kept raw; they are validated when the booking is
// submitted. AppointmentID is zero for a new booking.
type Selection struct {
	Day           string
	Service       string
	AppointmentID int64
}

// IsFor reports whether the selection was staged for the given appointment
// (zero for a new booking).
func (s *Selection) IsFor(appointmentID int64) bool {
	return s != nil && s.AppointmentID == appointmentID
}
