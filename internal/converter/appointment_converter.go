package converter

import (
	"petclinic-booking/internal/delivery/dto"
	"petclinic-booking/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appointment.ID,
		UserID:    appointment.UserID,
		Service:   string(appointment.Service),
		Day:       appointment.Day.String(),
		Time:      string(appointment.Time),
		CreatedAt: appointment.CreatedAt,
	}

	if appointment.User != nil {
		response.Username = appointment.User.Username
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

func DatesToStrings(days []entity.Date) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}

func TimeSlotsToStrings(slots []entity.TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = string(s)
	}
	return out
}

func ServicesToStrings(services []entity.Service) []string {
	out := make([]string, len(services))
	for i, s := range services {
		out[i] = string(s)
	}
	return out
}

// SelectionToResponse converts a staged Selection to SelectionResponse DTO
func SelectionToResponse(selection *entity.Selection) *dto.SelectionResponse {
	if selection == nil {
		return nil
	}
	return &dto.SelectionResponse{
		Day:           selection.Day,
		Service:       selection.Service,
		AppointmentID: selection.AppointmentID,
	}
}
