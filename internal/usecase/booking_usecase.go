package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"petclinic-booking/config"
	"petclinic-booking/internal/availability"
	"petclinic-booking/internal/converter"
	"petclinic-booking/internal/delivery/dto"
	"petclinic-booking/internal/domain/entity"
	"petclinic-booking/internal/domain/repository"
	"petclinic-booking/internal/infrastructure/metrics"
	"petclinic-booking/internal/service"
	"petclinic-booking/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrValidation          = errors.New("invalid booking request")
	ErrNoService           = errors.New("please select a service")
	ErrInvalidDay          = errors.New("the clinic only takes bookings on Mondays, Wednesdays and Saturdays")
	ErrOutOfWindow         = errors.New("the selected day is outside the booking window")
	ErrDayFull             = errors.New("the selected day is fully booked")
	ErrSlotTaken           = errors.New("the selected time is already booked")
	ErrEditWindowExpired   = errors.New("appointments can only be changed until the day before")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment does not belong to you")
)

// Rejection reason codes returned to clients
const (
	ReasonNoService         = "no_service"
	ReasonInvalidDay        = "invalid_day"
	ReasonOutOfWindow       = "out_of_window"
	ReasonDayFull           = "day_full"
	ReasonSlotTaken         = "slot_taken"
	ReasonEditWindowExpired = "edit_window_expired"
)

var rejectionReasons = []struct {
	err    error
	reason string
}{
	{ErrNoService, ReasonNoService},
	{ErrInvalidDay, ReasonInvalidDay},
	{ErrOutOfWindow, ReasonOutOfWindow},
	{ErrDayFull, ReasonDayFull},
	{ErrSlotTaken, ReasonSlotTaken},
	{ErrEditWindowExpired, ReasonEditWindowExpired},
}

// RejectionReason maps a booking rule violation to its reason code.
// It returns "" for errors that are not rule violations.
func RejectionReason(err error) string {
	for _, r := range rejectionReasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ""
}

const (
	operationCreate = "create"
	operationUpdate = "update"
)

type BookingUsecase interface {
	AvailableDays(ctx context.Context) (*dto.AvailableDaysResponse, error)
	AvailableTimes(ctx context.Context, userID uuid.UUID, appointmentID int64, selection *entity.Selection) (*dto.AvailableTimesResponse, error)
	EditForm(ctx context.Context, userID uuid.UUID, appointmentID int64) (*dto.EditFormResponse, error)
	Submit(ctx context.Context, userID uuid.UUID, selection *entity.Selection, req *dto.SubmitBookingRequest) (*dto.BookingResultResponse, error)
	Update(ctx context.Context, userID uuid.UUID, appointmentID int64, selection *entity.Selection, req *dto.SubmitBookingRequest) (*dto.BookingResultResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cfg             config.BookingConfig
	clock           clock.Clock
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.BookingConfig,
	clk clock.Clock,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		cfg:             cfg,
		clock:           clk,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// candidate is a submission whose fields passed validation
type candidate struct {
	service entity.Service
	day     entity.Date
	slot    entity.TimeSlot
}

func (u *bookingUsecase) today() entity.Date {
	return entity.DateOf(u.clock.Now())
}

// AvailableDays lists the bookable days of the window and the ones still open
func (u *bookingUsecase) AvailableDays(ctx context.Context) (*dto.AvailableDaysResponse, error) {
	return u.dayOptions(ctx)
}

func (u *bookingUsecase) dayOptions(ctx context.Context) (*dto.AvailableDaysResponse, error) {
	days := availability.CandidateDays(u.today(), u.cfg.WindowDays+1)

	counts, err := u.appointmentRepo.CountByDays(u.db.WithContext(ctx), days)
	if err != nil {
		u.log.Warnf("Failed to count appointments per day: %+v", err)
		return nil, err
	}

	open := availability.OpenDays(days, counts, u.cfg.DisplayCapacity)

	return &dto.AvailableDaysResponse{
		Days:     converter.DatesToStrings(days),
		OpenDays: converter.DatesToStrings(open),
		Services: converter.ServicesToStrings(entity.Services()),
	}, nil
}

// AvailableTimes lists the free slots of the staged day. When appointmentID is
// set the slot held by that appointment is offered too.
func (u *bookingUsecase) AvailableTimes(ctx context.Context, userID uuid.UUID, appointmentID int64, selection *entity.Selection) (*dto.AvailableTimesResponse, error) {
	db := u.db.WithContext(ctx)

	if appointmentID != 0 {
		if _, err := u.findOwned(db, userID, appointmentID); err != nil {
			return nil, err
		}
	}

	if !selection.IsFor(appointmentID) || selection.Day == "" {
		return nil, fmt.Errorf("%w: no day selected", ErrValidation)
	}

	day, err := entity.ParseDate(selection.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	booked, err := u.appointmentRepo.FindByDay(db, day)
	if err != nil {
		u.log.Warnf("Failed to find appointments on %s: %+v", day, err)
		return nil, err
	}

	times := availability.AvailableTimes(entity.TimeSlots(), booked, appointmentID)

	return &dto.AvailableTimesResponse{
		Day:     day.String(),
		Service: selection.Service,
		Times:   converter.TimeSlotsToStrings(times),
	}, nil
}

// EditForm returns an appointment with the day options for changing it
func (u *bookingUsecase) EditForm(ctx context.Context, userID uuid.UUID, appointmentID int64) (*dto.EditFormResponse, error) {
	appointment, err := u.findOwned(u.db.WithContext(ctx), userID, appointmentID)
	if err != nil {
		return nil, err
	}

	options, err := u.dayOptions(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.EditFormResponse{
		Appointment: *converter.AppointmentToResponse(appointment),
		Editable:    availability.CanEdit(appointment.Day, u.today(), u.cfg.EditLeadDays),
		Options:     *options,
	}, nil
}

// Submit books the staged day and service at req.Time.
//
// Rules are checked in this order: service staged, fields valid, day inside
// the window, day is a clinic day, day below capacity, slot free. Submitting
// the same slot and service twice returns the existing appointment.
func (u *bookingUsecase) Submit(ctx context.Context, userID uuid.UUID, selection *entity.Selection, req *dto.SubmitBookingRequest) (*dto.BookingResultResponse, error) {
	if !selection.IsFor(0) {
		selection = nil
	}

	appointment, created, err := u.submit(ctx, userID, selection, req.Time)
	u.recordOutcome(operationCreate, err)
	if err != nil {
		return nil, err
	}

	return &dto.BookingResultResponse{
		Appointment: *converter.AppointmentToResponse(appointment),
		Created:     created,
		Next:        dto.NextHome,
	}, nil
}

func (u *bookingUsecase) submit(ctx context.Context, userID uuid.UUID, selection *entity.Selection, rawTime string) (*entity.Appointment, bool, error) {
	c, err := parseCandidate(selection, rawTime)
	if err != nil {
		return nil, false, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	holder, err := u.checkRules(tx, c, u.today(), 0)
	if err != nil {
		return nil, false, err
	}
	if holder != nil {
		if holder.IsOwnedBy(userID) && holder.Service == c.service {
			return holder, false, nil
		}
		return nil, false, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		UserID:  &userID,
		Service: c.service,
		Day:     c.day,
		Time:    c.slot,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "uq_appointments_slot", "appointments.day") {
			return nil, false, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, false, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentCreate,
		"appointment", strconv.FormatInt(appointment.ID, 10), converter.AppointmentToResponse(appointment)); err != nil {
		return nil, false, err
	}

	if err := tx.Commit().Error; err != nil {
		if isDuplicateKeyError(err, "uq_appointments_slot", "appointments.day") {
			return nil, false, ErrSlotTaken
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, false, err
	}

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"day":            appointment.Day.String(),
		"time":           appointment.Time,
		"service":        appointment.Service,
	}).Info("Appointment booked")

	return appointment, true, nil
}

// Update moves an appointment to the staged day and service at req.Time.
//
// The appointment must exist, belong to the user and be at least
// EditLeadDays away before any field is looked at. The appointment does not
// count against its own day or block its own slot.
func (u *bookingUsecase) Update(ctx context.Context, userID uuid.UUID, appointmentID int64, selection *entity.Selection, req *dto.SubmitBookingRequest) (*dto.BookingResultResponse, error) {
	if !selection.IsFor(appointmentID) {
		selection = nil
	}

	appointment, err := u.update(ctx, userID, appointmentID, selection, req.Time)
	u.recordOutcome(operationUpdate, err)
	if err != nil {
		return nil, err
	}

	return &dto.BookingResultResponse{
		Appointment: *converter.AppointmentToResponse(appointment),
		Next:        dto.NextHome,
	}, nil
}

func (u *bookingUsecase) update(ctx context.Context, userID uuid.UUID, appointmentID int64, selection *entity.Selection, rawTime string) (*entity.Appointment, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.findOwned(tx, userID, appointmentID)
	if err != nil {
		return nil, err
	}

	today := u.today()
	if !availability.CanEdit(appointment.Day, today, u.cfg.EditLeadDays) {
		return nil, ErrEditWindowExpired
	}

	c, err := parseCandidate(selection, rawTime)
	if err != nil {
		return nil, err
	}

	holder, err := u.checkRules(tx, c, today, appointment.ID)
	if err != nil {
		return nil, err
	}
	if holder != nil && holder.ID != appointment.ID {
		return nil, ErrSlotTaken
	}

	before := converter.AppointmentToResponse(appointment)

	appointment.Service = c.service
	appointment.Day = c.day
	appointment.Time = c.slot

	rows, err := u.appointmentRepo.Update(tx, appointment)
	if err != nil {
		if isDuplicateKeyError(err, "uq_appointments_slot", "appointments.day") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to update appointment %d: %+v", appointment.ID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAppointmentNotFound
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentUpdate,
		"appointment", strconv.FormatInt(appointment.ID, 10), before, converter.AppointmentToResponse(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"day":            appointment.Day.String(),
		"time":           appointment.Time,
		"service":        appointment.Service,
	}).Info("Appointment updated")

	return appointment, nil
}

func (u *bookingUsecase) findOwned(db *gorm.DB, userID uuid.UUID, appointmentID int64) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsOwnedBy(userID) {
		return nil, ErrAppointmentNotOwned
	}
	return appointment, nil
}

// checkRules applies the window, weekday and capacity rules to c and returns
// the appointment currently holding the requested slot, if any. excludeID is
// the appointment being edited, or 0.
func (u *bookingUsecase) checkRules(tx *gorm.DB, c *candidate, today entity.Date, excludeID int64) (*entity.Appointment, error) {
	if !availability.InWindow(c.day, today, u.cfg.WindowDays) {
		return nil, ErrOutOfWindow
	}
	if !availability.IsBookableWeekday(c.day) {
		return nil, ErrInvalidDay
	}

	count, err := u.appointmentRepo.CountByDay(tx, c.day, excludeID)
	if err != nil {
		u.log.Warnf("Failed to count appointments on %s: %+v", c.day, err)
		return nil, err
	}
	if !availability.HasCapacity(count, u.cfg.CommitCapacity) {
		return nil, ErrDayFull
	}

	holder, err := u.appointmentRepo.FindBySlot(tx, c.day, c.slot)
	if err != nil {
		u.log.Warnf("Failed to find appointment at %s %s: %+v", c.day, c.slot, err)
		return nil, err
	}
	return holder, nil
}

func (u *bookingUsecase) recordOutcome(operation string, err error) {
	metrics.BookingOutcomes.WithLabelValues(operation, outcomeLabel(err)).Inc()
}

func outcomeLabel(err error) string {
	if err == nil {
		return "confirmed"
	}
	if reason := RejectionReason(err); reason != "" {
		return reason
	}
	switch {
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrAppointmentNotOwned):
		return "not_found"
	default:
		return "error"
	}
}

// parseCandidate turns the staged selection and the submitted time into typed
// values. A missing service is reported before anything else.
func parseCandidate(selection *entity.Selection, rawTime string) (*candidate, error) {
	if selection == nil || strings.TrimSpace(selection.Service) == "" {
		return nil, ErrNoService
	}

	service := entity.Service(selection.Service)
	if !service.IsValid() {
		return nil, fmt.Errorf("%w: unknown service %q", ErrValidation, selection.Service)
	}

	if selection.Day == "" {
		return nil, fmt.Errorf("%w: no day selected", ErrValidation)
	}
	day, err := entity.ParseDate(selection.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	slot := entity.TimeSlot(rawTime)
	if !slot.IsValid() {
		return nil, fmt.Errorf("%w: unknown time %q", ErrValidation, rawTime)
	}

	return &candidate{service: service, day: day, slot: slot}, nil
}
