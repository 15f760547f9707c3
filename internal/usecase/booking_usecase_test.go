package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"petclinic-booking/config"
	"petclinic-booking/internal/delivery/dto"
	"petclinic-booking/internal/domain/entity"
	"petclinic-booking/internal/infrastructure/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newSelection(d, svc string) *entity.Selection {
	return &entity.Selection{Day: d, Service: svc}
}

func TestSubmit_BooksFreeSlot(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	userID := createUser(t, f.db, "alice")

	result, err := f.usecase.Submit(context.Background(), userID,
		newSelection("2026-10-19", "Doctor care"), &dto.SubmitBookingRequest{Time: "3 PM"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !result.Created || result.Next != dto.NextHome {
		t.Fatalf("unexpected result: %+v", result)
	}
	got := result.Appointment
	if got.Day != "2026-10-19" || got.Time != "3 PM" || got.Service != "Doctor care" {
		t.Fatalf("unexpected appointment: %+v", got)
	}
	if got.UserID == nil || *got.UserID != userID {
		t.Fatalf("appointment not owned by submitter: %+v", got)
	}
	if n := f.countOn(t, day("2026-10-19")); n != 1 {
		t.Fatalf("expected 1 appointment, got %d", n)
	}

	var logs []entity.AuditLog
	if err := f.db.Where("action = ?", entity.AuditActionAppointmentCreate).Find(&logs).Error; err != nil {
		t.Fatalf("read audit logs: %v", err)
	}
	if len(logs) != 1 || logs[0].UserID == nil || *logs[0].UserID != userID {
		t.Fatalf("expected one create audit entry for the user, got %+v", logs)
	}
}

func TestSubmit_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		selection *entity.Selection
		time      string
		wantErr   error
	}{
		{"no selection", nil, "3 PM", ErrNoService},
		{"empty service", newSelection("2026-10-19", ""), "3 PM", ErrNoService},
		{"selection staged for an edit", &entity.Selection{Day: "2026-10-19", Service: "Pet care", AppointmentID: 7}, "3 PM", ErrNoService},
		{"unknown service", newSelection("2026-10-19", "Grooming"), "3 PM", ErrValidation},
		{"malformed day", newSelection("19/10/2026", "Pet care"), "3 PM", ErrValidation},
		{"impossible day", newSelection("2026-02-30", "Pet care"), "3 PM", ErrValidation},
		{"missing day", newSelection("", "Pet care"), "3 PM", ErrValidation},
		{"time not offered", newSelection("2026-10-19", "Pet care"), "2 PM", ErrValidation},
		{"past day", newSelection("2026-10-14", "Pet care"), "3 PM", ErrOutOfWindow},
		{"a month ahead", newSelection("2026-11-14", "Pet care"), "3 PM", ErrOutOfWindow},
		{"outside window beats weekday", newSelection("2026-11-06", "Pet care"), "3 PM", ErrOutOfWindow},
		{"tuesday", newSelection("2026-10-20", "Pet care"), "3 PM", ErrInvalidDay},
		{"today is a thursday", newSelection("2026-10-15", "Pet care"), "3 PM", ErrInvalidDay},
	}

	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	userID := createUser(t, f.db, "alice")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usecase.Submit(context.Background(), userID, tt.selection, &dto.SubmitBookingRequest{Time: tt.time})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	var total int64
	f.db.Model(&entity.Appointment{}).Count(&total)
	if total != 0 {
		t.Fatalf("rejected submissions must not write, found %d appointments", total)
	}
}

func TestSubmit_SlotTakenByAnotherUser(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")
	seedAppointment(t, f.db, alice, day("2026-10-19"), entity.Slot1500, entity.ServiceDoctorCare)

	before := testutil.ToFloat64(metrics.BookingOutcomes.WithLabelValues(operationCreate, ReasonSlotTaken))

	_, err := f.usecase.Submit(context.Background(), bob,
		newSelection("2026-10-19", "Doctor care"), &dto.SubmitBookingRequest{Time: "3 PM"})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if RejectionReason(err) != ReasonSlotTaken {
		t.Fatalf("unexpected reason %q", RejectionReason(err))
	}
	if n := f.countOn(t, day("2026-10-19")); n != 1 {
		t.Fatalf("expected the day to keep 1 appointment, got %d", n)
	}

	after := testutil.ToFloat64(metrics.BookingOutcomes.WithLabelValues(operationCreate, ReasonSlotTaken))
	if after != before+1 {
		t.Fatalf("expected slot_taken outcome to be counted, before=%v after=%v", before, after)
	}
}

func TestSubmit_SameUserDifferentServiceIsTaken(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	seedAppointment(t, f.db, alice, day("2026-10-19"), entity.Slot1500, entity.ServiceDoctorCare)

	_, err := f.usecase.Submit(context.Background(), alice,
		newSelection("2026-10-19", "Pet care"), &dto.SubmitBookingRequest{Time: "3 PM"})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestSubmit_IsIdempotent(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	sel := newSelection("2026-10-21", "Medical services")
	req := &dto.SubmitBookingRequest{Time: "5:30 PM"}

	first, err := f.usecase.Submit(context.Background(), alice, sel, req)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := f.usecase.Submit(context.Background(), alice, sel, req)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if second.Created {
		t.Fatal("second submit must not create a new appointment")
	}
	if first.Appointment.ID != second.Appointment.ID {
		t.Fatalf("expected the same appointment, got %d and %d", first.Appointment.ID, second.Appointment.ID)
	}
	if n := f.countOn(t, day("2026-10-21")); n != 1 {
		t.Fatalf("expected 1 appointment, got %d", n)
	}
}

func TestSubmit_WindowIsInclusive(t *testing.T) {
	// 2026-10-17 is a Saturday; today+21 is Saturday 2026-11-07.
	saturday := time.Date(2026, time.October, 17, 18, 0, 0, 0, time.UTC)
	f := newBookingFixture(t, saturday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")

	if _, err := f.usecase.Submit(context.Background(), alice,
		newSelection("2026-10-17", "Pet care"), &dto.SubmitBookingRequest{Time: "7:30 PM"}); err != nil {
		t.Fatalf("today must be bookable: %v", err)
	}
	if _, err := f.usecase.Submit(context.Background(), alice,
		newSelection("2026-11-07", "Pet care"), &dto.SubmitBookingRequest{Time: "3 PM"}); err != nil {
		t.Fatalf("last day of the window must be bookable: %v", err)
	}
	_, err := f.usecase.Submit(context.Background(), alice,
		newSelection("2026-11-09", "Pet care"), &dto.SubmitBookingRequest{Time: "3 PM"})
	if !errors.Is(err, ErrOutOfWindow) {
		t.Fatalf("expected ErrOutOfWindow past the window, got %v", err)
	}
}

func TestSubmit_UsesClinicDateNotUTC(t *testing.T) {
	// 23:30 on Sunday 2026-10-18 in UTC-5 is already Monday in UTC.
	loc := time.FixedZone("clinic", -5*60*60)
	sundayNight := time.Date(2026, time.October, 18, 23, 30, 0, 0, loc)
	f := newBookingFixture(t, sundayNight, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")

	// Monday 2026-11-09 is today+22 for the clinic but today+21 in UTC.
	_, err := f.usecase.Submit(context.Background(), alice,
		newSelection("2026-11-09", "Pet care"), &dto.SubmitBookingRequest{Time: "3 PM"})
	if !errors.Is(err, ErrOutOfWindow) {
		t.Fatalf("expected ErrOutOfWindow, got %v", err)
	}
	if _, err := f.usecase.Submit(context.Background(), alice,
		newSelection("2026-11-07", "Pet care"), &dto.SubmitBookingRequest{Time: "3 PM"}); err != nil {
		t.Fatalf("expected a Saturday inside the window to be bookable, got %v", err)
	}
}

func TestSubmit_DayFull(t *testing.T) {
	cfg := config.DefaultBookingConfig()
	cfg.CommitCapacity = 3
	f := newBookingFixture(t, thursday, cfg)
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")
	fillDay(t, f.db, alice, day("2026-10-19"), 3)

	_, err := f.usecase.Submit(context.Background(), bob,
		newSelection("2026-10-19", "Pet care"), &dto.SubmitBookingRequest{Time: "7:30 PM"})
	if !errors.Is(err, ErrDayFull) {
		t.Fatalf("expected ErrDayFull, got %v", err)
	}
	if RejectionReason(err) != ReasonDayFull {
		t.Fatalf("unexpected reason %q", RejectionReason(err))
	}
}

func TestSubmit_HiddenFullDayEndsAsSlotTaken(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")
	fillDay(t, f.db, alice, day("2026-10-19"), 10)

	days, err := f.usecase.AvailableDays(context.Background())
	if err != nil {
		t.Fatalf("available days: %v", err)
	}
	for _, d := range days.OpenDays {
		if d == "2026-10-19" {
			t.Fatal("a day with 10 bookings must not be offered")
		}
	}

	// Ten bookings is still below the commit capacity, so the request reaches
	// the slot check and every slot is held.
	_, err = f.usecase.Submit(context.Background(), bob,
		newSelection("2026-10-19", "Pet care"), &dto.SubmitBookingRequest{Time: "6 PM"})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestSubmit_ConcurrentRequestsForOneSlot(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())

	const n = 8
	userIDs := make([]uuid.UUID, n)
	for i := range userIDs {
		userIDs[i] = createUser(t, f.db, fmt.Sprintf("user%d", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.usecase.Submit(context.Background(), userIDs[i],
				newSelection("2026-10-24", "Pet care"), &dto.SubmitBookingRequest{Time: "4 PM"})
		}(i)
	}
	wg.Wait()

	confirmed := 0
	for _, err := range errs {
		switch {
		case err == nil:
			confirmed++
		case errors.Is(err, ErrSlotTaken):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if confirmed != 1 {
		t.Fatalf("expected exactly one confirmed booking, got %d", confirmed)
	}
	if c := f.countOn(t, day("2026-10-24")); c != 1 {
		t.Fatalf("expected 1 stored appointment, got %d", c)
	}
}

func TestUpdate_SameSlotIsAllowed(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	appt := seedAppointment(t, f.db, alice, day("2026-10-19"), entity.Slot1500, entity.ServiceDoctorCare)

	sel := &entity.Selection{Day: "2026-10-19", Service: "Pet care", AppointmentID: appt.ID}
	result, err := f.usecase.Update(context.Background(), alice, appt.ID, sel, &dto.SubmitBookingRequest{Time: "3 PM"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.Appointment.ID != appt.ID || result.Appointment.Service != "Pet care" || result.Next != dto.NextHome {
		t.Fatalf("unexpected result: %+v", result)
	}
	if n := f.countOn(t, day("2026-10-19")); n != 1 {
		t.Fatalf("expected 1 appointment, got %d", n)
	}
}

func TestUpdate_MovesAppointment(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")
	appt := seedAppointment(t, f.db, alice, day("2026-10-19"), entity.Slot1500, entity.ServiceDoctorCare)
	seedAppointment(t, f.db, bob, day("2026-10-28"), entity.Slot1700, entity.ServicePetCare)

	sel := &entity.Selection{Day: "2026-10-21", Service: "Doctor care", AppointmentID: appt.ID}
	if _, err := f.usecase.Update(context.Background(), alice, appt.ID, sel, &dto.SubmitBookingRequest{Time: "6:30 PM"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if n := f.countOn(t, day("2026-10-19")); n != 0 {
		t.Fatalf("old day should be empty, got %d", n)
	}
	if n := f.countOn(t, day("2026-10-21")); n != 1 {
		t.Fatalf("new day should hold 1, got %d", n)
	}
	if n := f.countOn(t, day("2026-10-28")); n != 1 {
		t.Fatalf("unrelated day changed, got %d", n)
	}

	var logs []entity.AuditLog
	f.db.Where("action = ?", entity.AuditActionAppointmentUpdate).Find(&logs)
	if len(logs) != 1 {
		t.Fatalf("expected one update audit entry, got %d", len(logs))
	}
}

func TestUpdate_Rejections(t *testing.T) {
	cfg := config.DefaultBookingConfig()
	cfg.CommitCapacity = 3
	f := newBookingFixture(t, thursday, cfg)
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	mine := seedAppointment(t, f.db, alice, day("2026-10-19"), entity.Slot1500, entity.ServiceDoctorCare)
	todays := seedAppointment(t, f.db, alice, day("2026-10-15"), entity.Slot1500, entity.ServiceDoctorCare)
	bobs := seedAppointment(t, f.db, bob, day("2026-10-19"), entity.Slot1600, entity.ServicePetCare)
	fillDay(t, f.db, bob, day("2026-10-21"), 3)

	tests := []struct {
		name    string
		id      int64
		sel     *entity.Selection
		time    string
		wantErr error
	}{
		{"unknown appointment", 9999, &entity.Selection{Day: "2026-10-19", Service: "Pet care", AppointmentID: 9999}, "3 PM", ErrAppointmentNotFound},
		{"someone else's appointment", bobs.ID, &entity.Selection{Day: "2026-10-19", Service: "Pet care", AppointmentID: bobs.ID}, "4 PM", ErrAppointmentNotOwned},
		{"same day edit", todays.ID, &entity.Selection{Day: "2026-10-19", Service: "Pet care", AppointmentID: todays.ID}, "5 PM", ErrEditWindowExpired},
		{"edit window beats bad input", todays.ID, nil, "nonsense", ErrEditWindowExpired},
		{"selection for another appointment", mine.ID, &entity.Selection{Day: "2026-10-19", Service: "Pet care", AppointmentID: bobs.ID}, "5 PM", ErrNoService},
		{"bad time", mine.ID, &entity.Selection{Day: "2026-10-19", Service: "Pet care", AppointmentID: mine.ID}, "8 PM", ErrValidation},
		{"out of window", mine.ID, &entity.Selection{Day: "2026-11-14", Service: "Pet care", AppointmentID: mine.ID}, "3 PM", ErrOutOfWindow},
		{"invalid weekday", mine.ID, &entity.Selection{Day: "2026-10-22", Service: "Pet care", AppointmentID: mine.ID}, "3 PM", ErrInvalidDay},
		{"target day full", mine.ID, &entity.Selection{Day: "2026-10-21", Service: "Pet care", AppointmentID: mine.ID}, "7 PM", ErrDayFull},
		{"slot held by another", mine.ID, &entity.Selection{Day: "2026-10-19", Service: "Pet care", AppointmentID: mine.ID}, "4 PM", ErrSlotTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usecase.Update(context.Background(), alice, tt.id, tt.sel, &dto.SubmitBookingRequest{Time: tt.time})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	stored, err := f.reload(mine.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Day != day("2026-10-19") || stored.Time != entity.Slot1500 || stored.Service != entity.ServiceDoctorCare {
		t.Fatalf("rejected edits must leave the appointment untouched: %+v", stored)
	}
}

func TestUpdate_OwnBookingDoesNotCountAgainstItsDay(t *testing.T) {
	cfg := config.DefaultBookingConfig()
	cfg.CommitCapacity = 3
	f := newBookingFixture(t, thursday, cfg)
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")

	mine := seedAppointment(t, f.db, alice, day("2026-10-19"), entity.Slot1500, entity.ServiceDoctorCare)
	seedAppointment(t, f.db, bob, day("2026-10-19"), entity.Slot1530, entity.ServicePetCare)
	seedAppointment(t, f.db, bob, day("2026-10-19"), entity.Slot1600, entity.ServicePetCare)

	sel := &entity.Selection{Day: "2026-10-19", Service: "Doctor care", AppointmentID: mine.ID}
	if _, err := f.usecase.Update(context.Background(), alice, mine.ID, sel, &dto.SubmitBookingRequest{Time: "7 PM"}); err != nil {
		t.Fatalf("moving within a day at capacity must succeed: %v", err)
	}
}

func TestUpdate_TomorrowIsEditable(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	appt := seedAppointment(t, f.db, alice, day("2026-10-16"), entity.Slot1500, entity.ServiceDoctorCare)

	sel := &entity.Selection{Day: "2026-10-17", Service: "Doctor care", AppointmentID: appt.ID}
	if _, err := f.usecase.Update(context.Background(), alice, appt.ID, sel, &dto.SubmitBookingRequest{Time: "3 PM"}); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestAvailableTimes(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	bob := createUser(t, f.db, "bob")
	mine := seedAppointment(t, f.db, alice, day("2026-10-19"), entity.Slot1500, entity.ServiceDoctorCare)
	seedAppointment(t, f.db, bob, day("2026-10-19"), entity.Slot1600, entity.ServicePetCare)

	times, err := f.usecase.AvailableTimes(context.Background(), alice, 0, newSelection("2026-10-19", "Pet care"))
	if err != nil {
		t.Fatalf("available times: %v", err)
	}
	if len(times.Times) != 8 || contains(times.Times, "3 PM") || contains(times.Times, "4 PM") {
		t.Fatalf("unexpected times for a new booking: %v", times.Times)
	}

	sel := &entity.Selection{Day: "2026-10-19", Service: "Pet care", AppointmentID: mine.ID}
	times, err = f.usecase.AvailableTimes(context.Background(), alice, mine.ID, sel)
	if err != nil {
		t.Fatalf("available times for edit: %v", err)
	}
	if len(times.Times) != 9 || !contains(times.Times, "3 PM") || contains(times.Times, "4 PM") {
		t.Fatalf("unexpected times for an edit: %v", times.Times)
	}

	if _, err := f.usecase.AvailableTimes(context.Background(), alice, 0, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation without a staged day, got %v", err)
	}
	if _, err := f.usecase.AvailableTimes(context.Background(), bob, mine.ID, sel); !errors.Is(err, ErrAppointmentNotOwned) {
		t.Fatalf("expected ErrAppointmentNotOwned, got %v", err)
	}
}

func TestAvailableDays(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	fillDay(t, f.db, alice, day("2026-10-21"), 10)
	fillDay(t, f.db, alice, day("2026-10-24"), 9)

	days, err := f.usecase.AvailableDays(context.Background())
	if err != nil {
		t.Fatalf("available days: %v", err)
	}

	if len(days.Days) != 9 || days.Days[0] != "2026-10-17" || days.Days[8] != "2026-11-04" {
		t.Fatalf("unexpected candidate days: %v", days.Days)
	}
	if contains(days.OpenDays, "2026-10-21") {
		t.Fatal("full day must not be open")
	}
	if !contains(days.OpenDays, "2026-10-24") {
		t.Fatal("day with 9 bookings must be open")
	}
	if len(days.Services) != 3 {
		t.Fatalf("unexpected services: %v", days.Services)
	}
}

func TestEditForm(t *testing.T) {
	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	future := seedAppointment(t, f.db, alice, day("2026-10-19"), entity.Slot1500, entity.ServiceDoctorCare)
	todays := seedAppointment(t, f.db, alice, day("2026-10-15"), entity.Slot1500, entity.ServiceDoctorCare)

	form, err := f.usecase.EditForm(context.Background(), alice, future.ID)
	if err != nil {
		t.Fatalf("edit form: %v", err)
	}
	if !form.Editable || form.Appointment.ID != future.ID || len(form.Options.Days) == 0 {
		t.Fatalf("unexpected form: %+v", form)
	}

	form, err = f.usecase.EditForm(context.Background(), alice, todays.ID)
	if err != nil {
		t.Fatalf("edit form: %v", err)
	}
	if form.Editable {
		t.Fatal("an appointment today must not be editable")
	}
}

func TestRejectionReason(t *testing.T) {
	if got := RejectionReason(ErrDayFull); got != ReasonDayFull {
		t.Fatalf("expected %s, got %s", ReasonDayFull, got)
	}
	if got := RejectionReason(ErrValidation); got != "" {
		t.Fatalf("validation errors carry no reason, got %s", got)
	}
	if got := RejectionReason(nil); got != "" {
		t.Fatalf("nil carries no reason, got %s", got)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_slot"}
	if !isDuplicateKeyError(pgErr, "uq_appointments_slot") {
		t.Fatal("expected postgres unique violation to match")
	}
	if isDuplicateKeyError(pgErr, "email") {
		t.Fatal("constraint name must match")
	}
	if isDuplicateKeyError(&pgconn.PgError{Code: "23503", ConstraintName: "uq_appointments_slot"}, "uq_appointments_slot") {
		t.Fatal("foreign key violation is not a duplicate")
	}
	if isDuplicateKeyError(nil, "x") {
		t.Fatal("nil is not a duplicate")
	}

	f := newBookingFixture(t, thursday, config.DefaultBookingConfig())
	alice := createUser(t, f.db, "alice")
	seedAppointment(t, f.db, alice, day("2026-10-19"), entity.Slot1500, entity.ServiceDoctorCare)

	err := f.db.Omit("User").Create(&entity.Appointment{UserID: &alice, Service: entity.ServicePetCare, Day: day("2026-10-19"), Time: entity.Slot1500}).Error
	if err == nil {
		t.Fatal("expected the unique index to reject a second booking of the slot")
	}
	if !isDuplicateKeyError(err, "uq_appointments_slot", "appointments.day") {
		t.Fatalf("expected sqlite unique violation to match, got %v", err)
	}
}

func (f *bookingFixture) reload(id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := f.db.First(&appointment, id).Error
	return &appointment, err
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
