// Package availability holds the slot rules of the clinic as pure functions.
// Nothing here reads the clock or the database: callers pass today's date and
// the bookings they loaded.
package availability

import (
	"time"

	"petclinic-booking/internal/domain/entity"
)

// IsBookableWeekday reports whether the clinic takes bookings on d.
// Only Mondays, Wednesdays and Saturdays are open.
func IsBookableWeekday(d entity.Date) bool {
	switch d.Weekday() {
	case time.Monday, time.Wednesday, time.Saturday:
		return true
	default:
		return false
	}
}

// CandidateDays returns the bookable weekdays in [today, today+windowDays),
// in calendar order.
func CandidateDays(today entity.Date, windowDays int) []entity.Date {
	var days []entity.Date
	for i := 0; i < windowDays; i++ {
		d := today.AddDays(i)
		if IsBookableWeekday(d) {
			days = append(days, d)
		}
	}
	return days
}

// OpenDays keeps the days whose booking count is strictly below threshold.
// Days missing from counts have no bookings.
func OpenDays(days []entity.Date, counts map[entity.Date]int64, threshold int) []entity.Date {
	open := make([]entity.Date, 0, len(days))
	for _, d := range days {
		if HasCapacity(counts[d], threshold) {
			open = append(open, d)
		}
	}
	return open
}

// AvailableTimes returns the slots of all that no appointment in booked holds.
// A slot held by the appointment excludeID stays available, so an appointment
// being edited keeps its own time. Pass 0 when nothing is being edited.
func AvailableTimes(all []entity.TimeSlot, booked []entity.Appointment, excludeID int64) []entity.TimeSlot {
	taken := make(map[entity.TimeSlot]struct{}, len(booked))
	for _, a := range booked {
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		taken[a.Time] = struct{}{}
	}

	available := make([]entity.TimeSlot, 0, len(all))
	for _, slot := range all {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}
	return available
}

// InWindow reports whether today <= day <= today+windowDays.
func InWindow(day, today entity.Date, windowDays int) bool {
	return !day.Before(today) && !day.After(today.AddDays(windowDays))
}

// HasCapacity reports whether a day holding count bookings is below threshold.
func HasCapacity(count int64, threshold int) bool {
	return count < int64(threshold)
}

// CanEdit reports whether an appointment scheduled on day may still be
// changed today: the day must be at least leadDays ahead.
func CanEdit(scheduled, today entity.Date, leadDays int) bool {
	return !scheduled.Before(today.AddDays(leadDays))
}
