package availability

import (
	"testing"
	"time"

	"petclinic-booking/internal/domain/entity"
)

// 2026-10-15 is a Thursday.
var thursday = entity.Date{Year: 2026, Month: time.October, Day: 15}

func TestCandidateDays_OnlyMonWedSatInsideWindow(t *testing.T) {
	days := CandidateDays(thursday, 22)

	want := []string{
		"2026-10-17", "2026-10-19", "2026-10-21",
		"2026-10-24", "2026-10-26", "2026-10-28",
		"2026-10-31", "2026-11-02", "2026-11-04",
	}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d: %v", len(want), len(days), days)
	}
	for i, d := range days {
		if d.String() != want[i] {
			t.Fatalf("day %d: expected %s, got %s", i, want[i], d)
		}
	}
}

func TestCandidateDays_MembershipProperty(t *testing.T) {
	const window = 22
	days := CandidateDays(thursday, window)
	inResult := make(map[entity.Date]bool, len(days))
	for _, d := range days {
		inResult[d] = true
	}

	// Walk well beyond both ends of the window.
	for i := -10; i < window+10; i++ {
		d := thursday.AddDays(i)
		wd := d.Weekday()
		expected := i >= 0 && i < window &&
			(wd == time.Monday || wd == time.Wednesday || wd == time.Saturday)
		if inResult[d] != expected {
			t.Fatalf("%s (%s): expected membership %v, got %v", d, wd, expected, inResult[d])
		}
	}
}

func TestCandidateDays_TodayIncludedWhenBookable(t *testing.T) {
	monday := entity.Date{Year: 2026, Month: time.October, Day: 19}
	days := CandidateDays(monday, 1)
	if len(days) != 1 || days[0] != monday {
		t.Fatalf("expected [%s], got %v", monday, days)
	}
	if got := CandidateDays(monday, 0); len(got) != 0 {
		t.Fatalf("expected no days for an empty window, got %v", got)
	}
}

func TestOpenDays(t *testing.T) {
	days := CandidateDays(thursday, 22)
	counts := map[entity.Date]int64{
		days[0]: 10,
		days[1]: 9,
		days[2]: 11,
	}

	open := OpenDays(days, counts, 10)

	if len(open) != len(days)-2 {
		t.Fatalf("expected %d open days, got %d", len(days)-2, len(open))
	}
	for _, d := range open {
		if counts[d] >= 10 {
			t.Fatalf("day %s with %d bookings must not be open", d, counts[d])
		}
	}
	if open[0] != days[1] {
		t.Fatalf("expected first open day %s, got %s", days[1], open[0])
	}
}

func TestAvailableTimes(t *testing.T) {
	day := entity.Date{Year: 2026, Month: time.October, Day: 19}
	booked := []entity.Appointment{
		{ID: 1, Day: day, Time: entity.Slot1500},
		{ID: 2, Day: day, Time: entity.Slot1630},
		{ID: 3, Day: day, Time: entity.Slot1930},
	}

	tests := []struct {
		name      string
		excludeID int64
		want      []entity.TimeSlot
	}{
		{
			name: "new booking",
			want: []entity.TimeSlot{
				entity.Slot1530, entity.Slot1600, entity.Slot1700, entity.Slot1730,
				entity.Slot1800, entity.Slot1830, entity.Slot1900,
			},
		},
		{
			name:      "editing keeps own slot",
			excludeID: 2,
			want: []entity.TimeSlot{
				entity.Slot1530, entity.Slot1600, entity.Slot1630, entity.Slot1700, entity.Slot1730,
				entity.Slot1800, entity.Slot1830, entity.Slot1900,
			},
		},
		{
			name:      "unrelated id changes nothing",
			excludeID: 99,
			want: []entity.TimeSlot{
				entity.Slot1530, entity.Slot1600, entity.Slot1700, entity.Slot1730,
				entity.Slot1800, entity.Slot1830, entity.Slot1900,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableTimes(entity.TimeSlots(), booked, tt.excludeID)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestAvailableTimes_UnionWithBookedIsFullDay(t *testing.T) {
	day := entity.Date{Year: 2026, Month: time.October, Day: 21}
	all := entity.TimeSlots()

	for n := 0; n <= len(all); n++ {
		var booked []entity.Appointment
		for i := 0; i < n; i++ {
			// Spread bookings over the day rather than taking a prefix.
			slot := all[(i*3)%len(all)]
			if containsSlot(booked, slot) {
				slot = firstFree(all, booked)
			}
			booked = append(booked, entity.Appointment{ID: int64(i + 1), Day: day, Time: slot})
		}

		available := AvailableTimes(all, booked, 0)
		union := make(map[entity.TimeSlot]int)
		for _, slot := range available {
			union[slot]++
		}
		for _, a := range booked {
			union[a.Time]++
		}

		if len(union) != len(all) {
			t.Fatalf("n=%d: union covers %d slots, want %d", n, len(union), len(all))
		}
		for slot, seen := range union {
			if seen != 1 {
				t.Fatalf("n=%d: slot %s both available and booked", n, slot)
			}
		}
	}
}

func TestInWindow(t *testing.T) {
	tests := []struct {
		offset int
		want   bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{21, true},
		{22, false},
		{30, false},
	}
	for _, tt := range tests {
		if got := InWindow(thursday.AddDays(tt.offset), thursday, 21); got != tt.want {
			t.Errorf("offset %d: expected %v, got %v", tt.offset, tt.want, got)
		}
	}
}

func TestHasCapacity_DisplayAndCommitThresholdsDiffer(t *testing.T) {
	const displayCapacity, commitCapacity = 10, 11

	if HasCapacity(10, displayCapacity) {
		t.Fatal("a day with 10 bookings must be hidden from the day picker")
	}
	if !HasCapacity(10, commitCapacity) {
		t.Fatal("a day with 10 bookings still passes the submission capacity check")
	}
	if HasCapacity(11, commitCapacity) {
		t.Fatal("a day with 11 bookings must be full at submission")
	}
}

func TestCanEdit(t *testing.T) {
	tests := []struct {
		name      string
		scheduled entity.Date
		want      bool
	}{
		{"yesterday", thursday.AddDays(-1), false},
		{"today", thursday, false},
		{"tomorrow", thursday.AddDays(1), true},
		{"next week", thursday.AddDays(7), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEdit(tt.scheduled, thursday, 1); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func containsSlot(booked []entity.Appointment, slot entity.TimeSlot) bool {
	for _, a := range booked {
		if a.Time == slot {
			return true
		}
	}
	return false
}

func firstFree(all []entity.TimeSlot, booked []entity.Appointment) entity.TimeSlot {
	for _, slot := range all {
		if !containsSlot(booked, slot) {
			return slot
		}
	}
	return ""
}
