package entity

import (
	"time"

	"github.com/google/uuid"
)

// Service is the kind of visit an appointment is booked for
type Service string

const (
	ServiceDoctorCare      Service = "Doctor care"
	ServicePetCare         Service = "Pet care"
	ServiceMedicalServices Service = "Medical services"
)

// Services lists the bookable services in display order.
func Services() []Service {
	return []Service{ServiceDoctorCare, ServicePetCare, ServiceMedicalServices}
}

func (s Service) IsValid() bool {
	for _, candidate := range Services() {
		if s == candidate {
			return true
		}
	}
	return false
}

// TimeSlot is one of the fixed half-hour labels a day is split into
type TimeSlot string

const (
	Slot1500 TimeSlot = "3 PM"
	Slot1530 TimeSlot = "3:30 PM"
	Slot1600 TimeSlot = "4 PM"
	Slot1630 TimeSlot = "4:30 PM"
	Slot1700 TimeSlot = "5 PM"
	Slot1730 TimeSlot = "5:30 PM"
	Slot1800 TimeSlot = "6 PM"
	Slot1830 TimeSlot = "6:30 PM"
	Slot1900 TimeSlot = "7 PM"
	Slot1930 TimeSlot = "7:30 PM"
)

// TimeSlots returns the ten slots of a clinic day in chronological order.
func TimeSlots() []TimeSlot {
	return []TimeSlot{
		Slot1500, Slot1530, Slot1600, Slot1630, Slot1700,
		Slot1730, Slot1800, Slot1830, Slot1900, Slot1930,
	}
}

func (t TimeSlot) IsValid() bool {
	for _, candidate := range TimeSlots() {
		if t == candidate {
			return true
		}
	}
	return false
}

// Appointment is a booked (day, time) slot for one service.
// The (day, time) pair is unique across the table.
type Appointment struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Service   Service    `gorm:"type:varchar(50);not null;default:'Doctor care'" json:"service"`
	Day       Date       `gorm:"type:date;not null;index;uniqueIndex:uq_appointments_slot,priority:1" json:"day"`
	Time      TimeSlot   `gorm:"type:varchar(10);not null;default:'3 PM';uniqueIndex:uq_appointments_slot,priority:2" json:"time"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsOwnedBy reports whether the appointment belongs to the given user.
// Appointments without an owner belong to nobody.
func (a *Appointment) IsOwnedBy(userID uuid.UUID) bool {
	return a.UserID != nil && *a.UserID == userID
}

// HoldsSlot reports whether the appointment occupies the given slot
func (a *Appointment) HoldsSlot(day Date, slot TimeSlot) bool {
	return a.Day == day && a.Time == slot
}
