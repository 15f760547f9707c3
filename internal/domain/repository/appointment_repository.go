package repository

import (
	"petclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Update(db *gorm.DB, appointment *entity.Appointment) (int64, error)
	FindByID(db *gorm.DB, id int64) (*entity.Appointment, error)
	FindBySlot(db *gorm.DB, day entity.Date, slot entity.TimeSlot) (*entity.Appointment, error)
	FindByDay(db *gorm.DB, day entity.Date) ([]entity.Appointment, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	CountByDay(db *gorm.DB, day entity.Date, excludeID int64) (int64, error)
	CountBySlot(db *gorm.DB, day entity.Date, slot entity.TimeSlot) (int64, error)
	CountByDays(db *gorm.DB, days []entity.Date) (map[entity.Date]int64, error)
}
