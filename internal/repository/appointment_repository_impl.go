package repository

import (
	"errors"

	"petclinic-booking/internal/domain/entity"
	domainRepo "petclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("User").Create(appointment).Error
}

// Update replaces user, service, day and time of an existing appointment.
// Returns affected rows: 0 means the appointment no longer exists.
func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ?", appointment.ID).
		Updates(map[string]interface{}{
			"user_id": appointment.UserID,
			"service": appointment.Service,
			"day":     appointment.Day,
			"time":    appointment.Time,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int64) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindBySlot(db *gorm.DB, day entity.Date, slot entity.TimeSlot) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("day = ? AND time = ?", day, slot).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDay(db *gorm.DB, day entity.Date) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("day = ?", day).Order("time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Appointment, error) {
	return r.FindAll(db, &entity.AppointmentFilter{UserID: &userID})
}

// FindAll lists appointments ordered by day, then time.
// Supports optional filters: inclusive day range and owner.
func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("User")

	if filter != nil {
		if !filter.From.IsZero() {
			query = query.Where("day >= ?", filter.From)
		}
		if !filter.To.IsZero() {
			query = query.Where("day <= ?", filter.To)
		}
		if filter.UserID != nil {
			query = query.Where("user_id = ?", *filter.UserID)
		}
	}

	err := query.Order("day ASC, time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// CountByDay counts bookings on a day. A non-zero excludeID leaves that
// appointment out of the count.
func (r *appointmentRepository) CountByDay(db *gorm.DB, day entity.Date, excludeID int64) (int64, error) {
	var count int64
	query := db.Model(&entity.Appointment{}).Where("day = ?", day)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountBySlot(db *gorm.DB, day entity.Date, slot entity.TimeSlot) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("day = ? AND time = ?", day, slot).
		Count(&count).Error
	return count, err
}

// CountByDays returns the number of bookings per day in a single query.
// Days without bookings are absent from the map.
func (r *appointmentRepository) CountByDays(db *gorm.DB, days []entity.Date) (map[entity.Date]int64, error) {
	counts := make(map[entity.Date]int64, len(days))
	if len(days) == 0 {
		return counts, nil
	}

	type dayCount struct {
		Day   entity.Date
		Total int64
	}
	var rows []dayCount

	err := db.Model(&entity.Appointment{}).
		Select("day, COUNT(*) AS total").
		Where("day IN ?", days).
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.Day] = row.Total
	}
	return counts, nil
}
