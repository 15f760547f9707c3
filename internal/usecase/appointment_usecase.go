package usecase

import (
	"context"
	"errors"
	"fmt"

	"petclinic-booking/config"
	"petclinic-booking/internal/converter"
	"petclinic-booking/internal/delivery/dto"
	"petclinic-booking/internal/domain/entity"
	"petclinic-booking/internal/domain/repository"
	"petclinic-booking/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidDateRange = errors.New("'from' must not be after 'to'")

// AppointmentUsecase serves the read-only appointment views
type AppointmentUsecase interface {
	UserPanel(ctx context.Context, userID uuid.UUID) (*dto.UserPanelResponse, error)
	StaffPanel(ctx context.Context, from, to string) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cfg             config.BookingConfig
	clock           clock.Clock
	appointmentRepo repository.AppointmentRepository
	petRepo         repository.PetRepository
	userRepo        repository.UserRepository
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.BookingConfig,
	clk clock.Clock,
	appointmentRepo repository.AppointmentRepository,
	petRepo repository.PetRepository,
	userRepo repository.UserRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		cfg:             cfg,
		clock:           clk,
		appointmentRepo: appointmentRepo,
		petRepo:         petRepo,
		userRepo:        userRepo,
	}
}

// UserPanel returns the user's profile, appointments and pets
func (u *appointmentUsecase) UserPanel(ctx context.Context, userID uuid.UUID) (*dto.UserPanelResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	appointments, err := u.appointmentRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for user %s: %+v", userID, err)
		return nil, err
	}

	pets, err := u.petRepo.FindByOwnerID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find pets for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.UserPanelResponse{
		User:         *converter.UserToResponse(user),
		Appointments: converter.AppointmentsToResponses(appointments),
		Pets:         converter.PetsToResponses(pets),
	}, nil
}

// StaffPanel lists every appointment between from and to inclusive.
// Empty bounds default to today and the end of the booking window.
func (u *appointmentUsecase) StaffPanel(ctx context.Context, from, to string) (*dto.AppointmentListResponse, error) {
	today := entity.DateOf(u.clock.Now())
	filter := &entity.AppointmentFilter{
		From: today,
		To:   today.AddDays(u.cfg.WindowDays),
	}

	if from != "" {
		d, err := entity.ParseDate(from)
		if err != nil {
			return nil, fmt.Errorf("%w: from: %v", ErrValidation, err)
		}
		filter.From = d
	}
	if to != "" {
		d, err := entity.ParseDate(to)
		if err != nil {
			return nil, fmt.Errorf("%w: to: %v", ErrValidation, err)
		}
		filter.To = d
	}
	if filter.From.After(filter.To) {
		return nil, fmt.Errorf("%w: %v", ErrValidation, ErrInvalidDateRange)
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
