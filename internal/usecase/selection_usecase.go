package usecase

import (
	"context"
	"strings"
	"time"

	"petclinic-booking/internal/converter"
	"petclinic-booking/internal/delivery/dto"
	"petclinic-booking/internal/domain/entity"
	"petclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SelectionUsecase keeps the day and service picked in the first step of the
// booking form until the time is submitted.
type SelectionUsecase interface {
	Stage(ctx context.Context, sessionID string, userID uuid.UUID, appointmentID int64, req *dto.StageSelectionRequest) (*dto.SelectionResponse, error)
	Current(ctx context.Context, sessionID string) (*entity.Selection, error)
	Clear(ctx context.Context, sessionID string) error
}

type selectionUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	ttl             time.Duration
	selectionRepo   repository.SelectionRepository
	appointmentRepo repository.AppointmentRepository
}

func NewSelectionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	ttl time.Duration,
	selectionRepo repository.SelectionRepository,
	appointmentRepo repository.AppointmentRepository,
) SelectionUsecase {
	return &selectionUsecase{
		db:              db,
		log:             log,
		ttl:             ttl,
		selectionRepo:   selectionRepo,
		appointmentRepo: appointmentRepo,
	}
}

// Stage replaces whatever the session had staged. A new booking needs a
// service up front; an edit may stage without one and is rejected on submit.
func (u *selectionUsecase) Stage(ctx context.Context, sessionID string, userID uuid.UUID, appointmentID int64, req *dto.StageSelectionRequest) (*dto.SelectionResponse, error) {
	if appointmentID == 0 && strings.TrimSpace(req.Service) == "" {
		return nil, ErrNoService
	}

	if appointmentID != 0 {
		appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
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
	}

	selection := &entity.Selection{
		Day:           req.Day,
		Service:       req.Service,
		AppointmentID: appointmentID,
	}

	if err := u.selectionRepo.Save(ctx, sessionID, selection, u.ttl); err != nil {
		u.log.Warnf("Failed to stage selection: %+v", err)
		return nil, err
	}

	return converter.SelectionToResponse(selection), nil
}

// Current returns the staged selection, or nil when nothing is staged
func (u *selectionUsecase) Current(ctx context.Context, sessionID string) (*entity.Selection, error) {
	selection, err := u.selectionRepo.Find(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to read selection: %+v", err)
		return nil, err
	}
	return selection, nil
}

func (u *selectionUsecase) Clear(ctx context.Context, sessionID string) error {
	if err := u.selectionRepo.Delete(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to clear selection: %+v", err)
		return err
	}
	return nil
}
