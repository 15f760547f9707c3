package usecase

import (
	"context"
	"fmt"
	"strconv"

	"petclinic-booking/internal/converter"
	"petclinic-booking/internal/delivery/dto"
	"petclinic-booking/internal/domain/entity"
	"petclinic-booking/internal/domain/repository"
	"petclinic-booking/internal/service"
	"petclinic-booking/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PetUsecase interface {
	Register(ctx context.Context, ownerID uuid.UUID, req *dto.RegisterPetRequest) (*dto.PetResponse, error)
	List(ctx context.Context, ownerID uuid.UUID) (*dto.PetListResponse, error)
}

type petUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clock        clock.Clock
	petRepo      repository.PetRepository
	auditService service.AuditService
}

func NewPetUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clk clock.Clock,
	petRepo repository.PetRepository,
	auditService service.AuditService,
) PetUsecase {
	return &petUsecase{
		db:           db,
		log:          log,
		clock:        clk,
		petRepo:      petRepo,
		auditService: auditService,
	}
}

func (u *petUsecase) Register(ctx context.Context, ownerID uuid.UUID, req *dto.RegisterPetRequest) (*dto.PetResponse, error) {
	dob, err := entity.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_birth: %v", ErrValidation, err)
	}
	if dob.After(entity.DateOf(u.clock.Now())) {
		return nil, fmt.Errorf("%w: date_of_birth is in the future", ErrValidation)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	pet := &entity.Pet{
		OwnerID:      ownerID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  dob,
		Gender:       req.Gender,
		ProfilePhoto: req.ProfilePhoto,
	}

	if err := u.petRepo.Create(tx, pet); err != nil {
		if isForeignKeyError(err, "owner") {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to create pet: %+v", err)
		return nil, err
	}

	response := converter.PetToResponse(pet)

	if err := u.auditService.LogCreate(ctx, tx, &ownerID, entity.AuditActionPetRegister,
		"pet", strconv.FormatInt(pet.ID, 10), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *petUsecase) List(ctx context.Context, ownerID uuid.UUID) (*dto.PetListResponse, error) {
	pets, err := u.petRepo.FindByOwnerID(u.db.WithContext(ctx), ownerID)
	if err != nil {
		u.log.Warnf("Failed to find pets for owner %s: %+v", ownerID, err)
		return nil, err
	}

	return &dto.PetListResponse{
		Pets:  converter.PetsToResponses(pets),
		Total: len(pets),
	}, nil
}
