package repository

import (
	"petclinic-booking/internal/domain/entity"
	domainRepo "petclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type petRepository struct{}

func NewPetRepository() domainRepo.PetRepository {
	return &petRepository{}
}

func (r *petRepository) Create(db *gorm.DB, pet *entity.Pet) error {
	return db.Omit("Owner").Create(pet).Error
}

func (r *petRepository) FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.Pet, error) {
	var pets []entity.Pet
	err := db.Where("owner_id = ?", ownerID).Order("first_name ASC, last_name ASC").Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}
