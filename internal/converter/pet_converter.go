package converter

import (
	"petclinic-booking/internal/delivery/dto"
	"petclinic-booking/internal/domain/entity"
)

// PetToResponse converts a Pet entity to PetResponse DTO
func PetToResponse(pet *entity.Pet) *dto.PetResponse {
	if pet == nil {
		return nil
	}

	return &dto.PetResponse{
		ID:           pet.ID,
		OwnerID:      pet.OwnerID,
		FirstName:    pet.FirstName,
		LastName:     pet.LastName,
		FullName:     pet.FullName(),
		DateOfBirth:  pet.DateOfBirth.String(),
		Gender:       pet.Gender,
		ProfilePhoto: pet.ProfilePhoto,
		CreatedAt:    pet.CreatedAt,
	}
}

// PetsToResponses converts a slice of Pet entities to slice of PetResponse DTOs
func PetsToResponses(pets []entity.Pet) []dto.PetResponse {
	responses := make([]dto.PetResponse, len(pets))
	for i := range pets {
		responses[i] = *PetToResponse(&pets[i])
	}
	return responses
}
