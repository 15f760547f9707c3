package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterPetRequest struct {
	FirstName    string  `json:"first_name" validate:"required,max=100"`
	LastName     string  `json:"last_name" validate:"required,max=100"`
	DateOfBirth  string  `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender       string  `json:"gender" validate:"required,oneof=M F"`
	ProfilePhoto *string `json:"profile_photo" validate:"omitempty,max=255"`
}

// Response DTOs

type PetResponse struct {
	ID           int64     `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FullName     string    `json:"full_name"`
	DateOfBirth  string    `json:"date_of_birth"`
	Gender       string    `json:"gender"`
	ProfilePhoto *string   `json:"profile_photo,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type PetListResponse struct {
	Pets  []PetResponse `json:"pets"`
	Total int           `json:"total"`
}
