package entity

import (
	"time"

	"github.com/google/uuid"
)

// Pet represents an animal registered by a user
type Pet struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth  Date      `gorm:"type:date;not null" json:"date_of_birth"`
	Gender       string    `gorm:"type:char(1);not null" json:"gender"`
	ProfilePhoto *string   `gorm:"type:varchar(255)" json:"profile_photo,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
}

func (Pet) TableName() string {
	return "pets"
}

func (p *Pet) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)
