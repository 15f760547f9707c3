package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDStaff  = 1
	RoleIDMember = 2
)

// RoleNames constants
const (
	RoleStaff  = "staff"
	RoleMember = "member"
)

// RoleName maps a role id to its name
func RoleName(roleID int) string {
	switch roleID {
	case RoleIDStaff:
		return RoleStaff
	case RoleIDMember:
		return RoleMember
	default:
		return ""
	}
}
