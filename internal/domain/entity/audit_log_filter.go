package entity

import "github.com/google/uuid"

// AuditLogFilter narrows an audit log listing. Action matches either a full
// action ("appointment.update") or every action under a prefix
// ("appointment"). Zero values mean "no constraint".
type AuditLogFilter struct {
	Action string
	UserID *uuid.UUID
}
