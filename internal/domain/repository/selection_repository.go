package repository

import (
	"context"
	"time"

	"petclinic-booking/internal/domain/entity"
)

// SelectionRepository stages the first step of the booking form per session.
type SelectionRepository interface {
	Save(ctx context.Context, sessionID string, selection *entity.Selection, ttl time.Duration) error
	// Find returns nil, nil when nothing is staged for the session.
	Find(ctx context.Context, sessionID string) (*entity.Selection, error)
	Delete(ctx context.Context, sessionID string) error
}
