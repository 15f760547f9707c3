package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"petclinic-booking/internal/domain/entity"
	domainRepo "petclinic-booking/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisSelectionKeyPrefix namespaces staged booking selections
const RedisSelectionKeyPrefix = "booking:selection:"

const (
	selectionFieldDay           = "day"
	selectionFieldService       = "service"
	selectionFieldAppointmentID = "appointment_id"
)

type selectionRepository struct {
	redisClient *redis.Client
}

func NewSelectionRepository(redisClient *redis.Client) domainRepo.SelectionRepository {
	return &selectionRepository{redisClient: redisClient}
}

// Save overwrites the staged selection of a session and refreshes its TTL.
func (r *selectionRepository) Save(ctx context.Context, sessionID string, selection *entity.Selection, ttl time.Duration) error {
	key := selectionKey(sessionID)

	pipe := r.redisClient.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		selectionFieldDay, selection.Day,
		selectionFieldService, selection.Service,
		selectionFieldAppointmentID, strconv.FormatInt(selection.AppointmentID, 10),
	)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("stage selection for session %s: %w", sessionID, err)
	}
	return nil
}

func (r *selectionRepository) Find(ctx context.Context, sessionID string) (*entity.Selection, error) {
	values, err := r.redisClient.HGetAll(ctx, selectionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read selection for session %s: %w", sessionID, err)
	}
	if len(values) == 0 {
		return nil, nil
	}

	selection := &entity.Selection{
		Day:     values[selectionFieldDay],
		Service: values[selectionFieldService],
	}
	if raw := values[selectionFieldAppointmentID]; raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt selection for session %s: %w", sessionID, err)
		}
		selection.AppointmentID = id
	}
	return selection, nil
}

func (r *selectionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.redisClient.Del(ctx, selectionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear selection for session %s: %w", sessionID, err)
	}
	return nil
}

func selectionKey(sessionID string) string {
	return RedisSelectionKeyPrefix + sessionID
}
