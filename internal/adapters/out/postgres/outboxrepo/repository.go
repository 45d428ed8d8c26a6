package outboxrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderEventOutbox implements ports.OrderEventOutbox using GORM.
type GormOrderEventOutbox struct {
	db *gorm.DB
}

func NewGormOrderEventOutbox(db *gorm.DB) *GormOrderEventOutbox {
	return &GormOrderEventOutbox{db: db}
}

// Append stores events as unpublished rows.
func (o *GormOrderEventOutbox) Append(ctx context.Context, events []order.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OrderEventDTO, 0, len(events))
	for _, event := range events {
		dto, err := fromDomain(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	return o.db.WithContext(ctx).Create(&dtos).Error
}

// GetUnpublished locks up to limit pending rows, skipping rows another relay
// already holds. It must run inside a transaction for the lock to matter.
func (o *GormOrderEventOutbox) GetUnpublished(ctx context.Context, limit int) ([]order.Event, error) {
	var dtos []OrderEventDTO
	if err := o.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]order.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// MarkPublished stamps published_at on the given rows.
func (o *GormOrderEventOutbox) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	return o.db.WithContext(ctx).
		Model(&OrderEventDTO{}).
		Where("id IN ?", rawIDs(ids)).
		Update("published_at", at).Error
}

// MarkFailed bumps the attempt counter and keeps the last error.
func (o *GormOrderEventOutbox) MarkFailed(ctx context.Context, ids []kernel.UUID, cause error) error {
	if len(ids) == 0 || cause == nil {
		return nil
	}

	return o.db.WithContext(ctx).
		Model(&OrderEventDTO{}).
		Where("id IN ?", rawIDs(ids)).
		Updates(map[string]any{
			"attempt_count": gorm.Expr("attempt_count + 1"),
			"last_error":    cause.Error(),
		}).Error
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}
