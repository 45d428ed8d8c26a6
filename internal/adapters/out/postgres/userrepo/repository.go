package userrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add saves a new user with its cart.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a user and its cart.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).Preload("CartItems").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("userId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the existing users among ids.
func (r *GormUserRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]any, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Preload("CartItems").Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// UpdateCart replaces the stored cart items of the user.
func (r *GormUserRepository) UpdateCart(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	userID := aggregate.ID().Bytes()
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&UserDTO{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("userId", aggregate.ID().String())
	}

	if err := db.Where("user_id = ?", userID).Delete(&CartItemDTO{}).Error; err != nil {
		return err
	}

	items := cartFromDomain(aggregate)
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}
