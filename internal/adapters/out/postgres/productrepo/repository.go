package productrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add saves a new listing.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("productId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the existing products among ids in one round trip.
func (r *GormProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.String())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("id = ANY(?)", pq.Array(raw)).Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

// UpdateStatusIfAvailable writes the new trading status only over a row that
// is still available.
func (r *GormProductRepository) UpdateStatusIfAvailable(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND trading_status = ?", aggregate.ID().Bytes(), int(product.Available)).
		Update("trading_status", int(aggregate.TradingStatus()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&ProductDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("productId", aggregate.ID().String())
	}
	return fmt.Errorf("%w: %s", product.ErrProductIsNotAvailable, aggregate.ID())
}
