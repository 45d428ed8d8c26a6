// Package productrepo persists product listings. The order workflow only
// reads them and flips their trading status.
package productrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the products row.
type ProductDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Category      string          `gorm:"type:varchar(100);not null;index"`
	SellerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TradingStatus int             `gorm:"not null;index"`
	ListedAt      time.Time       `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		Description:   aggregate.Description(),
		Price:         aggregate.Price(),
		Category:      aggregate.Category(),
		SellerID:      aggregate.Seller().Bytes(),
		TradingStatus: int(aggregate.TradingStatus()),
		ListedAt:      aggregate.ListedAt(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id,
		dto.Name,
		dto.Description,
		dto.Price,
		dto.Category,
		sellerID,
		product.TradingStatus(dto.TradingStatus),
		dto.ListedAt,
	)
}
