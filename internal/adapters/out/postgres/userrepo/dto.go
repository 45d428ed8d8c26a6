// Package userrepo persists the account fields the order workflow reads and
// the cart that checkout clears.
package userrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the users row.
type UserDTO struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"`
	FirstName     string        `gorm:"type:varchar(100);not null"`
	LastName      string        `gorm:"type:varchar(100);not null"`
	ProfileImage  string        `gorm:"type:text"`
	Email         string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	ContactNumber string        `gorm:"type:varchar(32)"`
	Age           int           `gorm:"not null"`
	CartItems     []CartItemDTO `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserDTO) TableName() string {
	return "users"
}

// CartItemDTO is the cart_items row.
type CartItemDTO struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

func fromDomain(aggregate *user.User) UserDTO {
	profile := aggregate.PublicProfile()
	userID := profile.ID.Bytes()

	return UserDTO{
		ID:            userID,
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		ProfileImage:  profile.ProfileImage,
		Email:         profile.Email,
		ContactNumber: profile.ContactNumber,
		Age:           profile.Age,
		CartItems:     cartFromDomain(aggregate),
	}
}

func cartFromDomain(aggregate *user.User) []CartItemDTO {
	userID := aggregate.ID().Bytes()

	items := make([]CartItemDTO, 0, len(aggregate.Cart()))
	for _, item := range aggregate.Cart() {
		items = append(items, CartItemDTO{
			UserID:    userID,
			ProductID: item.ProductID.Bytes(),
			Quantity:  item.Quantity,
		})
	}
	return items
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	cart := make([]user.CartItem, 0, len(dto.CartItems))
	for _, item := range dto.CartItems {
		productID, itemErr := kernel.UUIDFromBytes(item.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		cart = append(cart, user.CartItem{ProductID: productID, Quantity: item.Quantity})
	}

	return user.RestoreUser(user.PublicProfile{
		ID:            id,
		FirstName:     dto.FirstName,
		LastName:      dto.LastName,
		ProfileImage:  dto.ProfileImage,
		Email:         dto.Email,
		ContactNumber: dto.ContactNumber,
		Age:           dto.Age,
	}, cart)
}
