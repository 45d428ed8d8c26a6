package http

import (
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/user"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type CheckoutRequest struct {
	UserID   openapi_types.UUID   `json:"userId"`
	Products []openapi_types.UUID `json:"products"`
}

type VerifyOtpRequest struct {
	ProductID openapi_types.UUID `json:"productId"`
	Otp       string             `json:"otp"`
}

type Message struct {
	Message string `json:"message"`
}

// Order never carries delivery codes or their digests.
type Order struct {
	ID        openapi_types.UUID `json:"id"`
	UserID    openapi_types.UUID `json:"userId"`
	CreatedAt time.Time          `json:"createdAt"`
	Products  []OrderLine        `json:"products"`
}

type OrderLine struct {
	Product openapi_types.UUID `json:"product"`
	Status  string             `json:"status"`
}

type Product struct {
	ID          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Price       decimal.Decimal    `json:"price"`
	Category    string             `json:"category"`
}

type PublicProfile struct {
	ID            openapi_types.UUID `json:"id"`
	FirstName     string             `json:"firstName"`
	LastName      string             `json:"lastName"`
	ProfileImage  string             `json:"profileImage,omitempty"`
	Email         string             `json:"email"`
	ContactNumber string             `json:"contactNumber,omitempty"`
	Age           int                `json:"age"`
}

type Delivery struct {
	OrderID   openapi_types.UUID `json:"orderId"`
	OrderedAt time.Time          `json:"orderedAt"`
	Status    string             `json:"status"`
	Product   Product            `json:"product"`
	Buyer     PublicProfile      `json:"buyer"`
}

type ActiveOrderLine struct {
	OrderID   openapi_types.UUID `json:"orderId"`
	OrderedAt time.Time          `json:"orderedAt"`
	ProductID openapi_types.UUID `json:"productId"`
	Status    string             `json:"status"`
	Otp       string             `json:"otp"`
	Product   *Product           `json:"product,omitempty"`
	Seller    *PublicProfile     `json:"seller,omitempty"`
}

func orderResponse(o *order.Order) Order {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, OrderLine{
			Product: l.ProductID().Bytes(),
			Status:  l.Status().String(),
		})
	}

	return Order{
		ID:        o.ID().Bytes(),
		UserID:    o.Buyer().Bytes(),
		CreatedAt: o.CreatedAt(),
		Products:  lines,
	}
}

func profileResponse(p user.PublicProfile) PublicProfile {
	return PublicProfile{
		ID:            p.ID.Bytes(),
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		ProfileImage:  p.ProfileImage,
		Email:         p.Email,
		ContactNumber: p.ContactNumber,
		Age:           p.Age,
	}
}

func deliveryResponse(d queries.GetSellerDeliveriesQueryResponse) Delivery {
	return Delivery{
		OrderID:   d.OrderID.Bytes(),
		OrderedAt: d.OrderedAt,
		Status:    d.Status.String(),
		Product: Product{
			ID:          d.Product.ID.Bytes(),
			Name:        d.Product.Name,
			Description: d.Product.Description,
			Price:       d.Product.Price,
			Category:    d.Product.Category,
		},
		Buyer: profileResponse(d.Buyer),
	}
}

func productResponse(p *product.Product) *Product {
	if p == nil {
		return nil
	}
	return &Product{
		ID:          p.ID().Bytes(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Category:    p.Category(),
	}
}

func activeOrderLineResponse(item commands.ActiveOrderLine) ActiveOrderLine {
	line := ActiveOrderLine{
		OrderID:   item.OrderID.Bytes(),
		OrderedAt: item.OrderedAt,
		ProductID: item.ProductID.Bytes(),
		Status:    item.Status.String(),
		Otp:       item.Code.String(),
		Product:   productResponse(item.Product),
	}
	if item.Seller != nil {
		profile := profileResponse(*item.Seller)
		line.Seller = &profile
	}
	return line
}
