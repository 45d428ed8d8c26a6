package queries

import (
	"context"
	"database/sql"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSellerDeliveriesQueryHandler joins pending order lines with the listing
// and the buyer's public profile.
type GetSellerDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetSellerDeliveriesQueryHandler(db *gorm.DB) GetSellerDeliveriesQueryHandler {
	return GetSellerDeliveriesQueryHandler{db: db}
}

// Handle returns the seller's pending lines, oldest order first and in
// checkout order within an order. The code digest column is never selected.
func (h GetSellerDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetSellerDeliveriesQuery,
) ([]GetSellerDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetSellerDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.created_at,
			l.status,
			p.id,
			p.name,
			p.description,
			p.price,
			p.category,
			u.id,
			u.first_name,
			u.last_name,
			u.profile_image,
			u.email,
			u.contact_number,
			u.age
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		JOIN products p ON p.id = l.product_id
		JOIN users u ON u.id = o.buyer_id
		WHERE p.seller_id = ? AND l.status = ?
		ORDER BY o.created_at, l.position
	`, query.SellerID().Bytes(), int(order.InProcess)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		delivery, scanErr := scanDelivery(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		deliveries = append(deliveries, delivery)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

func scanDelivery(rows *sql.Rows) (GetSellerDeliveriesQueryResponse, error) {
	var delivery GetSellerDeliveriesQueryResponse
	var orderID, productID, buyerID uuid.UUID
	var status int
	var description, profileImage, contactNumber sql.NullString

	err := rows.Scan(
		&orderID,
		&delivery.OrderedAt,
		&status,
		&productID,
		&delivery.Product.Name,
		&description,
		&delivery.Product.Price,
		&delivery.Product.Category,
		&buyerID,
		&delivery.Buyer.FirstName,
		&delivery.Buyer.LastName,
		&profileImage,
		&delivery.Buyer.Email,
		&contactNumber,
		&delivery.Buyer.Age,
	)
	if err != nil {
		return GetSellerDeliveriesQueryResponse{}, err
	}

	if delivery.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetSellerDeliveriesQueryResponse{}, err
	}
	if delivery.Product.ID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
		return GetSellerDeliveriesQueryResponse{}, err
	}
	if delivery.Buyer.ID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return GetSellerDeliveriesQueryResponse{}, err
	}

	delivery.Status = order.LineStatus(status)
	if err = delivery.Status.Validate(); err != nil {
		return GetSellerDeliveriesQueryResponse{}, err
	}

	delivery.Product.Description = description.String
	delivery.Buyer.ProfileImage = profileImage.String
	delivery.Buyer.ContactNumber = contactNumber.String

	return delivery, nil
}
