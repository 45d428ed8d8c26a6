package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker receives every aggregate the repository writes so the unit
// of work can flush its events to the outbox.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every modified line with a compare-and-swap on the in process
// status and on the digest the line was loaded with. A code rotated by
// another transaction therefore can neither complete the line nor be
// overwritten by a second rotation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	orderID := aggregate.ID().Bytes()
	for _, l := range aggregate.ModifiedLines() {
		result := r.db.WithContext(ctx).
			Model(&LineDTO{}).
			Where("order_id = ? AND product_id = ? AND status = ? AND code_digest = ?",
				orderID, l.ProductID().Bytes(), int(order.InProcess), l.LoadedDigest().String()).
			Updates(map[string]any{
				"status":      int(l.Status()),
				"code_digest": l.Digest().String(),
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return r.explainMissedLine(ctx, aggregate.ID(), l)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// explainMissedLine reads the stored line to tell why the conditional write
// matched nothing.
func (r *GormOrderRepository) explainMissedLine(ctx context.Context, orderID kernel.UUID, l *order.Line) error {
	productID := l.ProductID()

	var stored []LineDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID.Bytes(), productID.Bytes()).
		Limit(1).
		Find(&stored).Error; err != nil {
		return err
	}

	switch {
	case len(stored) == 0:
		return fmt.Errorf("%w: %w", order.ErrLineNotFound, errs.NewObjectNotFoundError("productID", productID.String()))
	case order.LineStatus(stored[0].Status) != order.InProcess:
		return fmt.Errorf("%w: %s", order.ErrLineAlreadyCompleted, productID)
	case l.Status() == order.Completed:
		// The presented code matched a digest that was rotated away meanwhile.
		return fmt.Errorf("%w: %s", order.ErrInvalidDeliveryCode, productID)
	default:
		return fmt.Errorf("%w: %s", order.ErrDeliveryCodeSuperseded, productID)
	}
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withLines(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLatestByProduct retrieves the newest order with a line for productID.
func (r *GormOrderRepository) GetLatestByProduct(ctx context.Context, productID kernel.UUID) (*order.Order, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withLines(ctx).
		Select("orders.*").
		Joins("JOIN order_lines ON order_lines.order_id = orders.id").
		Where("order_lines.product_id = ?", productID.Bytes()).
		Order("orders.created_at DESC").
		Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("productID", productID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByBuyer retrieves the buyer's orders that still have a line in process.
func (r *GormOrderRepository) GetActiveByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error) {
	if err := buyerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.withLines(ctx).
		Where("buyer_id = ?", buyerID.Bytes()).
		Where(
			"EXISTS (SELECT 1 FROM order_lines WHERE order_lines.order_id = orders.id AND order_lines.status = ?)",
			int(order.InProcess),
		).
		Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}
