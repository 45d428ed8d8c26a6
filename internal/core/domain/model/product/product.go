package product

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductIsNotConstructed is returned for products not built by NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrProductIsNotAvailable is returned when selling a product that is already sold.
	ErrProductIsNotAvailable = errors.New("product is not available")
)

// Product is the listing aggregate. The order workflow only mutates its
// trading status; every other field is owned by the seller.
type Product struct {
	id            kernel.UUID
	name          string
	description   string
	price         decimal.Decimal
	category      string
	sellerID      kernel.UUID
	tradingStatus TradingStatus
	listedAt      time.Time

	guard guard.ConstructorGuard
}

// NewProduct creates an Available product listed by sellerID.
func NewProduct(
	id kernel.UUID,
	name string,
	description string,
	price decimal.Decimal,
	category string,
	sellerID kernel.UUID,
	listedAt time.Time,
) (*Product, error) {
	return RestoreProduct(id, name, description, price, category, sellerID, Available, listedAt)
}

// RestoreProduct rebuilds a product from storage, keeping its trading status.
func RestoreProduct(
	id kernel.UUID,
	name string,
	description string,
	price decimal.Decimal,
	category string,
	sellerID kernel.UUID,
	status TradingStatus,
	listedAt time.Time,
) (*Product, error) {
	p := &Product{
		description: description,
		listedAt:    listedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setCategory(category),
		p.setSeller(sellerID),
		p.setTradingStatus(status),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the product was built by a constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID              { return p.id }
func (p *Product) Name() string                 { return p.name }
func (p *Product) Description() string          { return p.description }
func (p *Product) Price() decimal.Decimal       { return p.price }
func (p *Product) Category() string             { return p.category }
func (p *Product) Seller() kernel.UUID          { return p.sellerID }
func (p *Product) TradingStatus() TradingStatus { return p.tradingStatus }
func (p *Product) ListedAt() time.Time          { return p.listedAt }

// IsAvailable reports whether the product can still be checked out.
func (p *Product) IsAvailable() bool {
	return p.tradingStatus == Available
}

// IsSoldBy reports whether sellerID listed this product.
func (p *Product) IsSoldBy(sellerID kernel.UUID) bool {
	return p.sellerID.IsEqual(sellerID)
}

// Sell marks the product as sold. The in-memory transition must be followed
// by a conditional store update so that concurrent checkouts cannot both win.
func (p *Product) Sell() error {
	next, err := p.tradingStatus.Sell()
	if err != nil {
		return err
	}

	p.tradingStatus = next
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("price", price.String(), 0, "unbounded")
	}
	p.price = price
	return nil
}

func (p *Product) setCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return errs.NewValueIsRequiredError("category")
	}
	p.category = category
	return nil
}

func (p *Product) setSeller(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("seller", err)
	}
	p.sellerID = sellerID
	return nil
}

func (p *Product) setTradingStatus(status TradingStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.tradingStatus = status
	return nil
}
