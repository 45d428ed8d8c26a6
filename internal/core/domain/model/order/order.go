package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned for orders not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrLineNotFound is returned when the order does not contain the product.
	ErrLineNotFound = errors.New("order line not found")
)

// Order is the aggregate root created by one checkout. It ties a buyer to
// the products bought together and holds the delivery state of each of them.
//
// Order follows these invariants:
//   - Must have a valid identifier and buyer
//   - Holds at least one line, each product at most once
//   - Lines are only mutated through VerifyDelivery and RotateCode
//
// Changes are recorded as Events until the repository persists them.
type Order struct {
	id        kernel.UUID
	buyerID   kernel.UUID
	createdAt time.Time
	lines     []*Line

	events []Event

	guard guard.ConstructorGuard
}

// NewOrder creates an order for buyerID with one line per purchased product
// and records an OrderPlaced event.
//
// Example:
//
//	line, _ := order.NewLine(productID, code.Digest())
//	o, err := order.NewOrder(kernel.NewUUID(), buyerID, time.Now(), []*order.Line{line})
func NewOrder(id kernel.UUID, buyerID kernel.UUID, createdAt time.Time, lines []*Line) (*Order, error) {
	o, err := RestoreOrder(id, buyerID, createdAt, lines)
	if err != nil {
		return nil, err
	}

	for _, l := range o.lines {
		if !l.IsPending() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"lines",
				fmt.Errorf("line for product %s must start in process", l.productID),
			)
		}
	}

	o.record(OrderPlaced, o.productIDs(), createdAt)

	return o, nil
}

// RestoreOrder rebuilds an order from storage. No event is recorded.
func RestoreOrder(id kernel.UUID, buyerID kernel.UUID, createdAt time.Time, lines []*Line) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyer(buyerID),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID      { return o.id }
func (o *Order) Buyer() kernel.UUID   { return o.buyerID }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Lines returns the lines in checkout order. The slice is a copy; the lines
// are not.
func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// Line finds the line for productID.
func (o *Order) Line(productID kernel.UUID) (*Line, error) {
	for _, l := range o.lines {
		if l.productID.IsEqual(productID) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrLineNotFound, errs.NewObjectNotFoundError("productID", productID))
}

// PendingLines returns the lines still waiting for handoff.
func (o *Order) PendingLines() []*Line {
	var pending []*Line
	for _, l := range o.lines {
		if l.IsPending() {
			pending = append(pending, l)
		}
	}
	return pending
}

// ModifiedLines returns the lines changed since the order was loaded.
func (o *Order) ModifiedLines() []*Line {
	var modified []*Line
	for _, l := range o.lines {
		if l.modified {
			modified = append(modified, l)
		}
	}
	return modified
}

// IsCompleted reports whether every line was handed over.
func (o *Order) IsCompleted() bool {
	return len(o.PendingLines()) == 0
}

// VerifyDelivery completes the line for productID when presented matches its
// code and records a DeliveryCompleted event.
//
// This method enforces the following business rules:
//   - The order must contain a line for productID
//   - The line must still be InProcess; a completed line is rejected before
//     any comparison
//   - presented must hash to the line's current digest
//
// Parameters:
//   - productID: The product the seller is handing over
//   - presented: The code the buyer read out, unparsed
//   - at: The moment of the handoff, stamped on the event
//
// Returns:
//   - nil when the line moved to Completed
//   - ErrLineNotFound if the order has no line for productID
//   - ErrLineAlreadyCompleted if the line was handed over before
//   - ErrInvalidDeliveryCode on a mismatch; the order is left as is and the
//     call may be repeated
//
// The repository writes the line only if storage still holds the digest the
// order was loaded with, so a code rotated away meanwhile cannot complete it.
//
// Example:
//
//	err := o.VerifyDelivery(productID, "482913", time.Now())
//	switch {
//	case errors.Is(err, order.ErrInvalidDeliveryCode):
//	    // wrong code, nothing changed
//	case errors.Is(err, order.ErrLineAlreadyCompleted):
//	    // handed over earlier
//	case err != nil:
//	    return err
//	}
//	err = orderRepo.Update(ctx, o)
func (o *Order) VerifyDelivery(productID kernel.UUID, presented string, at time.Time) error {
	l, err := o.Line(productID)
	if err != nil {
		return err
	}

	if err := l.verify(presented); err != nil {
		return err
	}

	o.record(DeliveryCompleted, []kernel.UUID{productID}, at)
	return nil
}

// RotateCode replaces the digest of the pending line for productID. Once the
// order is persisted the previous code no longer verifies.
//
// This method enforces the following business rules:
//   - digest must be constructed
//   - The line must still be InProcess
//
// Only the digest reaches the aggregate; the caller keeps the raw code to
// hand it to the buyer. No event is recorded.
//
// Returns:
//   - nil when the line carries the new digest
//   - ErrLineNotFound if the order has no line for productID
//   - ErrLineAlreadyCompleted if the line was handed over
//
// Example:
//
//	code, err := codes.Generate()
//	if err != nil {
//	    return err
//	}
//	if err := o.RotateCode(productID, code.Digest()); err != nil {
//	    return err
//	}
//	// after Update and Commit, code.String() is the only valid code
func (o *Order) RotateCode(productID kernel.UUID, digest kernel.CodeDigest) error {
	l, err := o.Line(productID)
	if err != nil {
		return err
	}
	return l.rotate(digest)
}

// Events returns the events recorded since the last MarkPersisted.
func (o *Order) Events() []Event {
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

// MarkPersisted forgets recorded events and line modifications once the
// repository has written them.
func (o *Order) MarkPersisted() {
	o.events = nil
	for _, l := range o.lines {
		l.markPersisted()
	}
}

func (o *Order) record(eventType EventType, productIDs []kernel.UUID, at time.Time) {
	o.events = append(o.events, newEvent(eventType, o, productIDs, at))
}

func (o *Order) productIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.lines))
	for _, l := range o.lines {
		ids = append(ids, l.productID)
	}
	return ids
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyer(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyerID", err)
	}
	o.buyerID = buyerID
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		if _, dup := seen[l.productID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"lines",
				fmt.Errorf("product %s appears more than once", l.productID),
			)
		}
		seen[l.productID] = struct{}{}
	}

	o.lines = append([]*Line(nil), lines...)
	return nil
}
