package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrLineIsNotConstructed is returned for lines not built by NewLine or RestoreLine.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

	// ErrInvalidDeliveryCode is the normal negative result of a code check.
	ErrInvalidDeliveryCode = errors.New("delivery code is invalid")

	// ErrLineAlreadyCompleted is returned when verifying or rotating a handed-over line.
	ErrLineAlreadyCompleted = errors.New("delivery is already completed")

	// ErrDeliveryCodeSuperseded is returned when a rotation loses to another
	// rotation of the same line.
	ErrDeliveryCodeSuperseded = errors.New("delivery code was replaced concurrently")
)

// Line is one product of an order. It is owned by its Order and is not
// addressable on its own.
type Line struct {
	productID kernel.UUID
	digest    kernel.CodeDigest
	status    LineStatus

	// loadedDigest is the digest storage held when the line was loaded or
	// last persisted. Writes are conditional on it.
	loadedDigest kernel.CodeDigest

	// modified marks lines whose status or digest changed since loading.
	modified bool

	guard guard.ConstructorGuard
}

// NewLine creates an InProcess line guarded by digest.
func NewLine(productID kernel.UUID, digest kernel.CodeDigest) (*Line, error) {
	return RestoreLine(productID, digest, InProcess)
}

// RestoreLine rebuilds a line from storage.
func RestoreLine(productID kernel.UUID, digest kernel.CodeDigest, status LineStatus) (*Line, error) {
	if err := errors.Join(productID.Validate(), digest.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Line{
		productID:    productID,
		digest:       digest,
		status:       status,
		loadedDigest: digest,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line was built by a constructor.
func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l *Line) ProductID() kernel.UUID    { return l.productID }
func (l *Line) Digest() kernel.CodeDigest { return l.digest }
func (l *Line) Status() LineStatus        { return l.status }

// LoadedDigest returns the digest the line had in storage before any
// rotation made since loading.
func (l *Line) LoadedDigest() kernel.CodeDigest { return l.loadedDigest }

// IsPending reports whether the line still waits for handoff.
func (l *Line) IsPending() bool {
	return l.status == InProcess
}

// IsModified reports whether the line must be written back.
func (l *Line) IsModified() bool {
	return l.modified
}

// verify completes the line if presented matches the stored digest.
// A completed line is rejected before any comparison.
func (l *Line) verify(presented string) error {
	next, err := l.status.Complete()
	if err != nil {
		return err
	}

	if !l.digest.Matches(presented) {
		return ErrInvalidDeliveryCode
	}

	l.status = next
	l.modified = true
	return nil
}

// rotate replaces the digest of a pending line.
func (l *Line) rotate(digest kernel.CodeDigest) error {
	if err := digest.Validate(); err != nil {
		return err
	}
	if err := l.status.ValidateRotate(); err != nil {
		return err
	}

	l.digest = digest
	l.modified = true
	return nil
}

// markPersisted makes the current digest the new baseline for conditional writes.
func (l *Line) markPersisted() {
	l.loadedDigest = l.digest
	l.modified = false
}
