package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders, products, users and order events. It wraps
// github.com/google/uuid so that the nil UUID can never pass as a real identifier.
//
// Example:
//
//	buyerID, err := kernel.UUIDFromString(req.BuyerID)
//	if err != nil {
//	    return fmt.Errorf("invalid buyer ID: %w", err)
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses any textual form accepted by uuid.Parse.
// The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// UUIDFromBytes restores an identifier from its 16-byte database form.
// The nil UUID is rejected.
//
// Parameters:
//   - b: Exactly 16 bytes, as scanned from a uuid column or a uuid.UUID slice
//
// Returns:
//   - the identifier on success
//   - an "invalid UUID format" error for any other length
//   - ErrUUIDIsNotConstructed for sixteen zero bytes
//
// Example:
//
//	var raw uuid.UUID
//	if err := rows.Scan(&raw); err != nil {
//	    return err
//	}
//	productID, err := kernel.UUIDFromBytes(raw[:])
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for persistence and transport adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
