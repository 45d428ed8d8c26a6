// Package guard lets value objects, entities, commands and queries detect
// that they were built by their constructor rather than as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field. Only constructors set it,
// so a zero-value struct fails Validate.
//
// Example:
//
//	type VerifyDeliveryCommand struct {
//	    productID kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c VerifyDeliveryCommand) Validate() error {
//	    return c.guard.Validate(ErrVerifyDeliveryCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owning object was not built by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
