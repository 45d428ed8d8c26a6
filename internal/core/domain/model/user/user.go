// Package user holds the parts of a marketplace account the order workflow
// touches: the public profile shown to trading partners and the cart that
// checkout empties.
package user

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrUserIsNotConstructed is returned for users not built by NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// PublicProfile is what a buyer sees of a seller and vice versa.
type PublicProfile struct {
	ID            kernel.UUID
	FirstName     string
	LastName      string
	ProfileImage  string
	Email         string
	ContactNumber string
	Age           int
}

// CartItem is one product waiting in a cart.
type CartItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// User is an account record. Registration, login and reviews belong to the
// account service; this aggregate only exposes what checkout needs.
type User struct {
	profile PublicProfile
	cart    []CartItem

	guard guard.ConstructorGuard
}

// NewUser creates a user with an empty cart.
func NewUser(profile PublicProfile) (*User, error) {
	return RestoreUser(profile, nil)
}

// RestoreUser rebuilds a user and its cart from storage.
func RestoreUser(profile PublicProfile, cart []CartItem) (*User, error) {
	u := &User{guard: guard.NewConstructorGuard()}

	if err := errors.Join(u.setProfile(profile), u.setCart(cart)); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the user was built by a constructor.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID { return u.profile.ID }

// PublicProfile returns the profile fields safe to share with a trading partner.
func (u *User) PublicProfile() PublicProfile { return u.profile }

// Cart returns a copy of the cart items.
func (u *User) Cart() []CartItem {
	items := make([]CartItem, len(u.cart))
	copy(items, u.cart)
	return items
}

// AddToCart puts a product in the cart, bumping the quantity if it is already there.
func (u *User) AddToCart(productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	for i := range u.cart {
		if u.cart[i].ProductID.IsEqual(productID) {
			u.cart[i].Quantity += quantity
			return nil
		}
	}

	u.cart = append(u.cart, CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

// ClearCart empties the cart after a checkout.
func (u *User) ClearCart() {
	u.cart = nil
}

func (u *User) setProfile(profile PublicProfile) error {
	if err := profile.ID.Validate(); err != nil {
		return err
	}

	profile.FirstName = strings.TrimSpace(profile.FirstName)
	profile.LastName = strings.TrimSpace(profile.LastName)
	profile.Email = strings.TrimSpace(profile.Email)

	var problems []error
	if profile.FirstName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("firstName"))
	}
	if profile.LastName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("lastName"))
	}
	if !strings.Contains(profile.Email, "@") {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", profile.Email)))
	}
	if profile.Age < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("age", profile.Age, 1, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	u.profile = profile
	return nil
}

func (u *User) setCart(cart []CartItem) error {
	u.cart = nil
	for _, item := range cart {
		if err := u.AddToCart(item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
