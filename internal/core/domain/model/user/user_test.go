package user_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() user.PublicProfile {
	return user.PublicProfile{
		ID:            kernel.NewUUID(),
		FirstName:     "Asha",
		LastName:      "Rao",
		Email:         "asha.rao@students.iiit.ac.in",
		ContactNumber: "9876543210",
		Age:           21,
	}
}

func TestNewUser(t *testing.T) {
	t.Run("should create a user with an empty cart", func(t *testing.T) {
		u, err := user.NewUser(validProfile())

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.Empty(t, u.Cart())
	})

	t.Run("should report every invalid profile field", func(t *testing.T) {
		_, err := user.NewUser(user.PublicProfile{ID: kernel.NewUUID(), Email: "nope"})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "firstName")
		assert.Contains(t, err.Error(), "lastName")
	})

	t.Run("should require an ID", func(t *testing.T) {
		profile := validProfile()
		profile.ID = kernel.UUID{}

		_, err := user.NewUser(profile)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUser_Cart(t *testing.T) {
	productA := kernel.NewUUID()
	productB := kernel.NewUUID()

	t.Run("should merge quantities of the same product", func(t *testing.T) {
		u, err := user.RestoreUser(validProfile(), []user.CartItem{
			{ProductID: productA, Quantity: 1},
			{ProductID: productA, Quantity: 2},
			{ProductID: productB, Quantity: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, []user.CartItem{
			{ProductID: productA, Quantity: 3},
			{ProductID: productB, Quantity: 1},
		}, u.Cart())
	})

	t.Run("should reject a non positive quantity", func(t *testing.T) {
		u, err := user.NewUser(validProfile())
		require.NoError(t, err)

		require.ErrorIs(t, u.AddToCart(productA, 0), errs.ErrValueIsOutOfRange)
		assert.Empty(t, u.Cart())
	})

	t.Run("should clear the cart", func(t *testing.T) {
		u, err := user.RestoreUser(validProfile(), []user.CartItem{{ProductID: productA, Quantity: 1}})
		require.NoError(t, err)

		u.ClearCart()

		assert.Empty(t, u.Cart())
	})

	t.Run("should return a defensive copy", func(t *testing.T) {
		u, err := user.RestoreUser(validProfile(), []user.CartItem{{ProductID: productA, Quantity: 1}})
		require.NoError(t, err)

		items := u.Cart()
		items[0].Quantity = 99

		assert.Equal(t, 1, u.Cart()[0].Quantity)
	})
}
