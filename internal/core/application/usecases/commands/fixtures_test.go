package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, firstName string) *user.User {
	t.Helper()
	u, err := user.NewUser(user.PublicProfile{
		ID:            kernel.NewUUID(),
		FirstName:     firstName,
		LastName:      "Example",
		Email:         firstName + "@example.com",
		ContactNumber: "555-0100",
		Age:           30,
	})
	require.NoError(t, err)
	return u
}

func newProduct(t *testing.T, sellerID kernel.UUID) *product.Product {
	t.Helper()
	p, err := product.NewProduct(
		kernel.NewUUID(), "Camera", "35mm", decimal.NewFromInt(80), "electronics", sellerID, time.Now(),
	)
	require.NoError(t, err)
	return p
}

// newPlacedOrder returns a freshly loaded order whose lines use code 111111.
func newPlacedOrder(t *testing.T, buyerID kernel.UUID, productIDs ...kernel.UUID) *order.Order {
	t.Helper()
	lines := make([]*order.Line, 0, len(productIDs))
	for _, id := range productIDs {
		l, err := order.NewLine(id, kernel.DigestOf("111111"))
		require.NoError(t, err)
		lines = append(lines, l)
	}

	o, err := order.RestoreOrder(kernel.NewUUID(), buyerID, time.Now(), lines)
	require.NoError(t, err)
	return o
}
