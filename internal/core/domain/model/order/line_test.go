package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	productID := kernel.NewUUID()
	digest := kernel.DigestOf("482913")

	t.Run("should start in process", func(t *testing.T) {
		l, err := order.NewLine(productID, digest)

		require.NoError(t, err)
		require.NoError(t, l.Validate())
		assert.True(t, l.ProductID().IsEqual(productID))
		assert.True(t, l.Digest().IsEqual(digest))
		assert.Equal(t, order.InProcess, l.Status())
		assert.True(t, l.IsPending())
		assert.False(t, l.IsModified())
	})

	t.Run("should reject zero values", func(t *testing.T) {
		l, err := order.NewLine(kernel.UUID{}, kernel.CodeDigest{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrCodeDigestIsNotConstructed)
		assert.Nil(t, l)
	})
}

func TestRestoreLine(t *testing.T) {
	t.Run("should keep stored status", func(t *testing.T) {
		l, err := order.RestoreLine(kernel.NewUUID(), kernel.DigestOf("482913"), order.Completed)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, l.Status())
		assert.False(t, l.IsPending())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreLine(kernel.NewUUID(), kernel.DigestOf("482913"), order.UnknownLineStatus)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestLine_Validate(t *testing.T) {
	var nilLine *order.Line

	assert.Equal(t, order.ErrLineIsNotConstructed, nilLine.Validate())
	assert.Equal(t, order.ErrLineIsNotConstructed, (&order.Line{}).Validate())
}

func TestLine_LoadedDigest(t *testing.T) {
	productID := kernel.NewUUID()
	original := kernel.DigestOf("111111")

	line, err := order.RestoreLine(productID, original, order.InProcess)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), time.Now(), []*order.Line{line})
	require.NoError(t, err)

	t.Run("rotation keeps the stored digest as baseline", func(t *testing.T) {
		require.NoError(t, o.RotateCode(productID, kernel.DigestOf("222222")))

		assert.True(t, line.LoadedDigest().IsEqual(original))
		assert.True(t, line.Digest().Matches("222222"))
	})

	t.Run("persisting moves the baseline to the written digest", func(t *testing.T) {
		o.MarkPersisted()

		assert.True(t, line.LoadedDigest().Matches("222222"))
		assert.False(t, line.IsModified())
	})
}
