//go:build unit

package order_test

import (
	"testing"
	"time"

	"marketplace-api/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(prices ...int64) []order.Line {
	out := make([]order.Line, 0, len(prices))
	for _, p := range prices {
		out = append(out, order.Line{
			VariantID:      uuid.New(),
			ProductID:      uuid.New(),
			Name:           "item",
			UnitPriceCents: p,
			Quantity:       1,
		})
	}
	return out
}

func TestNewOrder(t *testing.T) {
	userID := uuid.New()
	shopID := uuid.New()
	now := time.Now()

	t.Run("basic success case", func(t *testing.T) {
		o, err := order.NewOrder(userID, shopID, lines(10000, 5000), 3000, nil, nil, 0, "cod", now)
		require.NoError(t, err)
		require.NotNil(t, o)

		assert.NotEqual(t, uuid.Nil, o.ID())
		assert.Equal(t, userID, o.UserID())
		assert.Equal(t, shopID, o.ShopID())
		assert.Equal(t, int64(15000), o.SubtotalCents())
		assert.Equal(t, int64(18000), o.TotalCents())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.PaymentUnpaid, o.PaymentStatus())

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.Status(""), history[0].From)
		assert.Equal(t, order.StatusPending, history[0].To)
	})

	t.Run("discounts reduce the total", func(t *testing.T) {
		shopVoucher := &order.VoucherApplication{
			VoucherID:     uuid.New(),
			Code:          "SAVE10",
			Scope:         "shop",
			DiscountType:  "percent",
			DiscountCents: 1500,
		}

		o, err := order.NewOrder(userID, shopID, lines(15000), 3000, shopVoucher, nil, 2000, "cod", now)
		require.NoError(t, err)

		assert.Equal(t, int64(1500), o.ShopDiscountCents())
		assert.Equal(t, int64(2000), o.SystemDiscountCents())
		assert.Equal(t, int64(15000+3000-1500-2000), o.TotalCents())
	})

	t.Run("total clamps at zero", func(t *testing.T) {
		o, err := order.NewOrder(userID, shopID, lines(100), 0, nil, nil, 5000, "cod", now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), o.TotalCents())
	})

	t.Run("empty lines rejected", func(t *testing.T) {
		_, err := order.NewOrder(userID, shopID, nil, 3000, nil, nil, 0, "cod", now)
		assert.ErrorIs(t, err, order.ErrNoLines)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		bad := lines(1000)
		bad[0].Quantity = 0
		_, err := order.NewOrder(userID, shopID, bad, 3000, nil, nil, 0, "cod", now)
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	})

	t.Run("negative unit price rejected", func(t *testing.T) {
		_, err := order.NewOrder(userID, shopID, lines(-1), 3000, nil, nil, 0, "cod", now)
		assert.ErrorIs(t, err, order.ErrInvalidUnitPrice)
	})
}

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to order.Status }{
		{order.StatusPending, order.StatusConfirmed},
		{order.StatusPending, order.StatusCanceled},
		{order.StatusConfirmed, order.StatusShipping},
		{order.StatusConfirmed, order.StatusCanceled},
		{order.StatusShipping, order.StatusCompleted},
	}
	for _, tr := range allowed {
		assert.True(t, order.CanTransition(tr.from, tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	denied := []struct{ from, to order.Status }{
		{order.StatusPending, order.StatusShipping},
		{order.StatusPending, order.StatusCompleted},
		{order.StatusShipping, order.StatusCanceled},
		{order.StatusCompleted, order.StatusShipping},
		{order.StatusCanceled, order.StatusPending},
		{order.StatusCompleted, order.StatusCanceled},
	}
	for _, tr := range denied {
		assert.False(t, order.CanTransition(tr.from, tr.to), "%s -> %s should be denied", tr.from, tr.to)
	}
}

func TestNewStatus(t *testing.T) {
	s, err := order.NewStatus("shipping")
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipping, s)

	_, err = order.NewStatus("refunded")
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
}
