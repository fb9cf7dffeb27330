//go:build unit

package checkout_test

import (
	"testing"
	"time"

	"marketplace-api/internal/domain/checkout"
	"marketplace-api/internal/domain/voucher"
	"marketplace-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(shopID uuid.UUID, unitPrice int64, qty int32) checkout.Item {
	return checkout.Item{
		VariantID:      uuid.New(),
		ProductID:      uuid.New(),
		ShopID:         shopID,
		Name:           "item",
		UnitPriceCents: unitPrice,
		Quantity:       qty,
	}
}

func TestGroupByShop(t *testing.T) {
	shopA := uuid.New()
	shopB := uuid.New()

	t.Run("partitions by shop preserving first-seen order", func(t *testing.T) {
		items := []checkout.Item{
			item(shopA, 1000, 1),
			item(shopB, 2000, 2),
			item(shopA, 500, 3),
		}

		groups := checkout.GroupByShop(items)
		require.Len(t, groups, 2)

		assert.Equal(t, shopA, groups[0].ShopID)
		assert.Len(t, groups[0].Items, 2)
		assert.Equal(t, int64(1000+500*3), groups[0].SubtotalCents())

		assert.Equal(t, shopB, groups[1].ShopID)
		assert.Len(t, groups[1].Items, 1)
		assert.Equal(t, int64(4000), groups[1].SubtotalCents())
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		assert.Empty(t, checkout.GroupByShop(nil))
	})
}

func TestShopGroupTotals(t *testing.T) {
	shopID := uuid.New()
	g := &checkout.ShopGroup{
		ShopID:           shopID,
		Items:            []checkout.Item{item(shopID, 10000, 1)},
		ShippingFeeCents: 3000,
	}

	assert.Equal(t, int64(10000), g.SubtotalCents())
	assert.Equal(t, int64(13000), g.PayableCents())
	assert.Equal(t, int64(13000), g.TotalCents())

	g.SystemShareCents = 2000
	assert.Equal(t, int64(13000), g.PayableCents(), "payable ignores the system share")
	assert.Equal(t, int64(11000), g.TotalCents())
}

func TestApplyShopVoucher(t *testing.T) {
	now := time.Now()
	shopID := uuid.New()

	newGroup := func() *checkout.ShopGroup {
		return &checkout.ShopGroup{
			ShopID:           shopID,
			Items:            []checkout.Item{item(shopID, 50000, 1)},
			ShippingFeeCents: 3000,
		}
	}

	t.Run("percent voucher discounts the subtotal", func(t *testing.T) {
		v := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.ShopID = &shopID
			b.PercentOff = 10
		}).BuildReconstructed()

		g := newGroup()
		issue := checkout.ApplyShopVoucher(g, v, 0, now)
		require.Nil(t, issue)
		require.NotNil(t, g.ShopVoucher)
		assert.Equal(t, int64(5000), g.ShopVoucher.DiscountCents)
		assert.Equal(t, int64(48000), g.PayableCents())
	})

	t.Run("voucher for another shop is rejected", func(t *testing.T) {
		other := uuid.New()
		v := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.ShopID = &other
		}).BuildReconstructed()

		g := newGroup()
		issue := checkout.ApplyShopVoucher(g, v, 0, now)
		require.NotNil(t, issue)
		assert.Equal(t, checkout.ReasonVoucherNotFound, issue.Reason)
		assert.Nil(t, g.ShopVoucher)
	})

	t.Run("expired voucher reported with its reason", func(t *testing.T) {
		v := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.ShopID = &shopID
			b.StartsAt = now.Add(-48 * time.Hour)
			b.EndsAt = now.Add(-24 * time.Hour)
		}).BuildReconstructed()

		g := newGroup()
		issue := checkout.ApplyShopVoucher(g, v, 0, now)
		require.NotNil(t, issue)
		assert.Equal(t, checkout.ReasonVoucherExpired, issue.Reason)
	})

	t.Run("min order not met leaves group undiscounted", func(t *testing.T) {
		v := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.ShopID = &shopID
			b.MinOrderCents = 100000
		}).BuildReconstructed()

		g := newGroup()
		issue := checkout.ApplyShopVoucher(g, v, 0, now)
		require.NotNil(t, issue)
		assert.Equal(t, checkout.ReasonVoucherMinOrderNotMet, issue.Reason)
		assert.Equal(t, int64(53000), g.PayableCents())
	})
}

func TestApplySystemVoucher(t *testing.T) {
	now := time.Now()
	shopA := uuid.New()
	shopB := uuid.New()

	newGroups := func() []*checkout.ShopGroup {
		return []*checkout.ShopGroup{
			{ShopID: shopA, Items: []checkout.Item{item(shopA, 30000, 1)}, ShippingFeeCents: 3000},
			{ShopID: shopB, Items: []checkout.Item{item(shopB, 10000, 1)}, ShippingFeeCents: 3000},
		}
	}

	t.Run("percent voucher discounts the grand total", func(t *testing.T) {
		v := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.Scope = voucher.ScopeSystem
			b.ShopID = nil
			b.PercentOff = 10
		}).BuildReconstructed()

		app, issue := checkout.ApplySystemVoucher(newGroups(), v, 0, now)
		require.Nil(t, issue)
		require.NotNil(t, app)
		assert.Equal(t, int64(4600), app.DiscountCents, "10% of 46000 payable")
	})

	t.Run("ship voucher waives the summed shipping", func(t *testing.T) {
		v := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.Scope = voucher.ScopeSystem
			b.ShopID = nil
			b.DiscountType = voucher.TypeShip
		}).BuildReconstructed()

		app, issue := checkout.ApplySystemVoucher(newGroups(), v, 0, now)
		require.Nil(t, issue)
		require.NotNil(t, app)
		assert.Equal(t, int64(6000), app.DiscountCents)
	})

	t.Run("shop voucher is rejected at system scope", func(t *testing.T) {
		v := builder.NewVoucherBuilder().BuildReconstructed()

		app, issue := checkout.ApplySystemVoucher(newGroups(), v, 0, now)
		assert.Nil(t, app)
		require.NotNil(t, issue)
		assert.Equal(t, checkout.ReasonVoucherScopeUnsupported, issue.Reason)
	})

	t.Run("usage caps are honored", func(t *testing.T) {
		limit := int32(1)
		v := builder.NewVoucherBuilder().With(func(b *builder.VoucherBuilder) {
			b.Scope = voucher.ScopeSystem
			b.ShopID = nil
			b.UsageLimitPerUser = &limit
		}).BuildReconstructed()

		app, issue := checkout.ApplySystemVoucher(newGroups(), v, 1, now)
		assert.Nil(t, app)
		require.NotNil(t, issue)
		assert.Equal(t, checkout.ReasonVoucherUserCap, issue.Reason)
	})
}
