//go:build unit

package voucher_test

import (
	"testing"
	"time"

	"marketplace-api/internal/domain/voucher"
	"marketplace-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVoucher(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		v, err := builder.NewVoucherBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, v)

		assert.NotEqual(t, uuid.Nil, v.ID())
		assert.Equal(t, "SAVE10", v.Code().String())
		assert.Equal(t, voucher.ScopeShop, v.Scope())
		assert.True(t, v.IsActive())
		assert.Equal(t, int32(0), v.UsedCount())
	})

	tests := []struct {
		name   string
		mutate func(*builder.VoucherBuilder)
		errIs  error
	}{
		{
			name: "shop scope rejects ship type",
			mutate: func(b *builder.VoucherBuilder) {
				b.DiscountType = voucher.TypeShip
			},
			errIs: voucher.ErrScopeUnsupported,
		},
		{
			name: "system scope rejects fixed type",
			mutate: func(b *builder.VoucherBuilder) {
				b.Scope = voucher.ScopeSystem
				b.ShopID = nil
				b.DiscountType = voucher.TypeFixed
				b.AmountOffCents = 500
			},
			errIs: voucher.ErrScopeUnsupported,
		},
		{
			name: "shop scope requires a shop",
			mutate: func(b *builder.VoucherBuilder) {
				b.ShopID = nil
			},
			errIs: voucher.ErrShopRequired,
		},
		{
			name: "window must end after it starts",
			mutate: func(b *builder.VoucherBuilder) {
				b.EndsAt = b.StartsAt
			},
			errIs: voucher.ErrInvalidWindow,
		},
		{
			name: "percent must be within 1..100",
			mutate: func(b *builder.VoucherBuilder) {
				b.PercentOff = 101
			},
			errIs: voucher.ErrInvalidPercent,
		},
		{
			name: "fixed amount must be positive",
			mutate: func(b *builder.VoucherBuilder) {
				b.DiscountType = voucher.TypeFixed
				b.AmountOffCents = 0
			},
			errIs: voucher.ErrInvalidAmount,
		},
		{
			name: "system percent voucher is valid",
			mutate: func(b *builder.VoucherBuilder) {
				b.Scope = voucher.ScopeSystem
				b.ShopID = nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := builder.NewVoucherBuilder().With(tt.mutate).BuildDomain()
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVoucherCode(t *testing.T) {
	t.Run("normalizes to upper case", func(t *testing.T) {
		code, err := voucher.NewCode("  save10  ")
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", code.String())
	})

	t.Run("rejects invalid characters", func(t *testing.T) {
		_, err := voucher.NewCode("SAVE 10%")
		assert.ErrorIs(t, err, voucher.ErrInvalidCode)
	})

	t.Run("rejects too-short codes", func(t *testing.T) {
		_, err := voucher.NewCode("AB")
		assert.ErrorIs(t, err, voucher.ErrInvalidCode)
	})
}

func TestValidateForOrder(t *testing.T) {
	now := time.Now()
	usageLimit := int32(10)
	perUser := int32(2)

	tests := []struct {
		name     string
		mutate   func(*builder.VoucherBuilder)
		subtotal int64
		userUsed int32
		errIs    error
	}{
		{
			name:     "valid voucher passes",
			subtotal: 10000,
		},
		{
			name: "inactive voucher",
			mutate: func(b *builder.VoucherBuilder) {
				b.IsActive = false
			},
			subtotal: 10000,
			errIs:    voucher.ErrInactive,
		},
		{
			name: "not yet started",
			mutate: func(b *builder.VoucherBuilder) {
				b.StartsAt = now.Add(time.Hour)
				b.EndsAt = now.Add(48 * time.Hour)
			},
			subtotal: 10000,
			errIs:    voucher.ErrNotYetStarted,
		},
		{
			name: "expired",
			mutate: func(b *builder.VoucherBuilder) {
				b.StartsAt = now.Add(-48 * time.Hour)
				b.EndsAt = now.Add(-time.Hour)
			},
			subtotal: 10000,
			errIs:    voucher.ErrExpired,
		},
		{
			name: "minimum order value not met",
			mutate: func(b *builder.VoucherBuilder) {
				b.MinOrderCents = 20000
			},
			subtotal: 10000,
			errIs:    voucher.ErrMinOrderNotMet,
		},
		{
			name: "global usage cap reached",
			mutate: func(b *builder.VoucherBuilder) {
				b.UsageLimit = &usageLimit
				b.UsedCount = 10
			},
			subtotal: 10000,
			errIs:    voucher.ErrUsageCapReached,
		},
		{
			name: "per-user cap reached",
			mutate: func(b *builder.VoucherBuilder) {
				b.UsageLimitPerUser = &perUser
			},
			subtotal: 10000,
			userUsed: 2,
			errIs:    voucher.ErrUserCapReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.NewVoucherBuilder()
			if tt.mutate != nil {
				b.With(tt.mutate)
			}
			v := b.BuildReconstructed()

			err := v.ValidateForOrder(now, tt.subtotal, tt.userUsed)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDiscountCents(t *testing.T) {
	maxDiscount := int64(3000)

	tests := []struct {
		name     string
		mutate   func(*builder.VoucherBuilder)
		base     int64
		shipping int64
		expected int64
	}{
		{
			name:     "percent discount is floored",
			base:     999,
			expected: 99, // 9.99 floored
		},
		{
			name: "percent discount capped by max",
			mutate: func(b *builder.VoucherBuilder) {
				b.PercentOff = 50
				b.MaxDiscountCents = &maxDiscount
			},
			base:     100000,
			expected: 3000,
		},
		{
			name: "fixed discount never exceeds base",
			mutate: func(b *builder.VoucherBuilder) {
				b.DiscountType = voucher.TypeFixed
				b.AmountOffCents = 5000
			},
			base:     2000,
			expected: 2000,
		},
		{
			name: "ship discount equals shipping portion",
			mutate: func(b *builder.VoucherBuilder) {
				b.Scope = voucher.ScopeSystem
				b.ShopID = nil
				b.DiscountType = voucher.TypeShip
			},
			base:     50000,
			shipping: 6000,
			expected: 6000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.NewVoucherBuilder()
			if tt.mutate != nil {
				b.With(tt.mutate)
			}
			v := b.BuildReconstructed()

			assert.Equal(t, tt.expected, v.DiscountCents(tt.base, tt.shipping))
		})
	}
}
