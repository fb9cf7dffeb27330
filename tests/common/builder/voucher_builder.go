//go:build unit || e2e

package builder

import (
	"time"

	"marketplace-api/internal/domain/voucher"

	"github.com/google/uuid"
)

type VoucherBuilder struct {
	Code              string
	Scope             voucher.Scope
	DiscountType      voucher.DiscountType
	ShopID            *uuid.UUID
	PercentOff        int32
	AmountOffCents    int64
	MaxDiscountCents  *int64
	MinOrderCents     int64
	StartsAt          time.Time
	EndsAt            time.Time
	UsageLimit        *int32
	UsageLimitPerUser *int32
	UsedCount         int32
	IsActive          bool
}

func NewVoucherBuilder() *VoucherBuilder {
	shopID := uuid.New()
	now := time.Now()
	return &VoucherBuilder{
		Code:          "SAVE10",
		Scope:         voucher.ScopeShop,
		DiscountType:  voucher.TypePercent,
		ShopID:        &shopID,
		PercentOff:    10,
		MinOrderCents: 0,
		StartsAt:      now.Add(-time.Hour),
		EndsAt:        now.Add(24 * time.Hour),
		IsActive:      true,
	}
}

func (b *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(b)
	return b
}

func (b *VoucherBuilder) BuildDomain() (*voucher.Voucher, error) {
	code, err := voucher.NewCode(b.Code)
	if err != nil {
		return nil, err
	}
	return voucher.New(
		code, b.Scope, b.DiscountType, b.ShopID,
		b.PercentOff, b.AmountOffCents, b.MaxDiscountCents, b.MinOrderCents,
		b.StartsAt, b.EndsAt, b.UsageLimit, b.UsageLimitPerUser,
	)
}

// BuildReconstructed bypasses creation validation so tests can set state the
// constructor forbids, such as a non-zero used count or an inactive flag.
func (b *VoucherBuilder) BuildReconstructed() *voucher.Voucher {
	code, _ := voucher.NewCode(b.Code)
	now := time.Now()
	return voucher.Reconstruct(
		uuid.New(), code, b.Scope, b.DiscountType, b.ShopID,
		b.PercentOff, b.AmountOffCents, b.MaxDiscountCents, b.MinOrderCents,
		b.StartsAt, b.EndsAt, b.UsageLimit, b.UsageLimitPerUser,
		b.UsedCount, b.IsActive, now, now,
	)
}
