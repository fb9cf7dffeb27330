package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInactive         = errors.New("voucher is inactive")
	ErrNotYetStarted    = errors.New("voucher is not valid yet")
	ErrExpired          = errors.New("voucher has expired")
	ErrMinOrderNotMet   = errors.New("order does not meet voucher minimum value")
	ErrUsageCapReached  = errors.New("voucher usage limit reached")
	ErrUserCapReached   = errors.New("voucher per-user usage limit reached")
	ErrScopeUnsupported = errors.New("discount type not supported for this scope")
	ErrInvalidWindow    = errors.New("voucher validity window is invalid")
	ErrShopRequired     = errors.New("shop-scope voucher requires a shop")
)

type Voucher struct {
	id                uuid.UUID
	code              Code
	scope             Scope
	discountType      DiscountType
	shopID            *uuid.UUID // set iff scope == shop
	percentOff        int32
	amountOffCents    int64
	maxDiscountCents  *int64 // optional cap for percent discounts
	minOrderCents     int64
	startsAt          time.Time
	endsAt            time.Time
	usageLimit        *int32
	usageLimitPerUser *int32
	usedCount         int32
	isActive          bool
	createdAt         time.Time
	updatedAt         time.Time
}

func New(
	code Code,
	scope Scope,
	discountType DiscountType,
	shopID *uuid.UUID,
	percentOff int32,
	amountOffCents int64,
	maxDiscountCents *int64,
	minOrderCents int64,
	startsAt, endsAt time.Time,
	usageLimit, usageLimitPerUser *int32,
) (*Voucher, error) {
	if !scope.Supports(discountType) {
		return nil, ErrScopeUnsupported
	}
	if scope == ScopeShop && shopID == nil {
		return nil, ErrShopRequired
	}
	if !endsAt.After(startsAt) {
		return nil, ErrInvalidWindow
	}
	switch discountType {
	case TypePercent:
		if percentOff < 1 || percentOff > 100 {
			return nil, ErrInvalidPercent
		}
	case TypeFixed:
		if amountOffCents <= 0 {
			return nil, ErrInvalidAmount
		}
	}

	return &Voucher{
		id:                uuid.New(),
		code:              code,
		scope:             scope,
		discountType:      discountType,
		shopID:            shopID,
		percentOff:        percentOff,
		amountOffCents:    amountOffCents,
		maxDiscountCents:  maxDiscountCents,
		minOrderCents:     minOrderCents,
		startsAt:          startsAt,
		endsAt:            endsAt,
		usageLimit:        usageLimit,
		usageLimitPerUser: usageLimitPerUser,
		isActive:          true,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	code Code,
	scope Scope,
	discountType DiscountType,
	shopID *uuid.UUID,
	percentOff int32,
	amountOffCents int64,
	maxDiscountCents *int64,
	minOrderCents int64,
	startsAt, endsAt time.Time,
	usageLimit, usageLimitPerUser *int32,
	usedCount int32,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Voucher {
	return &Voucher{
		id:                id,
		code:              code,
		scope:             scope,
		discountType:      discountType,
		shopID:            shopID,
		percentOff:        percentOff,
		amountOffCents:    amountOffCents,
		maxDiscountCents:  maxDiscountCents,
		minOrderCents:     minOrderCents,
		startsAt:          startsAt,
		endsAt:            endsAt,
		usageLimit:        usageLimit,
		usageLimitPerUser: usageLimitPerUser,
		usedCount:         usedCount,
		isActive:          isActive,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ValidateForOrder checks whether the voucher can be applied to an order of
// the given subtotal at the given time, by a user who has already used it
// userUsed times. Returns the first violated rule.
func (v *Voucher) ValidateForOrder(now time.Time, subtotalCents int64, userUsed int32) error {
	if !v.isActive {
		return ErrInactive
	}
	if now.Before(v.startsAt) {
		return ErrNotYetStarted
	}
	if now.After(v.endsAt) {
		return ErrExpired
	}
	if subtotalCents < v.minOrderCents {
		return ErrMinOrderNotMet
	}
	if v.usageLimit != nil && v.usedCount >= *v.usageLimit {
		return ErrUsageCapReached
	}
	if v.usageLimitPerUser != nil && userUsed >= *v.usageLimitPerUser {
		return ErrUserCapReached
	}
	return nil
}

// DiscountCents computes the discount against baseCents. For ship vouchers
// the discount equals the shipping portion. Percent discounts are floored,
// capped by the optional max discount value and clamped to [0, base]; fixed
// discounts never exceed the base.
func (v *Voucher) DiscountCents(baseCents, shippingCents int64) int64 {
	var d int64
	switch v.discountType {
	case TypePercent:
		d = baseCents * int64(v.percentOff) / 100
		if v.maxDiscountCents != nil && d > *v.maxDiscountCents {
			d = *v.maxDiscountCents
		}
	case TypeFixed:
		d = v.amountOffCents
	case TypeShip:
		d = shippingCents
	}

	if d > baseCents {
		d = baseCents
	}
	if d < 0 {
		d = 0
	}
	return d
}

func (v *Voucher) ID() uuid.UUID              { return v.id }
func (v *Voucher) Code() Code                 { return v.code }
func (v *Voucher) Scope() Scope               { return v.scope }
func (v *Voucher) DiscountType() DiscountType { return v.discountType }
func (v *Voucher) ShopID() *uuid.UUID         { return v.shopID }
func (v *Voucher) PercentOff() int32          { return v.percentOff }
func (v *Voucher) AmountOffCents() int64      { return v.amountOffCents }
func (v *Voucher) MaxDiscountCents() *int64   { return v.maxDiscountCents }
func (v *Voucher) MinOrderCents() int64       { return v.minOrderCents }
func (v *Voucher) StartsAt() time.Time        { return v.startsAt }
func (v *Voucher) EndsAt() time.Time          { return v.endsAt }
func (v *Voucher) UsageLimit() *int32         { return v.usageLimit }
func (v *Voucher) UsageLimitPerUser() *int32  { return v.usageLimitPerUser }
func (v *Voucher) UsedCount() int32           { return v.usedCount }
func (v *Voucher) IsActive() bool             { return v.isActive }
func (v *Voucher) CreatedAt() time.Time       { return v.createdAt }
func (v *Voucher) UpdatedAt() time.Time       { return v.updatedAt }
