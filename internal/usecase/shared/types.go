package shared

import (
	"time"

	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/domain/voucher"

	"github.com/google/uuid"
)

// Write-side snapshots keep command usecases independent of the read-side
// view types.

type CartLine struct {
	VariantID uuid.UUID
	Quantity  int32
}

// VariantSnapshot joins variant, product, shop and inventory state; the
// checkout command classifies lines as valid or invalid from it.
type VariantSnapshot struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	ShopID        uuid.UUID
	ProductName   string
	VariantName   string
	PriceCents    int64
	Stock         int32
	VariantActive bool
	ProductActive bool
	ShopActive    bool
}

func (s VariantSnapshot) DisplayName() string {
	if s.VariantName == "" {
		return s.ProductName
	}
	return s.ProductName + " - " + s.VariantName
}

type Address struct {
	Name     string
	Phone    string
	Street   string
	District string
	City     string
}

type ShopSnapshot struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Name     string
	IsActive bool
	Pickup   Address
}

type VoucherSnapshot struct {
	ID                uuid.UUID
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
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (s *VoucherSnapshot) ToDomain() *voucher.Voucher {
	return voucher.Reconstruct(
		s.ID,
		voucher.Code(s.Code),
		s.Scope,
		s.DiscountType,
		s.ShopID,
		s.PercentOff,
		s.AmountOffCents,
		s.MaxDiscountCents,
		s.MinOrderCents,
		s.StartsAt,
		s.EndsAt,
		s.UsageLimit,
		s.UsageLimitPerUser,
		s.UsedCount,
		s.IsActive,
		s.CreatedAt,
		s.UpdatedAt,
	)
}

// OrderSnapshot carries just enough order state for command-side checks
// (ownership, cancelability) and for restocking on cancel.
type OrderSnapshot struct {
	ID     uuid.UUID
	UserID uuid.UUID
	ShopID uuid.UUID
	Status order.Status
	Lines  []order.Line
}
