package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type CartItemView struct {
	VariantID   uuid.UUID `json:"variant_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ShopID      uuid.UUID `json:"shop_id"`
	ProductName string    `json:"product_name"`
	VariantName string    `json:"variant_name"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int32     `json:"quantity"`
	Stock       int32     `json:"stock"`
	Available   bool      `json:"available"`
}

type CartView struct {
	UserID        uuid.UUID       `json:"user_id"`
	Items         []*CartItemView `json:"items"`
	SubtotalCents int64           `json:"subtotal_cents"`
}

type VariantView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Stock      int32     `json:"stock"`
	IsActive   bool      `json:"is_active"`
}

type ProductView struct {
	ID          uuid.UUID      `json:"id"`
	ShopID      uuid.UUID      `json:"shop_id"`
	ShopName    string         `json:"shop_name"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	IsActive    bool           `json:"is_active"`
	Variants    []*VariantView `json:"variants"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ProductListItem struct {
	ID            uuid.UUID `json:"id"`
	ShopID        uuid.UUID `json:"shop_id"`
	ShopName      string    `json:"shop_name"`
	Name          string    `json:"name"`
	MinPriceCents int64     `json:"min_price_cents"`
	CreatedAt     time.Time `json:"created_at"`
}

type OrderLineView struct {
	VariantID      uuid.UUID `json:"variant_id"`
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int32     `json:"quantity"`
}

type VoucherApplicationView struct {
	VoucherID     uuid.UUID `json:"voucher_id"`
	Code          string    `json:"code"`
	Scope         string    `json:"scope"`
	DiscountType  string    `json:"discount_type"`
	DiscountCents int64     `json:"discount_cents"`
}

type StatusChangeView struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

type AddressView struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	District string `json:"district"`
	City     string `json:"city"`
}

type OrderView struct {
	ID                  uuid.UUID               `json:"id"`
	UserID              uuid.UUID               `json:"user_id"`
	ShopID              uuid.UUID               `json:"shop_id"`
	ShopName            string                  `json:"shop_name"`
	ShopOwnerID         uuid.UUID               `json:"shop_owner_id"`
	Lines               []*OrderLineView        `json:"lines"`
	SubtotalCents       int64                   `json:"subtotal_cents"`
	ShippingFeeCents    int64                   `json:"shipping_fee_cents"`
	ShopDiscountCents   int64                   `json:"shop_discount_cents"`
	SystemDiscountCents int64                   `json:"system_discount_cents"`
	TotalCents          int64                   `json:"total_cents"`
	ShopVoucher         *VoucherApplicationView `json:"shop_voucher,omitempty"`
	SystemVoucher       *VoucherApplicationView `json:"system_voucher,omitempty"`
	PaymentMethod       string                  `json:"payment_method"`
	PaymentStatus       string                  `json:"payment_status"`
	Status              string                  `json:"status"`
	History             []*StatusChangeView     `json:"history"`
	Addresses           []*AddressView          `json:"addresses"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

type OrderListItem struct {
	ID         uuid.UUID `json:"id"`
	ShopID     uuid.UUID `json:"shop_id"`
	ShopName   string    `json:"shop_name"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type ShopView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type VoucherView struct {
	ID                uuid.UUID  `json:"id"`
	Code              string     `json:"code"`
	Scope             string     `json:"scope"`
	DiscountType      string     `json:"discount_type"`
	ShopID            *uuid.UUID `json:"shop_id,omitempty"`
	PercentOff        int32      `json:"percent_off"`
	AmountOffCents    int64      `json:"amount_off_cents"`
	MaxDiscountCents  *int64     `json:"max_discount_cents,omitempty"`
	MinOrderCents     int64      `json:"min_order_cents"`
	StartsAt          time.Time  `json:"starts_at"`
	EndsAt            time.Time  `json:"ends_at"`
	UsageLimit        *int32     `json:"usage_limit,omitempty"`
	UsageLimitPerUser *int32     `json:"usage_limit_per_user,omitempty"`
	UsedCount         int32      `json:"used_count"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
}
