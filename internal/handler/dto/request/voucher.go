package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateVoucherRequest struct {
	Code              string     `json:"code" binding:"required"`
	Scope             string     `json:"scope" binding:"required,oneof=system shop"`
	DiscountType      string     `json:"discount_type" binding:"required,oneof=percent fixed ship"`
	ShopID            *uuid.UUID `json:"shop_id,omitempty"`
	PercentOff        int32      `json:"percent_off,omitempty"`
	AmountOffCents    int64      `json:"amount_off_cents,omitempty"`
	MaxDiscountCents  *int64     `json:"max_discount_cents,omitempty"`
	MinOrderCents     int64      `json:"min_order_cents,omitempty"`
	StartsAt          time.Time  `json:"starts_at" binding:"required"`
	EndsAt            time.Time  `json:"ends_at" binding:"required"`
	UsageLimit        *int32     `json:"usage_limit,omitempty"`
	UsageLimitPerUser *int32     `json:"usage_limit_per_user,omitempty"`
}
