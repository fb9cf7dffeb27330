package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"marketplace-api/internal/usecase/queries"
)

type VoucherResponse struct {
	ID                uuid.UUID  `json:"id"`
	Code              string     `json:"code"`
	Scope             string     `json:"scope"`
	DiscountType      string     `json:"discountType"`
	ShopID            *uuid.UUID `json:"shopId,omitempty"`
	PercentOff        int32      `json:"percentOff"`
	AmountOffCents    int64      `json:"amountOffCents"`
	MaxDiscountCents  *int64     `json:"maxDiscountCents,omitempty"`
	MinOrderCents     int64      `json:"minOrderCents"`
	StartsAt          time.Time  `json:"startsAt"`
	EndsAt            time.Time  `json:"endsAt"`
	UsageLimit        *int32     `json:"usageLimit,omitempty"`
	UsageLimitPerUser *int32     `json:"usageLimitPerUser,omitempty"`
	UsedCount         int32      `json:"usedCount"`
	IsActive          bool       `json:"isActive"`
	CreatedAt         time.Time  `json:"createdAt"`
}

type CreateVoucherResponse struct {
	VoucherID uuid.UUID `json:"voucherId"`
}

func FromVoucherView(view *queries.VoucherView) *VoucherResponse {
	var resp VoucherResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromVoucherViews(views []*queries.VoucherView) []*VoucherResponse {
	resps := make([]*VoucherResponse, 0, len(views))
	for _, view := range views {
		resps = append(resps, FromVoucherView(view))
	}
	return resps
}
