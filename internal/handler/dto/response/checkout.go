package response

import (
	"github.com/google/uuid"

	"marketplace-api/internal/domain/checkout"
	"marketplace-api/internal/usecase/commands"
)

type PlacedOrderResponse struct {
	OrderID             uuid.UUID `json:"orderId"`
	ShopID              uuid.UUID `json:"shopId"`
	SubtotalCents       int64     `json:"subtotalCents"`
	ShippingFeeCents    int64     `json:"shippingFeeCents"`
	ShopDiscountCents   int64     `json:"shopDiscountCents"`
	SystemDiscountCents int64     `json:"systemDiscountCents"`
	TotalCents          int64     `json:"totalCents"`
}

type PlaceOrdersResponse struct {
	Orders              []*PlacedOrderResponse `json:"orders"`
	GrandTotalCents     int64                  `json:"grandTotalCents"`
	SystemDiscountCents int64                  `json:"systemDiscountCents"`
	Warnings            []checkout.Issue       `json:"warnings,omitempty"`
}

func FromPlaceOrdersResult(result *commands.PlaceOrdersResult) *PlaceOrdersResponse {
	resp := &PlaceOrdersResponse{
		Orders:              make([]*PlacedOrderResponse, 0, len(result.Orders)),
		GrandTotalCents:     result.GrandTotalCents,
		SystemDiscountCents: result.SystemDiscountCents,
		Warnings:            result.Warnings,
	}
	for _, o := range result.Orders {
		resp.Orders = append(resp.Orders, &PlacedOrderResponse{
			OrderID:             o.OrderID,
			ShopID:              o.ShopID,
			SubtotalCents:       o.SubtotalCents,
			ShippingFeeCents:    o.ShippingFeeCents,
			ShopDiscountCents:   o.ShopDiscountCents,
			SystemDiscountCents: o.SystemDiscountCents,
			TotalCents:          o.TotalCents,
		})
	}
	return resp
}
