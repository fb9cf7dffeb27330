package response

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"marketplace-api/internal/usecase/queries"
)

type CartItemResponse struct {
	VariantID   uuid.UUID `json:"variantId"`
	ProductID   uuid.UUID `json:"productId"`
	ShopID      uuid.UUID `json:"shopId"`
	ProductName string    `json:"productName"`
	VariantName string    `json:"variantName"`
	PriceCents  int64     `json:"priceCents"`
	Quantity    int32     `json:"quantity"`
	Stock       int32     `json:"stock"`
	Available   bool      `json:"available"`
}

type CartResponse struct {
	Items         []*CartItemResponse `json:"items"`
	SubtotalCents int64               `json:"subtotalCents"`
}

func FromCartView(view *queries.CartView) *CartResponse {
	resp := &CartResponse{
		Items:         make([]*CartItemResponse, 0, len(view.Items)),
		SubtotalCents: view.SubtotalCents,
	}
	for _, item := range view.Items {
		var r CartItemResponse
		_ = copier.Copy(&r, item)
		resp.Items = append(resp.Items, &r)
	}
	return resp
}
