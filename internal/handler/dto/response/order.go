package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"marketplace-api/internal/usecase/queries"
)

type OrderLineResponse struct {
	VariantID      uuid.UUID `json:"variantId"`
	ProductID      uuid.UUID `json:"productId"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int32     `json:"quantity"`
}

type VoucherApplicationResponse struct {
	VoucherID     uuid.UUID `json:"voucherId"`
	Code          string    `json:"code"`
	Scope         string    `json:"scope"`
	DiscountType  string    `json:"discountType"`
	DiscountCents int64     `json:"discountCents"`
}

type StatusChangeResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changedAt"`
}

type AddressResponse struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	District string `json:"district"`
	City     string `json:"city"`
}

type OrderResponse struct {
	ID                  uuid.UUID                   `json:"id"`
	UserID              uuid.UUID                   `json:"userId"`
	ShopID              uuid.UUID                   `json:"shopId"`
	ShopName            string                      `json:"shopName"`
	Lines               []*OrderLineResponse        `json:"lines"`
	SubtotalCents       int64                       `json:"subtotalCents"`
	ShippingFeeCents    int64                       `json:"shippingFeeCents"`
	ShopDiscountCents   int64                       `json:"shopDiscountCents"`
	SystemDiscountCents int64                       `json:"systemDiscountCents"`
	TotalCents          int64                       `json:"totalCents"`
	ShopVoucher         *VoucherApplicationResponse `json:"shopVoucher,omitempty"`
	SystemVoucher       *VoucherApplicationResponse `json:"systemVoucher,omitempty"`
	PaymentMethod       string                      `json:"paymentMethod"`
	PaymentStatus       string                      `json:"paymentStatus"`
	Status              string                      `json:"status"`
	History             []*StatusChangeResponse     `json:"history"`
	Addresses           []*AddressResponse          `json:"addresses"`
	CreatedAt           time.Time                   `json:"createdAt"`
	UpdatedAt           time.Time                   `json:"updatedAt"`
}

type OrderListResponse struct {
	ID         uuid.UUID `json:"id"`
	ShopID     uuid.UUID `json:"shopId"`
	ShopName   string    `json:"shopName"`
	TotalCents int64     `json:"totalCents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderPageResponse struct {
	Items      []*OrderListResponse `json:"items"`
	NextCursor *string              `json:"nextCursor,omitempty"`
}

func FromOrderView(view *queries.OrderView) *OrderResponse {
	var resp OrderResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromOrderListItems(items []*queries.OrderListItem, next *queries.Cursor) *OrderPageResponse {
	page := &OrderPageResponse{Items: make([]*OrderListResponse, 0, len(items))}
	for _, item := range items {
		var resp OrderListResponse
		_ = copier.Copy(&resp, item)
		page.Items = append(page.Items, &resp)
	}
	if next != nil {
		page.NextCursor = &next.After
	}
	return page
}
