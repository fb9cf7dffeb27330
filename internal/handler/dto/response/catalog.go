package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"marketplace-api/internal/usecase/queries"
)

type VariantResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	Stock      int32     `json:"stock"`
	IsActive   bool      `json:"isActive"`
}

type ProductResponse struct {
	ID          uuid.UUID          `json:"id"`
	ShopID      uuid.UUID          `json:"shopId"`
	ShopName    string             `json:"shopName"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	IsActive    bool               `json:"isActive"`
	Variants    []*VariantResponse `json:"variants"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type ProductListResponse struct {
	ID            uuid.UUID `json:"id"`
	ShopID        uuid.UUID `json:"shopId"`
	ShopName      string    `json:"shopName"`
	Name          string    `json:"name"`
	MinPriceCents int64     `json:"minPriceCents"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ProductPageResponse struct {
	Items      []*ProductListResponse `json:"items"`
	NextCursor *string                `json:"nextCursor,omitempty"`
}

type ShopResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromProductView(view *queries.ProductView) *ProductResponse {
	var resp ProductResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromProductListItems(items []*queries.ProductListItem, next *queries.Cursor) *ProductPageResponse {
	page := &ProductPageResponse{Items: make([]*ProductListResponse, 0, len(items))}
	for _, item := range items {
		var resp ProductListResponse
		_ = copier.Copy(&resp, item)
		page.Items = append(page.Items, &resp)
	}
	if next != nil {
		page.NextCursor = &next.After
	}
	return page
}

func FromShopView(view *queries.ShopView) *ShopResponse {
	var resp ShopResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
