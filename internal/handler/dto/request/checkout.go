package request

import (
	"strings"

	"github.com/google/uuid"
)

type AddressRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Phone    string `json:"phone" binding:"required,max=32"`
	Street   string `json:"street" binding:"required,max=255"`
	District string `json:"district" binding:"required,max=120"`
	City     string `json:"city" binding:"required,max=120"`
}

type PlaceOrdersRequest struct {
	VariantIDs        []uuid.UUID       `json:"variant_ids" binding:"required,min=1"`
	PaymentMethod     string            `json:"payment_method" binding:"required,oneof=cod bank_transfer"`
	DeliveryAddress   AddressRequest    `json:"delivery_address" binding:"required"`
	ShopVoucherCodes  map[string]string `json:"shop_voucher_codes,omitempty"`
	SystemVoucherCode *string           `json:"system_voucher_code,omitempty"`
}

// Deduplicates while preserving request order.
func (r PlaceOrdersRequest) UniqueVariantIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(r.VariantIDs))
	out := make([]uuid.UUID, 0, len(r.VariantIDs))
	for _, id := range r.VariantIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (r PlaceOrdersRequest) GetSystemVoucherCode() *string {
	if r.SystemVoucherCode == nil {
		return nil
	}
	trimmed := strings.ToUpper(strings.TrimSpace(*r.SystemVoucherCode))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Keys are shop IDs as strings, values voucher codes. Blank codes are dropped.
func (r PlaceOrdersRequest) NormalizedShopVoucherCodes() map[string]string {
	if len(r.ShopVoucherCodes) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.ShopVoucherCodes))
	for shopID, code := range r.ShopVoucherCodes {
		trimmed := strings.ToUpper(strings.TrimSpace(code))
		if trimmed == "" {
			continue
		}
		out[shopID] = trimmed
	}
	return out
}
