//go:build unit || e2e

package builder

import (
	reqdto "marketplace-api/internal/handler/dto/request"
	"marketplace-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutBuilder struct {
	VariantIDs        []uuid.UUID
	PaymentMethod     string
	DeliveryAddress   reqdto.AddressRequest
	ShopVoucherCodes  map[string]string
	SystemVoucherCode *string
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		VariantIDs:    []uuid.UUID{uuid.New()},
		PaymentMethod: "cod",
		DeliveryAddress: reqdto.AddressRequest{
			Name:     "Jane Buyer",
			Phone:    "0901234567",
			Street:   "12 Rose St",
			District: "District 1",
			City:     "Metropolis",
		},
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

func (b *CheckoutBuilder) BuildDTO() reqdto.PlaceOrdersRequest {
	return reqdto.PlaceOrdersRequest{
		VariantIDs:        b.VariantIDs,
		PaymentMethod:     b.PaymentMethod,
		DeliveryAddress:   b.DeliveryAddress,
		ShopVoucherCodes:  b.ShopVoucherCodes,
		SystemVoucherCode: b.SystemVoucherCode,
	}
}

// BuildResult returns a single-order placement result matching the default DTO.
func (b *CheckoutBuilder) BuildResult() *commands.PlaceOrdersResult {
	shopID := uuid.New()
	return &commands.PlaceOrdersResult{
		Orders: []commands.PlacedOrder{
			{
				OrderID:          uuid.New(),
				ShopID:           shopID,
				SubtotalCents:    50000,
				ShippingFeeCents: 3000,
				TotalCents:       53000,
			},
		},
		GrandTotalCents: 53000,
	}
}
