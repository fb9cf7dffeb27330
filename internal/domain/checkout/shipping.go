package checkout

// ShippingCalculator prices delivery per shop group. The production wiring
// uses a flat rate; the interface leaves room for weight or distance based
// strategies.
type ShippingCalculator interface {
	FeeCents(g *ShopGroup) int64
}

type FlatRateShipping struct {
	RateCents int64
}

func NewFlatRateShipping(rateCents int64) *FlatRateShipping {
	return &FlatRateShipping{RateCents: rateCents}
}

func (s *FlatRateShipping) FeeCents(_ *ShopGroup) int64 {
	return s.RateCents
}
