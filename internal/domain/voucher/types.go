package voucher

type Scope string

const (
	ScopeSystem Scope = "system"
	ScopeShop   Scope = "shop"
)

func (s Scope) String() string {
	return string(s)
}

func (s Scope) IsValid() bool {
	switch s {
	case ScopeSystem, ScopeShop:
		return true
	default:
		return false
	}
}

type DiscountType string

const (
	TypePercent DiscountType = "percent"
	TypeFixed   DiscountType = "fixed"
	TypeShip    DiscountType = "ship"
)

func (t DiscountType) String() string {
	return string(t)
}

func (t DiscountType) IsValid() bool {
	switch t {
	case TypePercent, TypeFixed, TypeShip:
		return true
	default:
		return false
	}
}

// Which discount types each scope accepts. Shop vouchers discount the shop
// subtotal; free-ship is a storefront promotion. Fixed amounts are only
// meaningful against a single shop's subtotal.
var allowedTypes = map[Scope][]DiscountType{
	ScopeShop:   {TypePercent, TypeFixed},
	ScopeSystem: {TypePercent, TypeShip},
}

func (s Scope) Supports(t DiscountType) bool {
	for _, allowed := range allowedTypes[s] {
		if allowed == t {
			return true
		}
	}
	return false
}
