package checkout

import (
	"time"

	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/domain/voucher"

	"github.com/google/uuid"
)

// ShopGroup is the subset of a checkout belonging to one shop. Each group
// becomes one order.
type ShopGroup struct {
	ShopID           uuid.UUID
	Items            []Item
	ShippingFeeCents int64
	ShopVoucher      *order.VoucherApplication
	SystemShareCents int64 // allocated portion of the system discount
}

func (g *ShopGroup) SubtotalCents() int64 {
	var sum int64
	for _, it := range g.Items {
		sum += it.SubtotalCents()
	}
	return sum
}

func (g *ShopGroup) ShopDiscountCents() int64 {
	if g.ShopVoucher == nil {
		return 0
	}
	return g.ShopVoucher.DiscountCents
}

// PayableCents is the group's charge before the system discount is applied:
// subtotal - shop discount + shipping. Used both as the allocation weight
// and as the per-group clamp.
func (g *ShopGroup) PayableCents() int64 {
	p := g.SubtotalCents() - g.ShopDiscountCents() + g.ShippingFeeCents
	if p < 0 {
		p = 0
	}
	return p
}

func (g *ShopGroup) TotalCents() int64 {
	t := g.PayableCents() - g.SystemShareCents
	if t < 0 {
		t = 0
	}
	return t
}

// GroupByShop partitions items into shop groups, preserving the order shops
// first appear in.
func GroupByShop(items []Item) []*ShopGroup {
	var groups []*ShopGroup
	index := make(map[uuid.UUID]*ShopGroup)

	for _, it := range items {
		g, ok := index[it.ShopID]
		if !ok {
			g = &ShopGroup{ShopID: it.ShopID}
			index[it.ShopID] = g
			groups = append(groups, g)
		}
		g.Items = append(g.Items, it)
	}
	return groups
}

// ApplyShopVoucher validates a shop-scope voucher against the group subtotal
// and records the application on success. Failures return an Issue and leave
// the group undiscounted.
func ApplyShopVoucher(g *ShopGroup, v *voucher.Voucher, userUsed int32, now time.Time) *Issue {
	if v.Scope() != voucher.ScopeShop || v.ShopID() == nil || *v.ShopID() != g.ShopID {
		issue := VoucherIssue(v.Code().String(), &g.ShopID, ReasonVoucherNotFound)
		return &issue
	}

	subtotal := g.SubtotalCents()
	if err := v.ValidateForOrder(now, subtotal, userUsed); err != nil {
		issue := VoucherIssue(v.Code().String(), &g.ShopID, VoucherReason(err))
		return &issue
	}

	g.ShopVoucher = &order.VoucherApplication{
		VoucherID:     v.ID(),
		Code:          v.Code().String(),
		Scope:         v.Scope().String(),
		DiscountType:  v.DiscountType().String(),
		DiscountCents: v.DiscountCents(subtotal, g.ShippingFeeCents),
	}
	return nil
}

// ApplySystemVoucher validates a system-scope voucher against the
// pre-system-discount grand total and returns the total discount to
// allocate. The base passed to the voucher is the sum of all groups'
// payable amounts; ship vouchers discount the summed shipping fees.
func ApplySystemVoucher(groups []*ShopGroup, v *voucher.Voucher, userUsed int32, now time.Time) (*order.VoucherApplication, *Issue) {
	if v.Scope() != voucher.ScopeSystem {
		issue := VoucherIssue(v.Code().String(), nil, ReasonVoucherScopeUnsupported)
		return nil, &issue
	}

	var grandTotal, totalShipping int64
	for _, g := range groups {
		grandTotal += g.PayableCents()
		totalShipping += g.ShippingFeeCents
	}

	if err := v.ValidateForOrder(now, grandTotal, userUsed); err != nil {
		issue := VoucherIssue(v.Code().String(), nil, VoucherReason(err))
		return nil, &issue
	}

	return &order.VoucherApplication{
		VoucherID:     v.ID(),
		Code:          v.Code().String(),
		Scope:         v.Scope().String(),
		DiscountType:  v.DiscountType().String(),
		DiscountCents: v.DiscountCents(grandTotal, totalShipping),
	}, nil
}
