// Package checkout holds the pure pricing logic of order placement:
// grouping cart lines by shop, applying shop and system vouchers, and
// allocating the system discount across shop groups. It performs no IO so
// every rule is unit-testable.
package checkout

import (
	"errors"

	"marketplace-api/internal/domain/voucher"

	"github.com/google/uuid"
)

// Machine-readable reasons surfaced to the caller as warnings. Per-line and
// per-voucher failures never abort a checkout; they drop the line or skip
// the voucher.
const (
	ReasonNotInCart         = "NOT_IN_CART"
	ReasonVariantNotFound   = "VARIANT_NOT_FOUND"
	ReasonVariantInactive   = "VARIANT_INACTIVE"
	ReasonProductInactive   = "PRODUCT_INACTIVE"
	ReasonShopInactive      = "SHOP_INACTIVE"
	ReasonInsufficientStock = "INSUFFICIENT_STOCK"

	ReasonVoucherNotFound         = "VOUCHER_NOT_FOUND"
	ReasonVoucherInactive         = "VOUCHER_INACTIVE"
	ReasonVoucherNotStarted       = "VOUCHER_NOT_STARTED"
	ReasonVoucherExpired          = "VOUCHER_EXPIRED"
	ReasonVoucherMinOrderNotMet   = "VOUCHER_MIN_ORDER_NOT_MET"
	ReasonVoucherUsageCap         = "VOUCHER_USAGE_CAP"
	ReasonVoucherUserCap          = "VOUCHER_USER_CAP"
	ReasonVoucherScopeUnsupported = "VOUCHER_SCOPE_UNSUPPORTED"
)

// Item is a cart line resolved against the catalog: variant, parent product
// and owning shop, with the current unit price.
type Item struct {
	VariantID      uuid.UUID
	ProductID      uuid.UUID
	ShopID         uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int32
}

func (i Item) SubtotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// Issue is a non-fatal validation failure reported back to the caller.
// Exactly one of VariantID or VoucherCode is set.
type Issue struct {
	VariantID   *uuid.UUID `json:"variant_id,omitempty"`
	VoucherCode *string    `json:"voucher_code,omitempty"`
	ShopID      *uuid.UUID `json:"shop_id,omitempty"`
	Reason      string     `json:"reason"`
}

func ItemIssue(variantID uuid.UUID, reason string) Issue {
	id := variantID
	return Issue{VariantID: &id, Reason: reason}
}

func VoucherIssue(code string, shopID *uuid.UUID, reason string) Issue {
	return Issue{VoucherCode: &code, ShopID: shopID, Reason: reason}
}

// VoucherReason maps a voucher domain validation error to its wire reason.
func VoucherReason(err error) string {
	switch {
	case errors.Is(err, voucher.ErrInactive):
		return ReasonVoucherInactive
	case errors.Is(err, voucher.ErrNotYetStarted):
		return ReasonVoucherNotStarted
	case errors.Is(err, voucher.ErrExpired):
		return ReasonVoucherExpired
	case errors.Is(err, voucher.ErrMinOrderNotMet):
		return ReasonVoucherMinOrderNotMet
	case errors.Is(err, voucher.ErrUsageCapReached):
		return ReasonVoucherUsageCap
	case errors.Is(err, voucher.ErrUserCapReached):
		return ReasonVoucherUserCap
	case errors.Is(err, voucher.ErrScopeUnsupported):
		return ReasonVoucherScopeUnsupported
	default:
		return ReasonVoucherNotFound
	}
}
