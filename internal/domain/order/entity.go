package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoLines           = errors.New("order has no line items")
	ErrInvalidQuantity   = errors.New("line quantity must be positive")
	ErrInvalidUnitPrice  = errors.New("line unit price cannot be negative")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Line is an immutable snapshot of a purchased variant. Prices are copied at
// order time so later catalog edits do not rewrite history.
type Line struct {
	VariantID      uuid.UUID
	ProductID      uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int32
}

func (l Line) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// VoucherApplication records how a voucher affected this order.
type VoucherApplication struct {
	VoucherID     uuid.UUID
	Code          string
	Scope         string
	DiscountType  string
	DiscountCents int64
}

type StatusChange struct {
	From      Status
	To        Status
	ChangedAt time.Time
}

// Order is one shop group of a checkout. totalCents always equals
// subtotal + shipping - shopDiscount - systemDiscount, clamped at zero.
type Order struct {
	id                  uuid.UUID
	userID              uuid.UUID
	shopID              uuid.UUID
	lines               []Line
	subtotalCents       int64
	shippingFeeCents    int64
	shopDiscountCents   int64
	systemDiscountCents int64
	totalCents          int64
	shopVoucher         *VoucherApplication
	systemVoucher       *VoucherApplication
	paymentMethod       string
	paymentStatus       PaymentStatus
	status              Status
	history             []StatusChange
	createdAt           time.Time
	updatedAt           time.Time
}

func NewOrder(
	userID, shopID uuid.UUID,
	lines []Line,
	shippingFeeCents int64,
	shopVoucher *VoucherApplication,
	systemVoucher *VoucherApplication,
	systemDiscountCents int64,
	paymentMethod string,
	now time.Time,
) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	var subtotal int64
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if l.UnitPriceCents < 0 {
			return nil, ErrInvalidUnitPrice
		}
		subtotal += l.SubtotalCents()
	}

	var shopDiscount int64
	if shopVoucher != nil {
		shopDiscount = shopVoucher.DiscountCents
	}

	total := subtotal + shippingFeeCents - shopDiscount - systemDiscountCents
	if total < 0 {
		total = 0
	}

	return &Order{
		id:                  uuid.New(),
		userID:              userID,
		shopID:              shopID,
		lines:               lines,
		subtotalCents:       subtotal,
		shippingFeeCents:    shippingFeeCents,
		shopDiscountCents:   shopDiscount,
		systemDiscountCents: systemDiscountCents,
		totalCents:          total,
		shopVoucher:         shopVoucher,
		systemVoucher:       systemVoucher,
		paymentMethod:       paymentMethod,
		paymentStatus:       PaymentUnpaid,
		status:              StatusPending,
		history: []StatusChange{
			{From: "", To: StatusPending, ChangedAt: now},
		},
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructOrder(
	id, userID, shopID uuid.UUID,
	lines []Line,
	subtotalCents, shippingFeeCents, shopDiscountCents, systemDiscountCents, totalCents int64,
	shopVoucher, systemVoucher *VoucherApplication,
	paymentMethod string,
	paymentStatus PaymentStatus,
	status Status,
	history []StatusChange,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:                  id,
		userID:              userID,
		shopID:              shopID,
		lines:               lines,
		subtotalCents:       subtotalCents,
		shippingFeeCents:    shippingFeeCents,
		shopDiscountCents:   shopDiscountCents,
		systemDiscountCents: systemDiscountCents,
		totalCents:          totalCents,
		shopVoucher:         shopVoucher,
		systemVoucher:       systemVoucher,
		paymentMethod:       paymentMethod,
		paymentStatus:       paymentStatus,
		status:              status,
		history:             history,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// ChangeStatus validates the transition and appends to the status history.
func (o *Order) ChangeStatus(to Status, now time.Time) error {
	if !to.IsValid() || !CanTransition(o.status, to) {
		return ErrInvalidTransition
	}
	o.history = append(o.history, StatusChange{From: o.status, To: to, ChangedAt: now})
	o.status = to
	o.updatedAt = now
	return nil
}

// Cancelable orders are those a buyer may still withdraw: stock has not been
// handed to a carrier yet.
func (o *Order) IsCancelable() bool {
	return o.status == StatusPending
}

func (o *Order) ID() uuid.UUID                      { return o.id }
func (o *Order) UserID() uuid.UUID                  { return o.userID }
func (o *Order) ShopID() uuid.UUID                  { return o.shopID }
func (o *Order) Lines() []Line                      { return o.lines }
func (o *Order) SubtotalCents() int64               { return o.subtotalCents }
func (o *Order) ShippingFeeCents() int64            { return o.shippingFeeCents }
func (o *Order) ShopDiscountCents() int64           { return o.shopDiscountCents }
func (o *Order) SystemDiscountCents() int64         { return o.systemDiscountCents }
func (o *Order) TotalCents() int64                  { return o.totalCents }
func (o *Order) ShopVoucher() *VoucherApplication   { return o.shopVoucher }
func (o *Order) SystemVoucher() *VoucherApplication { return o.systemVoucher }
func (o *Order) PaymentMethod() string              { return o.paymentMethod }
func (o *Order) PaymentStatus() PaymentStatus       { return o.paymentStatus }
func (o *Order) Status() Status                     { return o.status }
func (o *Order) History() []StatusChange            { return o.history }
func (o *Order) CreatedAt() time.Time               { return o.createdAt }
func (o *Order) UpdatedAt() time.Time               { return o.updatedAt }
