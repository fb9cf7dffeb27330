package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/usecase/shared"
)

type OrderRepository struct{}

func NewOrderRepository() shared.OrderRepository {
	return &OrderRepository{}
}

// Create persists the order header, its lines and the initial status
// history row. Voucher applications are denormalized onto the header so an
// order remains self-describing after voucher rows change.
func (r *OrderRepository) Create(ctx context.Context, dbtx db.DBTX, o *order.Order) error {
	const headerQuery = `
		INSERT INTO orders (
			id, user_id, shop_id,
			subtotal_cents, shipping_fee_cents, shop_discount_cents, system_discount_cents, total_cents,
			shop_voucher_id, shop_voucher_code, shop_voucher_type,
			system_voucher_id, system_voucher_code, system_voucher_type,
			payment_method, payment_status, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)`

	var (
		shopVoucherID, systemVoucherID     *uuid.UUID
		shopVoucherCode, shopVoucherType   *string
		systemVoucherCode, systemVoucherTp *string
	)
	if v := o.ShopVoucher(); v != nil {
		shopVoucherID = &v.VoucherID
		shopVoucherCode = &v.Code
		shopVoucherType = &v.DiscountType
	}
	if v := o.SystemVoucher(); v != nil {
		systemVoucherID = &v.VoucherID
		systemVoucherCode = &v.Code
		systemVoucherTp = &v.DiscountType
	}

	_, err := dbtx.Exec(ctx, headerQuery,
		o.ID(), o.UserID(), o.ShopID(),
		o.SubtotalCents(), o.ShippingFeeCents(), o.ShopDiscountCents(), o.SystemDiscountCents(), o.TotalCents(),
		shopVoucherID, shopVoucherCode, shopVoucherType,
		systemVoucherID, systemVoucherCode, systemVoucherTp,
		o.PaymentMethod(), string(o.PaymentStatus()), o.Status().String(), o.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	const lineQuery = `
		INSERT INTO order_items (id, order_id, variant_id, product_id, name, unit_price_cents, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, line := range o.Lines() {
		_, err := dbtx.Exec(ctx, lineQuery,
			uuid.New(), o.ID(), line.VariantID, line.ProductID, line.Name, line.UnitPriceCents, line.Quantity,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}

	for _, change := range o.History() {
		if err := r.insertHistory(ctx, dbtx, o.ID(), change.From, change.To, change.ChangedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) SaveAddressSnapshot(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID, kind order.AddressKind, addr shared.Address) error {
	const query = `
		INSERT INTO order_address_snapshots (id, order_id, kind, name, phone, street, district, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := dbtx.Exec(ctx, query,
		uuid.New(), orderID, string(kind), addr.Name, addr.Phone, addr.Street, addr.District, addr.City,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save address snapshot", err)
	}
	return nil
}

// UpdateStatus moves the order only when it is still in the expected state;
// a zero row count means someone else changed it first.
func (r *OrderRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID, from, to order.Status, at time.Time) error {
	const query = `
		UPDATE orders SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2`

	tag, err := dbtx.Exec(ctx, query, orderID, from.String(), to.String(), at)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order status changed concurrently", nil, infra.KindConflict)
	}

	return r.insertHistory(ctx, dbtx, orderID, from, to, at)
}

func (r *OrderRepository) insertHistory(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID, from, to order.Status, at time.Time) error {
	const query = `
		INSERT INTO order_status_history (id, order_id, from_status, to_status, changed_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := dbtx.Exec(ctx, query, uuid.New(), orderID, from.String(), to.String(), at); err != nil {
		return infra.WrapRepoErr("failed to insert status history", err)
	}
	return nil
}
