package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/queries"
)

type OrderReadStore struct {
	dbtx db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{dbtx: dbtx}
}

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const headerQuery = `
		SELECT o.id, o.user_id, o.shop_id, sh.name, sh.owner_id,
		       o.subtotal_cents, o.shipping_fee_cents, o.shop_discount_cents, o.system_discount_cents, o.total_cents,
		       o.shop_voucher_id, o.shop_voucher_code, o.shop_voucher_type,
		       o.system_voucher_id, o.system_voucher_code, o.system_voucher_type,
		       o.payment_method, o.payment_status, o.status, o.created_at, o.updated_at
		FROM orders o
		JOIN shops sh ON sh.id = o.shop_id
		WHERE o.id = $1`

	var (
		view                               queries.OrderView
		shopVoucherID, systemVoucherID     *uuid.UUID
		shopVoucherCode, shopVoucherType   *string
		systemVoucherCode, systemVoucherTp *string
	)
	err := s.dbtx.QueryRow(ctx, headerQuery, id).Scan(
		&view.ID, &view.UserID, &view.ShopID, &view.ShopName, &view.ShopOwnerID,
		&view.SubtotalCents, &view.ShippingFeeCents, &view.ShopDiscountCents, &view.SystemDiscountCents, &view.TotalCents,
		&shopVoucherID, &shopVoucherCode, &shopVoucherType,
		&systemVoucherID, &systemVoucherCode, &systemVoucherTp,
		&view.PaymentMethod, &view.PaymentStatus, &view.Status, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	if shopVoucherID != nil {
		view.ShopVoucher = &queries.VoucherApplicationView{
			VoucherID:     *shopVoucherID,
			Code:          derefStr(shopVoucherCode),
			Scope:         "shop",
			DiscountType:  derefStr(shopVoucherType),
			DiscountCents: view.ShopDiscountCents,
		}
	}
	if systemVoucherID != nil {
		view.SystemVoucher = &queries.VoucherApplicationView{
			VoucherID:     *systemVoucherID,
			Code:          derefStr(systemVoucherCode),
			Scope:         "system",
			DiscountType:  derefStr(systemVoucherTp),
			DiscountCents: view.SystemDiscountCents,
		}
	}

	if err := s.loadLines(ctx, &view); err != nil {
		return nil, err
	}
	if err := s.loadHistory(ctx, &view); err != nil {
		return nil, err
	}
	if err := s.loadAddresses(ctx, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *OrderReadStore) loadLines(ctx context.Context, view *queries.OrderView) error {
	const query = `
		SELECT variant_id, product_id, name, unit_price_cents, quantity
		FROM order_items
		WHERE order_id = $1`

	rows, err := s.dbtx.Query(ctx, query, view.ID)
	if err != nil {
		return infra.WrapRepoErr("failed to load order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line queries.OrderLineView
		if err := rows.Scan(&line.VariantID, &line.ProductID, &line.Name, &line.UnitPriceCents, &line.Quantity); err != nil {
			return infra.WrapRepoErr("failed to scan order item", err)
		}
		view.Lines = append(view.Lines, &line)
	}
	return rows.Err()
}

func (s *OrderReadStore) loadHistory(ctx context.Context, view *queries.OrderView) error {
	const query = `
		SELECT from_status, to_status, changed_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY changed_at, id`

	rows, err := s.dbtx.Query(ctx, query, view.ID)
	if err != nil {
		return infra.WrapRepoErr("failed to load status history", err)
	}
	defer rows.Close()

	for rows.Next() {
		var change queries.StatusChangeView
		if err := rows.Scan(&change.From, &change.To, &change.ChangedAt); err != nil {
			return infra.WrapRepoErr("failed to scan status change", err)
		}
		view.History = append(view.History, &change)
	}
	return rows.Err()
}

func (s *OrderReadStore) loadAddresses(ctx context.Context, view *queries.OrderView) error {
	const query = `
		SELECT kind, name, phone, street, district, city
		FROM order_address_snapshots
		WHERE order_id = $1
		ORDER BY kind`

	rows, err := s.dbtx.Query(ctx, query, view.ID)
	if err != nil {
		return infra.WrapRepoErr("failed to load address snapshots", err)
	}
	defer rows.Close()

	for rows.Next() {
		var addr queries.AddressView
		if err := rows.Scan(&addr.Kind, &addr.Name, &addr.Phone, &addr.Street, &addr.District, &addr.City); err != nil {
			return infra.WrapRepoErr("failed to scan address snapshot", err)
		}
		view.Addresses = append(view.Addresses, &addr)
	}
	return rows.Err()
}

const orderListSelect = `
	SELECT o.id, o.shop_id, sh.name, o.total_cents, o.status, o.created_at
	FROM orders o
	JOIN shops sh ON sh.id = o.shop_id`

const orderListTail = ` ORDER BY o.created_at DESC, o.id DESC LIMIT `

func (s *OrderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	query := orderListSelect + ` WHERE o.user_id = $1` + orderListTail + `$2`
	return s.scanOrderList(ctx, query, userID, limit)
}

func (s *OrderReadStore) FindByUserIDAfter(ctx context.Context, userID uuid.UUID, afterCreatedAt int64, afterID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	query := orderListSelect + ` WHERE o.user_id = $1 AND (o.created_at, o.id) < ($2, $3)` + orderListTail + `$4`
	return s.scanOrderList(ctx, query, userID, time.UnixMicro(afterCreatedAt), afterID, limit)
}

func (s *OrderReadStore) FindByShopID(ctx context.Context, shopID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	query := orderListSelect + ` WHERE o.shop_id = $1` + orderListTail + `$2`
	return s.scanOrderList(ctx, query, shopID, limit)
}

func (s *OrderReadStore) FindByShopIDAfter(ctx context.Context, shopID uuid.UUID, afterCreatedAt int64, afterID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	query := orderListSelect + ` WHERE o.shop_id = $1 AND (o.created_at, o.id) < ($2, $3)` + orderListTail + `$4`
	return s.scanOrderList(ctx, query, shopID, time.UnixMicro(afterCreatedAt), afterID, limit)
}

func (s *OrderReadStore) scanOrderList(ctx context.Context, query string, args ...any) ([]*queries.OrderListItem, error) {
	rows, err := s.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var items []*queries.OrderListItem
	for rows.Next() {
		var item queries.OrderListItem
		if err := rows.Scan(&item.ID, &item.ShopID, &item.ShopName, &item.TotalCents, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read orders", err)
	}
	return items, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
