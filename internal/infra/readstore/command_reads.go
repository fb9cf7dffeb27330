package readstore

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/shared"
)

// CommandReads serves the write side's snapshot lookups. It runs on
// whatever DBTX it is given, so inside a transaction the snapshots see the
// transaction's own writes.
type CommandReads struct {
	dbtx db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{dbtx: dbtx}
}

func (s *CommandReads) CartLines(ctx context.Context, userID uuid.UUID) ([]shared.CartLine, error) {
	const query = `
		SELECT variant_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at, variant_id`

	rows, err := s.dbtx.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load cart lines", err)
	}
	defer rows.Close()

	var lines []shared.CartLine
	for rows.Next() {
		var l shared.CartLine
		if err := rows.Scan(&l.VariantID, &l.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cart lines", err)
	}
	return lines, nil
}

func (s *CommandReads) VariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.VariantSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
		SELECT v.id, v.product_id, p.shop_id, p.name, v.name, v.price_cents,
		       COALESCE(i.stock, 0), v.is_active, p.is_active, sh.is_active
		FROM variants v
		JOIN products p ON p.id = v.product_id
		JOIN shops sh ON sh.id = p.shop_id
		LEFT JOIN inventories i ON i.variant_id = v.id
		WHERE v.id = ANY($1)`

	rows, err := s.dbtx.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load variants", err)
	}
	defer rows.Close()

	var snapshots []shared.VariantSnapshot
	for rows.Next() {
		var v shared.VariantSnapshot
		err := rows.Scan(
			&v.ID, &v.ProductID, &v.ShopID, &v.ProductName, &v.VariantName, &v.PriceCents,
			&v.Stock, &v.VariantActive, &v.ProductActive, &v.ShopActive,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan variant", err)
		}
		snapshots = append(snapshots, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read variants", err)
	}
	return snapshots, nil
}

func (s *CommandReads) ShopsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]shared.ShopSnapshot, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]shared.ShopSnapshot{}, nil
	}
	const query = `
		SELECT id, owner_id, name, is_active,
		       pickup_name, pickup_phone, pickup_street, pickup_district, pickup_city
		FROM shops
		WHERE id = ANY($1)`

	rows, err := s.dbtx.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load shops", err)
	}
	defer rows.Close()

	shops := make(map[uuid.UUID]shared.ShopSnapshot, len(ids))
	for rows.Next() {
		var sh shared.ShopSnapshot
		err := rows.Scan(
			&sh.ID, &sh.OwnerID, &sh.Name, &sh.IsActive,
			&sh.Pickup.Name, &sh.Pickup.Phone, &sh.Pickup.Street, &sh.Pickup.District, &sh.Pickup.City,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan shop", err)
		}
		shops[sh.ID] = sh
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read shops", err)
	}
	return shops, nil
}

func (s *CommandReads) ShopByOwner(ctx context.Context, ownerID uuid.UUID) (*shared.ShopSnapshot, error) {
	const query = `
		SELECT id, owner_id, name, is_active,
		       pickup_name, pickup_phone, pickup_street, pickup_district, pickup_city
		FROM shops
		WHERE owner_id = $1`

	var sh shared.ShopSnapshot
	err := s.dbtx.QueryRow(ctx, query, ownerID).Scan(
		&sh.ID, &sh.OwnerID, &sh.Name, &sh.IsActive,
		&sh.Pickup.Name, &sh.Pickup.Phone, &sh.Pickup.Street, &sh.Pickup.District, &sh.Pickup.City,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("shop not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find shop by owner", err)
	}
	return &sh, nil
}

const voucherSnapshotColumns = `
	id, code, scope, discount_type, shop_id,
	percent_off, amount_off_cents, max_discount_cents, min_order_cents,
	starts_at, ends_at, usage_limit, usage_limit_per_user, used_count,
	is_active, created_at, updated_at`

func (s *CommandReads) VoucherByCode(ctx context.Context, code string) (*shared.VoucherSnapshot, error) {
	query := `SELECT` + voucherSnapshotColumns + ` FROM vouchers WHERE code = $1`
	return s.scanVoucher(ctx, query, code)
}

func (s *CommandReads) VoucherByID(ctx context.Context, id uuid.UUID) (*shared.VoucherSnapshot, error) {
	query := `SELECT` + voucherSnapshotColumns + ` FROM vouchers WHERE id = $1`
	return s.scanVoucher(ctx, query, id)
}

func (s *CommandReads) scanVoucher(ctx context.Context, query string, arg any) (*shared.VoucherSnapshot, error) {
	var v shared.VoucherSnapshot
	err := s.dbtx.QueryRow(ctx, query, arg).Scan(
		&v.ID, &v.Code, &v.Scope, &v.DiscountType, &v.ShopID,
		&v.PercentOff, &v.AmountOffCents, &v.MaxDiscountCents, &v.MinOrderCents,
		&v.StartsAt, &v.EndsAt, &v.UsageLimit, &v.UsageLimitPerUser, &v.UsedCount,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher", err)
	}
	return &v, nil
}

func (s *CommandReads) VoucherUserUsage(ctx context.Context, voucherID, userID uuid.UUID) (int32, error) {
	const query = `SELECT COUNT(*) FROM voucher_usages WHERE voucher_id = $1 AND user_id = $2`

	var count int32
	if err := s.dbtx.QueryRow(ctx, query, voucherID, userID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count voucher usage", err)
	}
	return count, nil
}

func (s *CommandReads) OrderByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	const headerQuery = `SELECT id, user_id, shop_id, status FROM orders WHERE id = $1`

	var snapshot shared.OrderSnapshot
	var status string
	err := s.dbtx.QueryRow(ctx, headerQuery, id).Scan(&snapshot.ID, &snapshot.UserID, &snapshot.ShopID, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	snapshot.Status = order.Status(status)

	const linesQuery = `
		SELECT variant_id, product_id, name, unit_price_cents, quantity
		FROM order_items
		WHERE order_id = $1`

	rows, err := s.dbtx.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l order.Line
		if err := rows.Scan(&l.VariantID, &l.ProductID, &l.Name, &l.UnitPriceCents, &l.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		snapshot.Lines = append(snapshot.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order items", err)
	}
	return &snapshot, nil
}
