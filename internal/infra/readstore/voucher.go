package readstore

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/queries"
)

type VoucherReadStore struct {
	dbtx db.DBTX
}

func NewVoucherReadStore(dbtx db.DBTX) *VoucherReadStore {
	return &VoucherReadStore{dbtx: dbtx}
}

const voucherViewColumns = `
	id, code, scope, discount_type, shop_id,
	percent_off, amount_off_cents, max_discount_cents, min_order_cents,
	starts_at, ends_at, usage_limit, usage_limit_per_user, used_count,
	is_active, created_at`

func (s *VoucherReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VoucherView, error) {
	query := `SELECT` + voucherViewColumns + ` FROM vouchers WHERE id = $1`

	var view queries.VoucherView
	err := s.dbtx.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Code, &view.Scope, &view.DiscountType, &view.ShopID,
		&view.PercentOff, &view.AmountOffCents, &view.MaxDiscountCents, &view.MinOrderCents,
		&view.StartsAt, &view.EndsAt, &view.UsageLimit, &view.UsageLimitPerUser, &view.UsedCount,
		&view.IsActive, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher", err)
	}
	return &view, nil
}

func (s *VoucherReadStore) FindByShopID(ctx context.Context, shopID uuid.UUID) ([]*queries.VoucherView, error) {
	query := `SELECT` + voucherViewColumns + ` FROM vouchers WHERE shop_id = $1 ORDER BY created_at DESC`
	return s.scanVouchers(ctx, query, shopID)
}

func (s *VoucherReadStore) FindSystem(ctx context.Context) ([]*queries.VoucherView, error) {
	query := `SELECT` + voucherViewColumns + ` FROM vouchers WHERE scope = 'system' ORDER BY created_at DESC`
	return s.scanVouchers(ctx, query)
}

func (s *VoucherReadStore) scanVouchers(ctx context.Context, query string, args ...any) ([]*queries.VoucherView, error) {
	rows, err := s.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vouchers", err)
	}
	defer rows.Close()

	var views []*queries.VoucherView
	for rows.Next() {
		var view queries.VoucherView
		err := rows.Scan(
			&view.ID, &view.Code, &view.Scope, &view.DiscountType, &view.ShopID,
			&view.PercentOff, &view.AmountOffCents, &view.MaxDiscountCents, &view.MinOrderCents,
			&view.StartsAt, &view.EndsAt, &view.UsageLimit, &view.UsageLimitPerUser, &view.UsedCount,
			&view.IsActive, &view.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read vouchers", err)
	}
	return views, nil
}
