package repository

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/domain/voucher"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/shared"
)

type VoucherRepository struct{}

func NewVoucherRepository() shared.VoucherRepository {
	return &VoucherRepository{}
}

func (r *VoucherRepository) Create(ctx context.Context, dbtx db.DBTX, v *voucher.Voucher) error {
	const query = `
		INSERT INTO vouchers (
			id, code, scope, discount_type, shop_id,
			percent_off, amount_off_cents, max_discount_cents, min_order_cents,
			starts_at, ends_at, usage_limit, usage_limit_per_user, used_count,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 0, $14, now(), now())`

	_, err := dbtx.Exec(ctx, query,
		v.ID(), v.Code().String(), v.Scope().String(), v.DiscountType().String(), v.ShopID(),
		v.PercentOff(), v.AmountOffCents(), v.MaxDiscountCents(), v.MinOrderCents(),
		v.StartsAt(), v.EndsAt(), v.UsageLimit(), v.UsageLimitPerUser(),
		v.IsActive(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("voucher code already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create voucher", err)
	}
	return nil
}

func (r *VoucherRepository) Deactivate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	const query = `UPDATE vouchers SET is_active = false, updated_at = now() WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return nil
}

// TryIncrementUsage bumps used_count while the total cap still holds. A
// zero row count means the cap was reached by a concurrent checkout.
func (r *VoucherRepository) TryIncrementUsage(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (bool, error) {
	const query = `
		UPDATE vouchers
		SET used_count = used_count + 1, updated_at = now()
		WHERE id = $1
		  AND is_active
		  AND (usage_limit IS NULL OR used_count < usage_limit)`

	tag, err := dbtx.Exec(ctx, query, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment voucher usage", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *VoucherRepository) RecordUsage(ctx context.Context, dbtx db.DBTX, voucherID, userID, orderID uuid.UUID) error {
	const query = `
		INSERT INTO voucher_usages (id, voucher_id, user_id, order_id, used_at)
		VALUES ($1, $2, $3, $4, now())`

	if _, err := dbtx.Exec(ctx, query, uuid.New(), voucherID, userID, orderID); err != nil {
		return infra.WrapRepoErr("failed to record voucher usage", err)
	}
	return nil
}
