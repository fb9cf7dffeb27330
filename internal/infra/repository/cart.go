package repository

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/shared"
)

type CartRepository struct{}

func NewCartRepository() shared.CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) Upsert(ctx context.Context, dbtx db.DBTX, userID, variantID uuid.UUID, quantity int32) error {
	const query = `
		INSERT INTO cart_items (user_id, variant_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (user_id, variant_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`

	if _, err := dbtx.Exec(ctx, query, userID, variantID, quantity); err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("variant not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to upsert cart item", err)
	}
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, dbtx db.DBTX, userID, variantID uuid.UUID) error {
	const query = `DELETE FROM cart_items WHERE user_id = $1 AND variant_id = $2`

	if _, err := dbtx.Exec(ctx, query, userID, variantID); err != nil {
		return infra.WrapRepoErr("failed to remove cart item", err)
	}
	return nil
}

func (r *CartRepository) RemoveLines(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, variantIDs []uuid.UUID) error {
	if len(variantIDs) == 0 {
		return nil
	}
	const query = `DELETE FROM cart_items WHERE user_id = $1 AND variant_id = ANY($2)`

	if _, err := dbtx.Exec(ctx, query, userID, variantIDs); err != nil {
		return infra.WrapRepoErr("failed to remove cart lines", err)
	}
	return nil
}
