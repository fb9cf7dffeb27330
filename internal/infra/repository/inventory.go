package repository

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/usecase/shared"
)

type InventoryRepository struct{}

func NewInventoryRepository() shared.InventoryRepository {
	return &InventoryRepository{}
}

// TryDecrement takes stock only when enough units remain at update time.
// The WHERE clause makes the check-and-decrement a single atomic statement,
// so concurrent checkouts cannot oversell.
func (r *InventoryRepository) TryDecrement(ctx context.Context, dbtx db.DBTX, variantID uuid.UUID, qty int32) (bool, error) {
	const query = `
		UPDATE inventories
		SET stock = stock - $2, updated_at = now()
		WHERE variant_id = $1 AND stock >= $2`

	tag, err := dbtx.Exec(ctx, query, variantID, qty)
	if err != nil {
		return false, infra.WrapRepoErr("failed to decrement stock", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *InventoryRepository) Restock(ctx context.Context, dbtx db.DBTX, variantID uuid.UUID, qty int32) error {
	const query = `
		UPDATE inventories
		SET stock = stock + $2, updated_at = now()
		WHERE variant_id = $1`

	tag, err := dbtx.Exec(ctx, query, variantID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to restock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("inventory row not found", nil, infra.KindNotFound)
	}
	return nil
}
