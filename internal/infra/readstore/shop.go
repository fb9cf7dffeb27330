package readstore

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/queries"
)

type ShopReadStore struct {
	dbtx db.DBTX
}

func NewShopReadStore(dbtx db.DBTX) *ShopReadStore {
	return &ShopReadStore{dbtx: dbtx}
}

func (s *ShopReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ShopView, error) {
	const query = `SELECT id, name, description, is_active, created_at FROM shops WHERE id = $1`

	var view queries.ShopView
	err := s.dbtx.QueryRow(ctx, query, id).Scan(&view.ID, &view.Name, &view.Description, &view.IsActive, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("shop not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find shop", err)
	}
	return &view, nil
}
