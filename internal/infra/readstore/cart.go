package readstore

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/usecase/queries"
)

type CartReadStore struct {
	dbtx db.DBTX
}

func NewCartReadStore(dbtx db.DBTX) *CartReadStore {
	return &CartReadStore{dbtx: dbtx}
}

func (s *CartReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.CartItemView, error) {
	const query = `
		SELECT c.variant_id, v.product_id, p.shop_id, p.name, v.name, v.price_cents,
		       c.quantity, COALESCE(i.stock, 0),
		       (v.is_active AND p.is_active AND sh.is_active AND COALESCE(i.stock, 0) >= c.quantity)
		FROM cart_items c
		JOIN variants v ON v.id = c.variant_id
		JOIN products p ON p.id = v.product_id
		JOIN shops sh ON sh.id = p.shop_id
		LEFT JOIN inventories i ON i.variant_id = v.id
		WHERE c.user_id = $1
		ORDER BY c.created_at, c.variant_id`

	rows, err := s.dbtx.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load cart", err)
	}
	defer rows.Close()

	var items []*queries.CartItemView
	for rows.Next() {
		var item queries.CartItemView
		err := rows.Scan(
			&item.VariantID, &item.ProductID, &item.ShopID, &item.ProductName, &item.VariantName,
			&item.PriceCents, &item.Quantity, &item.Stock, &item.Available,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cart", err)
	}
	return items, nil
}
