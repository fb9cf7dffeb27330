package readstore

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/queries"
)

type CatalogReadStore struct {
	dbtx db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{dbtx: dbtx}
}

func (s *CatalogReadStore) FindProductByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	const productQuery = `
		SELECT p.id, p.shop_id, sh.name, p.name, p.description, p.is_active, p.created_at, p.updated_at
		FROM products p
		JOIN shops sh ON sh.id = p.shop_id
		WHERE p.id = $1`

	var view queries.ProductView
	err := s.dbtx.QueryRow(ctx, productQuery, id).Scan(
		&view.ID, &view.ShopID, &view.ShopName, &view.Name, &view.Description,
		&view.IsActive, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}

	const variantQuery = `
		SELECT v.id, v.name, v.price_cents, COALESCE(i.stock, 0), v.is_active
		FROM variants v
		LEFT JOIN inventories i ON i.variant_id = v.id
		WHERE v.product_id = $1
		ORDER BY v.created_at, v.id`

	rows, err := s.dbtx.Query(ctx, variantQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load variants", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v queries.VariantView
		if err := rows.Scan(&v.ID, &v.Name, &v.PriceCents, &v.Stock, &v.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan variant", err)
		}
		view.Variants = append(view.Variants, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read variants", err)
	}
	return &view, nil
}

const productListSelect = `
	SELECT p.id, p.shop_id, sh.name, p.name,
	       COALESCE(MIN(v.price_cents) FILTER (WHERE v.is_active), 0), p.created_at
	FROM products p
	JOIN shops sh ON sh.id = p.shop_id
	LEFT JOIN variants v ON v.product_id = p.id
	WHERE p.is_active AND sh.is_active`

const productListTail = `
	GROUP BY p.id, p.shop_id, sh.name, p.name, p.created_at
	ORDER BY p.created_at DESC, p.id DESC`

func (s *CatalogReadStore) FindProducts(ctx context.Context, filter queries.ProductFilter, limit int32) ([]*queries.ProductListItem, error) {
	query, args := buildProductListQuery(filter, nil, uuid.Nil, limit)
	return s.scanProductList(ctx, query, args...)
}

func (s *CatalogReadStore) FindProductsAfter(ctx context.Context, filter queries.ProductFilter, afterCreatedAt int64, afterID uuid.UUID, limit int32) ([]*queries.ProductListItem, error) {
	after := time.UnixMicro(afterCreatedAt)
	query, args := buildProductListQuery(filter, &after, afterID, limit)
	return s.scanProductList(ctx, query, args...)
}

func buildProductListQuery(filter queries.ProductFilter, after *time.Time, afterID uuid.UUID, limit int32) (string, []any) {
	query := productListSelect
	var args []any

	next := func(arg any) string {
		args = append(args, arg)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.ShopID != nil {
		query += ` AND p.shop_id = ` + next(*filter.ShopID)
	}
	if filter.Keyword != "" {
		query += ` AND p.name ILIKE '%' || ` + next(filter.Keyword) + ` || '%'`
	}
	if after != nil {
		query += ` AND (p.created_at, p.id) < (` + next(*after) + `, ` + next(afterID) + `)`
	}
	query += productListTail + ` LIMIT ` + next(limit)

	return query, args
}

func (s *CatalogReadStore) scanProductList(ctx context.Context, query string, args ...any) ([]*queries.ProductListItem, error) {
	rows, err := s.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var items []*queries.ProductListItem
	for rows.Next() {
		var item queries.ProductListItem
		err := rows.Scan(&item.ID, &item.ShopID, &item.ShopName, &item.Name, &item.MinPriceCents, &item.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read products", err)
	}
	return items, nil
}
