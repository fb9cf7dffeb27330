package queries

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"
)

var ErrProductNotFound = errs.New("product not found")

type ProductFilter struct {
	ShopID  *uuid.UUID
	Keyword string
}

type CatalogQueries interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListProducts(ctx context.Context, filter ProductFilter, after *Cursor, limit int) ([]*ProductListItem, *Cursor, error)
}

type CatalogReadStore interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	FindProducts(ctx context.Context, filter ProductFilter, limit int32) ([]*ProductListItem, error)
	FindProductsAfter(ctx context.Context, filter ProductFilter, afterCreatedAt int64, afterID uuid.UUID, limit int32) ([]*ProductListItem, error)
}

type catalogQueriesImpl struct {
	readStore CatalogReadStore
}

func NewCatalogQueries(readStore CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{
		readStore: readStore,
	}
}

func (q *catalogQueriesImpl) GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	product, err := q.readStore.FindProductByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context, filter ProductFilter, after *Cursor, limit int) ([]*ProductListItem, *Cursor, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = 50
	}

	var (
		items []*ProductListItem
		err   error
	)
	if after != nil && after.After != "" {
		t, id, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		items, err = q.readStore.FindProductsAfter(ctx, filter, t.UnixMicro(), id, int32(limit)+1)
	} else {
		items, err = q.readStore.FindProducts(ctx, filter, int32(limit)+1)
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}

	return items, next, nil
}
