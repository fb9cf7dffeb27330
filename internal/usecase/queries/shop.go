package queries

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"
)

var ErrShopNotFound = errs.New("shop not found")

type ShopQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ShopView, error)
}

type ShopReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShopView, error)
}

type shopQueriesImpl struct {
	readStore ShopReadStore
}

func NewShopQueries(readStore ShopReadStore) ShopQueries {
	return &shopQueriesImpl{
		readStore: readStore,
	}
}

func (q *shopQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ShopView, error) {
	shop, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return shop, nil
}
