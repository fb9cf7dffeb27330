package queries

import (
	"context"

	"github.com/google/uuid"
)

type CartQueries interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

type CartReadStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*CartItemView, error)
}

type cartQueriesImpl struct {
	readStore CartReadStore
}

func NewCartQueries(readStore CartReadStore) CartQueries {
	return &cartQueriesImpl{
		readStore: readStore,
	}
}

func (q *cartQueriesImpl) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	items, err := q.readStore.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var subtotal int64
	for _, item := range items {
		if item.Available {
			subtotal += item.PriceCents * int64(item.Quantity)
		}
	}

	return &CartView{
		UserID:        userID,
		Items:         items,
		SubtotalCents: subtotal,
	}, nil
}
