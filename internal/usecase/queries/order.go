package queries

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrOrderAccess   = errs.New("order access denied")
)

type OrderQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*OrderListItem, *Cursor, error)
	ListByShop(ctx context.Context, shopID uuid.UUID, after *Cursor, limit int) ([]*OrderListItem, *Cursor, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*OrderListItem, error)
	FindByUserIDAfter(ctx context.Context, userID uuid.UUID, afterCreatedAt int64, afterID uuid.UUID, limit int32) ([]*OrderListItem, error)
	FindByShopID(ctx context.Context, shopID uuid.UUID, limit int32) ([]*OrderListItem, error)
	FindByShopIDAfter(ctx context.Context, shopID uuid.UUID, afterCreatedAt int64, afterID uuid.UUID, limit int32) ([]*OrderListItem, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{
		readStore: readStore,
	}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*OrderView, error) {
	order, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	switch actorRole {
	case user.RoleAdmin:
	case user.RoleSeller:
		if order.ShopOwnerID != actorID && order.UserID != actorID {
			return nil, ErrOrderAccess
		}
	default:
		if order.UserID != actorID {
			return nil, ErrOrderAccess
		}
	}

	return order, nil
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*OrderListItem, *Cursor, error) {
	return q.list(ctx, after, limit,
		func(ctx context.Context, limit int32) ([]*OrderListItem, error) {
			return q.readStore.FindByUserID(ctx, userID, limit)
		},
		func(ctx context.Context, afterCreatedAt int64, afterID uuid.UUID, limit int32) ([]*OrderListItem, error) {
			return q.readStore.FindByUserIDAfter(ctx, userID, afterCreatedAt, afterID, limit)
		})
}

func (q *orderQueriesImpl) ListByShop(ctx context.Context, shopID uuid.UUID, after *Cursor, limit int) ([]*OrderListItem, *Cursor, error) {
	return q.list(ctx, after, limit,
		func(ctx context.Context, limit int32) ([]*OrderListItem, error) {
			return q.readStore.FindByShopID(ctx, shopID, limit)
		},
		func(ctx context.Context, afterCreatedAt int64, afterID uuid.UUID, limit int32) ([]*OrderListItem, error) {
			return q.readStore.FindByShopIDAfter(ctx, shopID, afterCreatedAt, afterID, limit)
		})
}

func (q *orderQueriesImpl) list(
	ctx context.Context,
	after *Cursor,
	limit int,
	first func(context.Context, int32) ([]*OrderListItem, error),
	paged func(context.Context, int64, uuid.UUID, int32) ([]*OrderListItem, error),
) ([]*OrderListItem, *Cursor, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = 50
	}

	var (
		items []*OrderListItem
		err   error
	)
	if after != nil && after.After != "" {
		t, id, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		items, err = paged(ctx, t.UnixMicro(), id, int32(limit)+1)
	} else {
		items, err = first(ctx, int32(limit)+1)
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
