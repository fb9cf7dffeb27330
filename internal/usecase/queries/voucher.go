package queries

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"
)

var ErrVoucherNotFound = errs.New("voucher not found")

type VoucherQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*VoucherView, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]*VoucherView, error)
	ListSystem(ctx context.Context) ([]*VoucherView, error)
}

type VoucherReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VoucherView, error)
	FindByShopID(ctx context.Context, shopID uuid.UUID) ([]*VoucherView, error)
	FindSystem(ctx context.Context) ([]*VoucherView, error)
}

type voucherQueriesImpl struct {
	readStore VoucherReadStore
}

func NewVoucherQueries(readStore VoucherReadStore) VoucherQueries {
	return &voucherQueriesImpl{
		readStore: readStore,
	}
}

func (q *voucherQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VoucherView, error) {
	v, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *voucherQueriesImpl) ListByShop(ctx context.Context, shopID uuid.UUID) ([]*VoucherView, error) {
	return q.readStore.FindByShopID(ctx, shopID)
}

func (q *voucherQueriesImpl) ListSystem(ctx context.Context) ([]*VoucherView, error) {
	return q.readStore.FindSystem(ctx)
}
