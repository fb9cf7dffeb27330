package commands

import (
	"context"

	"github.com/google/uuid"

	reqdto "marketplace-api/internal/handler/dto/request"
	"marketplace-api/internal/pkg/errs"
	"marketplace-api/internal/usecase/shared"
)

var (
	ErrVariantNotFound    = errs.New("variant not found")
	ErrVariantUnavailable = errs.New("variant unavailable")
	ErrQuantityTooLarge   = errs.New("quantity too large")
)

const maxCartLineQuantity = 99

type CartCommands interface {
	AddItem(ctx context.Context, userID uuid.UUID, req reqdto.AddCartItemRequest) error
	UpdateItem(ctx context.Context, userID, variantID uuid.UUID, req reqdto.UpdateCartItemRequest) error
	RemoveItem(ctx context.Context, userID, variantID uuid.UUID) error
}

type cartCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewCartCommands(uow shared.UnitOfWork) CartCommands {
	return &cartCommandsImpl{uow: uow}
}

func (c *cartCommandsImpl) AddItem(ctx context.Context, userID uuid.UUID, req reqdto.AddCartItemRequest) error {
	return c.setQuantity(ctx, userID, req.VariantID, req.Quantity)
}

func (c *cartCommandsImpl) UpdateItem(ctx context.Context, userID, variantID uuid.UUID, req reqdto.UpdateCartItemRequest) error {
	return c.setQuantity(ctx, userID, variantID, req.Quantity)
}

func (c *cartCommandsImpl) RemoveItem(ctx context.Context, userID, variantID uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Carts().Remove(ctx, tx.DB(), userID, variantID)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// setQuantity validates the variant is still purchasable before writing the
// line. Stock is not checked here; checkout rechecks it anyway.
func (c *cartCommandsImpl) setQuantity(ctx context.Context, userID, variantID uuid.UUID, quantity int32) error {
	if quantity > maxCartLineQuantity {
		return ErrQuantityTooLarge
	}

	snapshots, err := c.uow.CommandReads().VariantsByIDs(ctx, []uuid.UUID{variantID})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if len(snapshots) == 0 {
		return ErrVariantNotFound
	}
	s := snapshots[0]
	if !s.VariantActive || !s.ProductActive || !s.ShopActive {
		return ErrVariantUnavailable
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Carts().Upsert(ctx, tx.DB(), userID, variantID, quantity)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
