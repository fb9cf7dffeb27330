package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"marketplace-api/internal/domain/order"
	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/clock"
	"marketplace-api/internal/pkg/errs"
	"marketplace-api/internal/usecase/shared"
)

var (
	ErrOrderNotFound      = errs.New("order not found")
	ErrOrderAccessDenied  = errs.New("order access denied")
	ErrOrderNotCancelable = errs.New("order not cancelable")
	ErrInvalidTransition  = errs.New("invalid status transition")
)

type OrderCommands interface {
	Cancel(ctx context.Context, userID, orderID uuid.UUID) error
	UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole user.Role, orderID uuid.UUID, newStatus string) error
}

type orderCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOrderCommands(uow shared.UnitOfWork, clock clock.Clock) OrderCommands {
	return &orderCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

// Cancel is the buyer-side cancellation: only the owner, only while the
// order is still pending. Stock taken at checkout is returned.
func (o *orderCommandsImpl) Cancel(ctx context.Context, userID, orderID uuid.UUID) error {
	now := o.clock.Now()
	return o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().OrderByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if snapshot.UserID != userID {
			return ErrOrderAccessDenied
		}
		if snapshot.Status != order.StatusPending {
			return ErrOrderNotCancelable
		}

		return o.cancel(ctx, tx, snapshot, now)
	})
}

// UpdateStatus drives the seller/admin side of the order lifecycle. A
// seller may only touch orders of their own shop; transitions follow the
// status machine. Moving to canceled restocks.
func (o *orderCommandsImpl) UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole user.Role, orderID uuid.UUID, newStatus string) error {
	target, err := order.NewStatus(newStatus)
	if err != nil {
		return ErrInvalidTransition
	}
	now := o.clock.Now()

	return o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().OrderByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if actorRole != user.RoleAdmin {
			shop, shopErr := tx.Reads().ShopByOwner(ctx, actorID)
			if shopErr != nil {
				if infra.IsKind(shopErr, infra.KindNotFound) {
					return ErrOrderAccessDenied
				}
				return errs.Mark(shopErr, ErrDatabaseOperationFailed)
			}
			if shop.ID != snapshot.ShopID {
				return ErrOrderAccessDenied
			}
		}

		if !order.CanTransition(snapshot.Status, target) {
			return ErrInvalidTransition
		}

		if target == order.StatusCanceled {
			return o.cancel(ctx, tx, snapshot, now)
		}

		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), snapshot.ID, snapshot.Status, target, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (o *orderCommandsImpl) cancel(ctx context.Context, tx shared.Tx, snapshot *shared.OrderSnapshot, now time.Time) error {
	for _, line := range snapshot.Lines {
		if err := tx.Inventory().Restock(ctx, tx.DB(), line.VariantID, line.Quantity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	if err := tx.Orders().UpdateStatus(ctx, tx.DB(), snapshot.ID, snapshot.Status, order.StatusCanceled, now); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
