package commands

import (
	"context"

	"github.com/google/uuid"

	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/domain/voucher"
	reqdto "marketplace-api/internal/handler/dto/request"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"
	"marketplace-api/internal/usecase/shared"
)

var (
	ErrVoucherNotFound     = errs.New("voucher not found")
	ErrVoucherAccessDenied = errs.New("voucher access denied")
	ErrDuplicateVoucher    = errs.New("duplicate voucher code")
	ErrVoucherValidation   = errs.New("voucher validation error")
	ErrShopNotFound        = errs.New("shop not found")
)

type VoucherCommands interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole user.Role, req reqdto.CreateVoucherRequest) (uuid.UUID, error)
	Deactivate(ctx context.Context, actorID uuid.UUID, actorRole user.Role, voucherID uuid.UUID) error
}

type voucherCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewVoucherCommands(uow shared.UnitOfWork) VoucherCommands {
	return &voucherCommandsImpl{uow: uow}
}

// Create issues a voucher. Sellers may only create shop-scope vouchers for
// their own shop; system-scope vouchers are admin-only.
func (v *voucherCommandsImpl) Create(ctx context.Context, actorID uuid.UUID, actorRole user.Role, req reqdto.CreateVoucherRequest) (uuid.UUID, error) {
	code, err := voucher.NewCode(req.Code)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrVoucherValidation)
	}

	scope := voucher.Scope(req.Scope)
	shopID := req.ShopID

	switch actorRole {
	case user.RoleAdmin:
	case user.RoleSeller:
		if scope != voucher.ScopeShop {
			return uuid.Nil, ErrVoucherAccessDenied
		}
		shop, shopErr := v.uow.CommandReads().ShopByOwner(ctx, actorID)
		if shopErr != nil {
			if infra.IsKind(shopErr, infra.KindNotFound) {
				return uuid.Nil, ErrShopNotFound
			}
			return uuid.Nil, errs.Mark(shopErr, ErrDatabaseOperationFailed)
		}
		id := shop.ID
		shopID = &id
	default:
		return uuid.Nil, ErrVoucherAccessDenied
	}

	entity, err := voucher.New(
		code,
		scope,
		voucher.DiscountType(req.DiscountType),
		shopID,
		req.PercentOff,
		req.AmountOffCents,
		req.MaxDiscountCents,
		req.MinOrderCents,
		req.StartsAt,
		req.EndsAt,
		req.UsageLimit,
		req.UsageLimitPerUser,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrVoucherValidation)
	}

	err = v.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Vouchers().Create(ctx, tx.DB(), entity)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrDuplicateVoucher
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return entity.ID(), nil
}

func (v *voucherCommandsImpl) Deactivate(ctx context.Context, actorID uuid.UUID, actorRole user.Role, voucherID uuid.UUID) error {
	snapshot, err := v.uow.CommandReads().VoucherByID(ctx, voucherID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrVoucherNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if actorRole != user.RoleAdmin {
		if snapshot.Scope != voucher.ScopeShop || snapshot.ShopID == nil {
			return ErrVoucherAccessDenied
		}
		shop, shopErr := v.uow.CommandReads().ShopByOwner(ctx, actorID)
		if shopErr != nil {
			if infra.IsKind(shopErr, infra.KindNotFound) {
				return ErrVoucherAccessDenied
			}
			return errs.Mark(shopErr, ErrDatabaseOperationFailed)
		}
		if *snapshot.ShopID != shop.ID {
			return ErrVoucherAccessDenied
		}
	}

	err = v.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Vouchers().Deactivate(ctx, tx.DB(), voucherID)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
