package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"marketplace-api/internal/domain/checkout"
	"marketplace-api/internal/domain/order"
	reqdto "marketplace-api/internal/handler/dto/request"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/clock"
	"marketplace-api/internal/pkg/errs"
	"marketplace-api/internal/usecase/shared"
)

var (
	ErrCartEmpty               = errs.New("cart is empty")
	ErrItemsNotInCart          = errs.New("requested items not in cart")
	ErrNoValidItems            = errs.New("no valid items in cart")
	ErrOutOfStock              = errs.New("out of stock")
	ErrVoucherCapExceeded      = errs.New("voucher usage cap exceeded")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type PlacedOrder struct {
	OrderID             uuid.UUID
	ShopID              uuid.UUID
	SubtotalCents       int64
	ShippingFeeCents    int64
	ShopDiscountCents   int64
	SystemDiscountCents int64
	TotalCents          int64
}

type PlaceOrdersResult struct {
	Orders              []PlacedOrder
	GrandTotalCents     int64
	SystemDiscountCents int64
	// Warnings report lines dropped and vouchers skipped during validation.
	Warnings []checkout.Issue
}

type CheckoutCommands interface {
	PlaceOrders(ctx context.Context, userID uuid.UUID, req reqdto.PlaceOrdersRequest) (*PlaceOrdersResult, error)
}

type checkoutCommandsImpl struct {
	uow      shared.UnitOfWork
	shipping checkout.ShippingCalculator
	clock    clock.Clock
}

func NewCheckoutCommands(uow shared.UnitOfWork, shipping checkout.ShippingCalculator, clock clock.Clock) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:      uow,
		shipping: shipping,
		clock:    clock,
	}
}

// PlaceOrders turns the requested cart lines into one order per shop. Invalid lines
// and unusable vouchers are dropped with warnings; only an empty outcome,
// a stock race at write time, or a voucher cap race aborts the checkout.
func (c *checkoutCommandsImpl) PlaceOrders(ctx context.Context, userID uuid.UUID, req reqdto.PlaceOrdersRequest) (*PlaceOrdersResult, error) {
	now := c.clock.Now()
	reads := c.uow.CommandReads()

	cartLines, err := reads.CartLines(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if len(cartLines) == 0 {
		return nil, ErrCartEmpty
	}

	selected, warnings := selectCartLines(cartLines, req.UniqueVariantIDs())
	if len(selected) == 0 {
		return &PlaceOrdersResult{Warnings: warnings}, ErrItemsNotInCart
	}

	items, itemWarnings, err := c.resolveItems(ctx, reads, selected)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, itemWarnings...)
	if len(items) == 0 {
		return &PlaceOrdersResult{Warnings: warnings}, ErrNoValidItems
	}

	groups := checkout.GroupByShop(items)
	for _, g := range groups {
		g.ShippingFeeCents = c.shipping.FeeCents(g)
	}

	shopWarnings, err := c.applyShopVouchers(ctx, reads, userID, groups, req.NormalizedShopVoucherCodes(), now)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, shopWarnings...)

	systemApp, systemWarnings, err := c.applySystemVoucher(ctx, reads, userID, groups, req.GetSystemVoucherCode(), now)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, systemWarnings...)

	shops, err := reads.ShopsByIDs(ctx, shopIDs(groups))
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	delivery := shared.Address{
		Name:     req.DeliveryAddress.Name,
		Phone:    req.DeliveryAddress.Phone,
		Street:   req.DeliveryAddress.Street,
		District: req.DeliveryAddress.District,
		City:     req.DeliveryAddress.City,
	}

	result := &PlaceOrdersResult{Warnings: warnings}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result.Orders = result.Orders[:0]
		result.GrandTotalCents = 0
		result.SystemDiscountCents = 0

		var purchased []uuid.UUID
		var firstOrderID uuid.UUID

		for _, g := range groups {
			for _, it := range g.Items {
				ok, decErr := tx.Inventory().TryDecrement(ctx, tx.DB(), it.VariantID, it.Quantity)
				if decErr != nil {
					return errs.Mark(decErr, ErrDatabaseOperationFailed)
				}
				if !ok {
					return ErrOutOfStock
				}
				purchased = append(purchased, it.VariantID)
			}

			var systemVoucher *order.VoucherApplication
			if systemApp != nil && g.SystemShareCents > 0 {
				app := *systemApp
				app.DiscountCents = g.SystemShareCents
				systemVoucher = &app
			}

			newOrder, buildErr := order.NewOrder(
				userID,
				g.ShopID,
				orderLines(g.Items),
				g.ShippingFeeCents,
				g.ShopVoucher,
				systemVoucher,
				g.SystemShareCents,
				req.PaymentMethod,
				now,
			)
			if buildErr != nil {
				return errs.Wrap(buildErr, "failed to build order")
			}

			if createErr := tx.Orders().Create(ctx, tx.DB(), newOrder); createErr != nil {
				return errs.Mark(createErr, ErrDatabaseOperationFailed)
			}
			if firstOrderID == uuid.Nil {
				firstOrderID = newOrder.ID()
			}

			if addrErr := tx.Orders().SaveAddressSnapshot(ctx, tx.DB(), newOrder.ID(), order.AddressDelivery, delivery); addrErr != nil {
				return errs.Mark(addrErr, ErrDatabaseOperationFailed)
			}
			if shop, ok := shops[g.ShopID]; ok {
				if addrErr := tx.Orders().SaveAddressSnapshot(ctx, tx.DB(), newOrder.ID(), order.AddressPickup, shop.Pickup); addrErr != nil {
					return errs.Mark(addrErr, ErrDatabaseOperationFailed)
				}
			}

			if g.ShopVoucher != nil {
				if useErr := c.consumeVoucher(ctx, tx, g.ShopVoucher.VoucherID, userID, newOrder.ID()); useErr != nil {
					return useErr
				}
			}

			result.Orders = append(result.Orders, PlacedOrder{
				OrderID:             newOrder.ID(),
				ShopID:              g.ShopID,
				SubtotalCents:       newOrder.SubtotalCents(),
				ShippingFeeCents:    newOrder.ShippingFeeCents(),
				ShopDiscountCents:   newOrder.ShopDiscountCents(),
				SystemDiscountCents: newOrder.SystemDiscountCents(),
				TotalCents:          newOrder.TotalCents(),
			})
			result.GrandTotalCents += newOrder.TotalCents()
			result.SystemDiscountCents += newOrder.SystemDiscountCents()
		}

		// The system voucher is consumed once per checkout, not per order.
		if systemApp != nil {
			if useErr := c.consumeVoucher(ctx, tx, systemApp.VoucherID, userID, firstOrderID); useErr != nil {
				return useErr
			}
		}

		if removeErr := tx.Carts().RemoveLines(ctx, tx.DB(), userID, purchased); removeErr != nil {
			return errs.Mark(removeErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("orders placed",
		"user_id", userID,
		"orders", len(result.Orders),
		"grand_total_cents", result.GrandTotalCents,
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// selectCartLines keeps the cart lines the user asked to purchase.
// Requested ids with no matching cart line become warnings.
func selectCartLines(cartLines []shared.CartLine, requested []uuid.UUID) ([]shared.CartLine, []checkout.Issue) {
	byVariant := make(map[uuid.UUID]shared.CartLine, len(cartLines))
	for _, line := range cartLines {
		byVariant[line.VariantID] = line
	}

	selected := make([]shared.CartLine, 0, len(requested))
	var warnings []checkout.Issue
	for _, id := range requested {
		line, ok := byVariant[id]
		if !ok {
			warnings = append(warnings, checkout.ItemIssue(id, checkout.ReasonNotInCart))
			continue
		}
		selected = append(selected, line)
	}
	return selected, warnings
}

// resolveItems joins cart lines against the catalog; unusable lines become
// warnings instead of errors.
func (c *checkoutCommandsImpl) resolveItems(ctx context.Context, reads shared.CommandReads, cartLines []shared.CartLine) ([]checkout.Item, []checkout.Issue, error) {
	ids := make([]uuid.UUID, 0, len(cartLines))
	for _, l := range cartLines {
		ids = append(ids, l.VariantID)
	}

	snapshots, err := reads.VariantsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	byID := make(map[uuid.UUID]shared.VariantSnapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
	}

	var items []checkout.Item
	var warnings []checkout.Issue
	for _, l := range cartLines {
		s, ok := byID[l.VariantID]
		switch {
		case !ok:
			warnings = append(warnings, checkout.ItemIssue(l.VariantID, checkout.ReasonVariantNotFound))
		case !s.VariantActive:
			warnings = append(warnings, checkout.ItemIssue(l.VariantID, checkout.ReasonVariantInactive))
		case !s.ProductActive:
			warnings = append(warnings, checkout.ItemIssue(l.VariantID, checkout.ReasonProductInactive))
		case !s.ShopActive:
			warnings = append(warnings, checkout.ItemIssue(l.VariantID, checkout.ReasonShopInactive))
		case s.Stock < l.Quantity:
			warnings = append(warnings, checkout.ItemIssue(l.VariantID, checkout.ReasonInsufficientStock))
		default:
			items = append(items, checkout.Item{
				VariantID:      s.ID,
				ProductID:      s.ProductID,
				ShopID:         s.ShopID,
				Name:           s.DisplayName(),
				UnitPriceCents: s.PriceCents,
				Quantity:       l.Quantity,
			})
		}
	}
	return items, warnings, nil
}

func (c *checkoutCommandsImpl) applyShopVouchers(
	ctx context.Context,
	reads shared.CommandReads,
	userID uuid.UUID,
	groups []*checkout.ShopGroup,
	codes map[string]string,
	now time.Time,
) ([]checkout.Issue, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	byShop := make(map[uuid.UUID]*checkout.ShopGroup, len(groups))
	for _, g := range groups {
		byShop[g.ShopID] = g
	}

	var warnings []checkout.Issue
	for rawShopID, code := range codes {
		shopID, err := uuid.Parse(rawShopID)
		if err != nil {
			warnings = append(warnings, checkout.VoucherIssue(code, nil, checkout.ReasonVoucherNotFound))
			continue
		}

		g, ok := byShop[shopID]
		if !ok {
			warnings = append(warnings, checkout.VoucherIssue(code, &shopID, checkout.ReasonVoucherNotFound))
			continue
		}

		snapshot, userUsed, err := c.lookupVoucher(ctx, reads, userID, code)
		if err != nil {
			return nil, err
		}
		if snapshot == nil {
			warnings = append(warnings, checkout.VoucherIssue(code, &shopID, checkout.ReasonVoucherNotFound))
			continue
		}

		if issue := checkout.ApplyShopVoucher(g, snapshot.ToDomain(), userUsed, now); issue != nil {
			warnings = append(warnings, *issue)
		}
	}
	return warnings, nil
}

func (c *checkoutCommandsImpl) applySystemVoucher(
	ctx context.Context,
	reads shared.CommandReads,
	userID uuid.UUID,
	groups []*checkout.ShopGroup,
	code *string,
	now time.Time,
) (*order.VoucherApplication, []checkout.Issue, error) {
	if code == nil {
		return nil, nil, nil
	}

	snapshot, userUsed, err := c.lookupVoucher(ctx, reads, userID, *code)
	if err != nil {
		return nil, nil, err
	}
	if snapshot == nil {
		return nil, []checkout.Issue{checkout.VoucherIssue(*code, nil, checkout.ReasonVoucherNotFound)}, nil
	}

	app, issue := checkout.ApplySystemVoucher(groups, snapshot.ToDomain(), userUsed, now)
	if issue != nil {
		return nil, []checkout.Issue{*issue}, nil
	}

	checkout.AllocateSystemDiscount(groups, app.DiscountCents)
	return app, nil, nil
}

func (c *checkoutCommandsImpl) lookupVoucher(ctx context.Context, reads shared.CommandReads, userID uuid.UUID, code string) (*shared.VoucherSnapshot, int32, error) {
	snapshot, err := reads.VoucherByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, 0, nil
		}
		return nil, 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	userUsed, err := reads.VoucherUserUsage(ctx, snapshot.ID, userID)
	if err != nil {
		return nil, 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return snapshot, userUsed, nil
}

func (c *checkoutCommandsImpl) consumeVoucher(ctx context.Context, tx shared.Tx, voucherID, userID, orderID uuid.UUID) error {
	ok, err := tx.Vouchers().TryIncrementUsage(ctx, tx.DB(), voucherID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !ok {
		return ErrVoucherCapExceeded
	}
	if err := tx.Vouchers().RecordUsage(ctx, tx.DB(), voucherID, userID, orderID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func shopIDs(groups []*checkout.ShopGroup) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ShopID)
	}
	return ids
}

func orderLines(items []checkout.Item) []order.Line {
	lines := make([]order.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, order.Line{
			VariantID:      it.VariantID,
			ProductID:      it.ProductID,
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
		})
	}
	return lines
}
