//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-api/internal/domain/checkout"
	reqdto "marketplace-api/internal/handler/dto/request"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/clock"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/shared"
	sharedmock "marketplace-api/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutCommandsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	uow       *sharedmock.MockUnitOfWork
	reads     *sharedmock.MockCommandReads
	tx        *sharedmock.MockTx
	orders    *sharedmock.MockOrderRepository
	inventory *sharedmock.MockInventoryRepository
	vouchers  *sharedmock.MockVoucherRepository
	carts     *sharedmock.MockCartRepository

	cmd commands.CheckoutCommands
	now time.Time

	userID   uuid.UUID
	shopA    uuid.UUID
	shopB    uuid.UUID
	variantA uuid.UUID
	variantB uuid.UUID
}

func TestCheckoutCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutCommandsTestSuite))
}

func (s *CheckoutCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.orders = sharedmock.NewMockOrderRepository(s.ctrl)
	s.inventory = sharedmock.NewMockInventoryRepository(s.ctrl)
	s.vouchers = sharedmock.NewMockVoucherRepository(s.ctrl)
	s.carts = sharedmock.NewMockCartRepository(s.ctrl)

	s.uow.EXPECT().CommandReads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()
	s.tx.EXPECT().Orders().Return(s.orders).AnyTimes()
	s.tx.EXPECT().Inventory().Return(s.inventory).AnyTimes()
	s.tx.EXPECT().Vouchers().Return(s.vouchers).AnyTimes()
	s.tx.EXPECT().Carts().Return(s.carts).AnyTimes()

	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.cmd = commands.NewCheckoutCommands(s.uow, checkout.NewFlatRateShipping(3000), clock.NewMockClock(s.now))

	s.userID = uuid.New()
	s.shopA = uuid.New()
	s.shopB = uuid.New()
	s.variantA = uuid.New()
	s.variantB = uuid.New()
}

func (s *CheckoutCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CheckoutCommandsTestSuite) expectWithin() {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		},
	)
}

func (s *CheckoutCommandsTestSuite) placeOrdersRequest(variantIDs ...uuid.UUID) reqdto.PlaceOrdersRequest {
	return reqdto.PlaceOrdersRequest{
		VariantIDs:    variantIDs,
		PaymentMethod: "cod",
		DeliveryAddress: reqdto.AddressRequest{
			Name:     "Alice Nguyen",
			Phone:    "+84901234567",
			Street:   "12 Ly Thuong Kiet",
			District: "Hoan Kiem",
			City:     "Hanoi",
		},
	}
}

func (s *CheckoutCommandsTestSuite) variantSnapshots() []shared.VariantSnapshot {
	return []shared.VariantSnapshot{
		{
			ID: s.variantA, ProductID: uuid.New(), ShopID: s.shopA,
			ProductName: "Ceramic Mug", VariantName: "Blue",
			PriceCents: 10000, Stock: 10,
			VariantActive: true, ProductActive: true, ShopActive: true,
		},
		{
			ID: s.variantB, ProductID: uuid.New(), ShopID: s.shopB,
			ProductName: "Linen Shirt", VariantName: "M",
			PriceCents: 30000, Stock: 5,
			VariantActive: true, ProductActive: true, ShopActive: true,
		},
	}
}

func (s *CheckoutCommandsTestSuite) shopSnapshots() map[uuid.UUID]shared.ShopSnapshot {
	return map[uuid.UUID]shared.ShopSnapshot{
		s.shopA: {ID: s.shopA, Name: "Mug Shop", IsActive: true, Pickup: shared.Address{Name: "Mug Shop", City: "Hanoi"}},
		s.shopB: {ID: s.shopB, Name: "Shirt Shop", IsActive: true, Pickup: shared.Address{Name: "Shirt Shop", City: "Danang"}},
	}
}

func (s *CheckoutCommandsTestSuite) TestPlaceOrders_EmptyCart() {
	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return([]shared.CartLine{}, nil)

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, s.placeOrdersRequest(s.variantA))

	s.Require().ErrorIs(err, commands.ErrCartEmpty)
	s.Nil(result)
}

func (s *CheckoutCommandsTestSuite) TestPlaceOrders_NoValidItems() {
	lines := []shared.CartLine{{VariantID: s.variantA, Quantity: 1}}
	snapshot := s.variantSnapshots()[0]
	snapshot.VariantActive = false

	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return(lines, nil)
	s.reads.EXPECT().VariantsByIDs(gomock.Any(), gomock.Any()).Return([]shared.VariantSnapshot{snapshot}, nil)

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, s.placeOrdersRequest(s.variantA))

	s.Require().ErrorIs(err, commands.ErrNoValidItems)
	s.Require().NotNil(result)
	s.Require().Len(result.Warnings, 1)
	s.Equal(checkout.ReasonVariantInactive, result.Warnings[0].Reason)
}

func (s *CheckoutCommandsTestSuite) TestPlaceOrders_SubsetLeavesOtherLinesInCart() {
	lines := []shared.CartLine{
		{VariantID: s.variantA, Quantity: 2},
		{VariantID: s.variantB, Quantity: 1},
	}

	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return(lines, nil)
	s.reads.EXPECT().VariantsByIDs(gomock.Any(), []uuid.UUID{s.variantA}).Return(s.variantSnapshots()[:1], nil)
	s.reads.EXPECT().ShopsByIDs(gomock.Any(), gomock.Any()).Return(s.shopSnapshots(), nil)

	s.expectWithin()
	s.inventory.EXPECT().TryDecrement(gomock.Any(), gomock.Any(), s.variantA, int32(2)).Return(true, nil)
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().SaveAddressSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	// Only the purchased line leaves the cart.
	s.carts.EXPECT().RemoveLines(gomock.Any(), gomock.Any(), s.userID, []uuid.UUID{s.variantA}).Return(nil)

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, s.placeOrdersRequest(s.variantA))

	s.Require().NoError(err)
	s.Require().Len(result.Orders, 1)
	s.Equal(s.shopA, result.Orders[0].ShopID)
	s.Equal(int64(23000), result.GrandTotalCents)
	s.Empty(result.Warnings)
}

func (s *CheckoutCommandsTestSuite) TestPlaceOrders_RequestedItemMissingFromCart() {
	ghostVariant := uuid.New()
	lines := []shared.CartLine{{VariantID: s.variantA, Quantity: 1}}

	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return(lines, nil)
	s.reads.EXPECT().VariantsByIDs(gomock.Any(), []uuid.UUID{s.variantA}).Return(s.variantSnapshots()[:1], nil)
	s.reads.EXPECT().ShopsByIDs(gomock.Any(), gomock.Any()).Return(s.shopSnapshots(), nil)

	s.expectWithin()
	s.inventory.EXPECT().TryDecrement(gomock.Any(), gomock.Any(), s.variantA, int32(1)).Return(true, nil)
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().SaveAddressSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.carts.EXPECT().RemoveLines(gomock.Any(), gomock.Any(), s.userID, []uuid.UUID{s.variantA}).Return(nil)

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, s.placeOrdersRequest(s.variantA, ghostVariant))

	s.Require().NoError(err)
	s.Require().Len(result.Orders, 1)
	s.Require().Len(result.Warnings, 1)
	s.Equal(checkout.ReasonNotInCart, result.Warnings[0].Reason)
	s.Equal(ghostVariant, *result.Warnings[0].VariantID)
}

func (s *CheckoutCommandsTestSuite) TestPlaceOrders_NoRequestedItemsInCart() {
	ghostVariant := uuid.New()
	lines := []shared.CartLine{{VariantID: s.variantA, Quantity: 1}}

	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return(lines, nil)

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, s.placeOrdersRequest(ghostVariant))

	s.Require().ErrorIs(err, commands.ErrItemsNotInCart)
	s.Require().NotNil(result)
	s.Require().Len(result.Warnings, 1)
	s.Equal(checkout.ReasonNotInCart, result.Warnings[0].Reason)
}

func (s *CheckoutCommandsTestSuite) TestPlaceOrders_MultiShopWithSystemVoucher() {
	ghostVariant := uuid.New()
	lines := []shared.CartLine{
		{VariantID: s.variantA, Quantity: 2},
		{VariantID: s.variantB, Quantity: 1},
		{VariantID: ghostVariant, Quantity: 1},
	}
	systemVoucherID := uuid.New()
	voucherSnapshot := &shared.VoucherSnapshot{
		ID:           systemVoucherID,
		Code:         "SYS10",
		Scope:        "system",
		DiscountType: "percent",
		PercentOff:   10,
		StartsAt:     s.now.Add(-time.Hour),
		EndsAt:       s.now.Add(24 * time.Hour),
		IsActive:     true,
	}

	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return(lines, nil)
	s.reads.EXPECT().VariantsByIDs(gomock.Any(), gomock.Any()).Return(s.variantSnapshots(), nil)
	s.reads.EXPECT().VoucherByCode(gomock.Any(), "SYS10").Return(voucherSnapshot, nil)
	s.reads.EXPECT().VoucherUserUsage(gomock.Any(), systemVoucherID, s.userID).Return(int32(0), nil)
	s.reads.EXPECT().ShopsByIDs(gomock.Any(), gomock.Any()).Return(s.shopSnapshots(), nil)

	s.expectWithin()
	s.inventory.EXPECT().TryDecrement(gomock.Any(), gomock.Any(), s.variantA, int32(2)).Return(true, nil)
	s.inventory.EXPECT().TryDecrement(gomock.Any(), gomock.Any(), s.variantB, int32(1)).Return(true, nil)
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	// Delivery and pickup snapshots for each of the two orders.
	s.orders.EXPECT().SaveAddressSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)
	s.vouchers.EXPECT().TryIncrementUsage(gomock.Any(), gomock.Any(), systemVoucherID).Return(true, nil)
	s.vouchers.EXPECT().RecordUsage(gomock.Any(), gomock.Any(), systemVoucherID, s.userID, gomock.Any()).Return(nil)
	s.carts.EXPECT().RemoveLines(gomock.Any(), gomock.Any(), s.userID, []uuid.UUID{s.variantA, s.variantB}).Return(nil)

	code := "SYS10"
	req := s.placeOrdersRequest(s.variantA, s.variantB, ghostVariant)
	req.SystemVoucherCode = &code

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, req)

	s.Require().NoError(err)
	s.Require().Len(result.Orders, 2)

	// Shop A: 2x10000 + 3000 shipping = 23000 payable; shop B: 30000 + 3000 = 33000.
	// 10% off the 56000 payable sum is 5600, split 2300/3300 by largest remainder.
	first := result.Orders[0]
	s.Equal(s.shopA, first.ShopID)
	s.Equal(int64(20000), first.SubtotalCents)
	s.Equal(int64(3000), first.ShippingFeeCents)
	s.Equal(int64(2300), first.SystemDiscountCents)
	s.Equal(int64(20700), first.TotalCents)

	second := result.Orders[1]
	s.Equal(s.shopB, second.ShopID)
	s.Equal(int64(30000), second.SubtotalCents)
	s.Equal(int64(3300), second.SystemDiscountCents)
	s.Equal(int64(29700), second.TotalCents)

	s.Equal(int64(50400), result.GrandTotalCents)
	s.Equal(int64(5600), result.SystemDiscountCents)

	s.Require().Len(result.Warnings, 1)
	s.Equal(checkout.ReasonVariantNotFound, result.Warnings[0].Reason)
}

func (s *CheckoutCommandsTestSuite) TestPlaceOrders_ShopVoucherConsumedPerOrder() {
	lines := []shared.CartLine{{VariantID: s.variantA, Quantity: 2}}
	shopVoucherID := uuid.New()
	voucherSnapshot := &shared.VoucherSnapshot{
		ID:             shopVoucherID,
		Code:           "MUG5",
		Scope:          "shop",
		DiscountType:   "fixed",
		ShopID:         &s.shopA,
		AmountOffCents: 5000,
		StartsAt:       s.now.Add(-time.Hour),
		EndsAt:         s.now.Add(24 * time.Hour),
		IsActive:       true,
	}

	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return(lines, nil)
	s.reads.EXPECT().VariantsByIDs(gomock.Any(), gomock.Any()).Return(s.variantSnapshots()[:1], nil)
	s.reads.EXPECT().VoucherByCode(gomock.Any(), "MUG5").Return(voucherSnapshot, nil)
	s.reads.EXPECT().VoucherUserUsage(gomock.Any(), shopVoucherID, s.userID).Return(int32(0), nil)
	s.reads.EXPECT().ShopsByIDs(gomock.Any(), gomock.Any()).Return(s.shopSnapshots(), nil)

	s.expectWithin()
	s.inventory.EXPECT().TryDecrement(gomock.Any(), gomock.Any(), s.variantA, int32(2)).Return(true, nil)
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().SaveAddressSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.vouchers.EXPECT().TryIncrementUsage(gomock.Any(), gomock.Any(), shopVoucherID).Return(true, nil)
	s.vouchers.EXPECT().RecordUsage(gomock.Any(), gomock.Any(), shopVoucherID, s.userID, gomock.Any()).Return(nil)
	s.carts.EXPECT().RemoveLines(gomock.Any(), gomock.Any(), s.userID, []uuid.UUID{s.variantA}).Return(nil)

	req := s.placeOrdersRequest(s.variantA)
	req.ShopVoucherCodes = map[string]string{s.shopA.String(): "mug5"}

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, req)

	s.Require().NoError(err)
	s.Require().Len(result.Orders, 1)
	s.Equal(int64(5000), result.Orders[0].ShopDiscountCents)
	s.Equal(int64(18000), result.Orders[0].TotalCents)
	s.Empty(result.Warnings)
}

func (s *CheckoutCommandsTestSuite) TestPlaceOrders_UnknownVoucherBecomesWarning() {
	lines := []shared.CartLine{{VariantID: s.variantA, Quantity: 1}}

	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return(lines, nil)
	s.reads.EXPECT().VariantsByIDs(gomock.Any(), gomock.Any()).Return(s.variantSnapshots()[:1], nil)
	s.reads.EXPECT().VoucherByCode(gomock.Any(), "NOPE").
		Return(nil, infra.WrapRepoErr("voucher not found", errors.New("no rows in result set"), infra.KindNotFound))
	s.reads.EXPECT().ShopsByIDs(gomock.Any(), gomock.Any()).Return(s.shopSnapshots(), nil)

	s.expectWithin()
	s.inventory.EXPECT().TryDecrement(gomock.Any(), gomock.Any(), s.variantA, int32(1)).Return(true, nil)
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().SaveAddressSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.carts.EXPECT().RemoveLines(gomock.Any(), gomock.Any(), s.userID, []uuid.UUID{s.variantA}).Return(nil)

	code := "NOPE"
	req := s.placeOrdersRequest(s.variantA)
	req.SystemVoucherCode = &code

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, req)

	s.Require().NoError(err)
	s.Require().Len(result.Orders, 1)
	s.Equal(int64(0), result.Orders[0].SystemDiscountCents)
	s.Require().Len(result.Warnings, 1)
	s.Equal(checkout.ReasonVoucherNotFound, result.Warnings[0].Reason)
}

func (s *CheckoutCommandsTestSuite) TestPlaceOrders_OutOfStockRace() {
	lines := []shared.CartLine{{VariantID: s.variantA, Quantity: 2}}

	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return(lines, nil)
	s.reads.EXPECT().VariantsByIDs(gomock.Any(), gomock.Any()).Return(s.variantSnapshots()[:1], nil)
	s.reads.EXPECT().ShopsByIDs(gomock.Any(), gomock.Any()).Return(s.shopSnapshots(), nil)

	s.expectWithin()
	s.inventory.EXPECT().TryDecrement(gomock.Any(), gomock.Any(), s.variantA, int32(2)).Return(false, nil)

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, s.placeOrdersRequest(s.variantA))

	s.Require().ErrorIs(err, commands.ErrOutOfStock)
	s.Nil(result)
}

func (s *CheckoutCommandsTestSuite) TestPlaceOrders_VoucherCapRace() {
	lines := []shared.CartLine{{VariantID: s.variantA, Quantity: 1}}
	systemVoucherID := uuid.New()
	voucherSnapshot := &shared.VoucherSnapshot{
		ID:           systemVoucherID,
		Code:         "SYS10",
		Scope:        "system",
		DiscountType: "percent",
		PercentOff:   10,
		StartsAt:     s.now.Add(-time.Hour),
		EndsAt:       s.now.Add(24 * time.Hour),
		IsActive:     true,
	}

	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return(lines, nil)
	s.reads.EXPECT().VariantsByIDs(gomock.Any(), gomock.Any()).Return(s.variantSnapshots()[:1], nil)
	s.reads.EXPECT().VoucherByCode(gomock.Any(), "SYS10").Return(voucherSnapshot, nil)
	s.reads.EXPECT().VoucherUserUsage(gomock.Any(), systemVoucherID, s.userID).Return(int32(0), nil)
	s.reads.EXPECT().ShopsByIDs(gomock.Any(), gomock.Any()).Return(s.shopSnapshots(), nil)

	s.expectWithin()
	s.inventory.EXPECT().TryDecrement(gomock.Any(), gomock.Any(), s.variantA, int32(1)).Return(true, nil)
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().SaveAddressSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.vouchers.EXPECT().TryIncrementUsage(gomock.Any(), gomock.Any(), systemVoucherID).Return(false, nil)

	code := "SYS10"
	req := s.placeOrdersRequest(s.variantA)
	req.SystemVoucherCode = &code

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, req)

	s.Require().ErrorIs(err, commands.ErrVoucherCapExceeded)
	s.Nil(result)
}

// A serialization retry replays the transactional closure; the totals must
// come out the same on every attempt instead of accumulating.
func (s *CheckoutCommandsTestSuite) TestPlaceOrders_RetriedTransactionKeepsTotalsStable() {
	lines := []shared.CartLine{{VariantID: s.variantA, Quantity: 2}}
	systemVoucherID := uuid.New()
	voucherSnapshot := &shared.VoucherSnapshot{
		ID:           systemVoucherID,
		Code:         "SYS10",
		Scope:        "system",
		DiscountType: "percent",
		PercentOff:   10,
		StartsAt:     s.now.Add(-time.Hour),
		EndsAt:       s.now.Add(24 * time.Hour),
		IsActive:     true,
	}

	s.reads.EXPECT().CartLines(gomock.Any(), s.userID).Return(lines, nil)
	s.reads.EXPECT().VariantsByIDs(gomock.Any(), gomock.Any()).Return(s.variantSnapshots()[:1], nil)
	s.reads.EXPECT().VoucherByCode(gomock.Any(), "SYS10").Return(voucherSnapshot, nil)
	s.reads.EXPECT().VoucherUserUsage(gomock.Any(), systemVoucherID, s.userID).Return(int32(0), nil)
	s.reads.EXPECT().ShopsByIDs(gomock.Any(), gomock.Any()).Return(s.shopSnapshots(), nil)

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			if err := fn(ctx, s.tx); err != nil {
				return err
			}
			return fn(ctx, s.tx)
		},
	)
	s.inventory.EXPECT().TryDecrement(gomock.Any(), gomock.Any(), s.variantA, int32(2)).Return(true, nil).Times(2)
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.orders.EXPECT().SaveAddressSnapshot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)
	s.vouchers.EXPECT().TryIncrementUsage(gomock.Any(), gomock.Any(), systemVoucherID).Return(true, nil).Times(2)
	s.vouchers.EXPECT().RecordUsage(gomock.Any(), gomock.Any(), systemVoucherID, s.userID, gomock.Any()).Return(nil).Times(2)
	s.carts.EXPECT().RemoveLines(gomock.Any(), gomock.Any(), s.userID, []uuid.UUID{s.variantA}).Return(nil).Times(2)

	code := "SYS10"
	req := s.placeOrdersRequest(s.variantA)
	req.SystemVoucherCode = &code

	result, err := s.cmd.PlaceOrders(context.Background(), s.userID, req)

	s.Require().NoError(err)
	s.Require().Len(result.Orders, 1)
	// 20000 + 3000 shipping, 10% off: the second pass must not double it.
	s.Equal(int64(2300), result.SystemDiscountCents)
	s.Equal(int64(2300), result.Orders[0].SystemDiscountCents)
	s.Equal(int64(20700), result.GrandTotalCents)
}
