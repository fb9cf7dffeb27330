//go:build e2e

package checkout_test

import (
	"net/http"
	"sync"
	"testing"

	"marketplace-api/internal/domain/user"
	reqdto "marketplace-api/internal/handler/dto/request"
	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/tests/common/dbtest"
	"marketplace-api/tests/common/httptest"
	"marketplace-api/tests/e2e"
	"marketplace-api/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	checkoutURL = "/api/checkout"
	cartItemURL = "/api/cart/items"
)

type checkoutSuite struct {
	e2e.SharedSuite
	auth *helper.AuthHelper

	shopA    uuid.UUID
	shopB    uuid.UUID
	variantA uuid.UUID // 10000 cents, stock 10, shop A
	variantB uuid.UUID // 30000 cents, stock 5, shop B

	buyerToken string
}

func TestCheckoutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(checkoutSuite))
}

func (s *checkoutSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.auth = helper.NewAuthHelper(s.DB, s.Config.JWT)
}

func (s *checkoutSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	t := s.T()
	sellerA := dbtest.CreateTestUser(t, s.DB, "seller-a@example.com", string(user.RoleSeller))
	sellerB := dbtest.CreateTestUser(t, s.DB, "seller-b@example.com", string(user.RoleSeller))
	s.shopA = dbtest.CreateTestShop(t, s.DB, sellerA, "Mug Shop")
	s.shopB = dbtest.CreateTestShop(t, s.DB, sellerB, "Shirt Shop")
	s.variantA = dbtest.CreateTestVariant(t, s.DB, s.shopA, "Ceramic Mug", 10000, 10)
	s.variantB = dbtest.CreateTestVariant(t, s.DB, s.shopB, "Linen Shirt", 30000, 5)

	_, s.buyerToken = s.auth.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", string(user.RoleBuyer))
}

func (s *checkoutSuite) addToCart(variantID uuid.UUID, qty int32) {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cartItemURL,
		reqdto.AddCartItemRequest{VariantID: variantID, Quantity: qty}, s.buyerToken)
	require.Equal(s.T(), http.StatusNoContent, w.Code, w.Body.String())
}

func (s *checkoutSuite) placeOrdersRequest(variantIDs ...uuid.UUID) reqdto.PlaceOrdersRequest {
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

func (s *checkoutSuite) TestPlaceOrders() {
	s.Run("creates one order per shop with vouchers applied", func() {
		shopVoucherID := dbtest.CreateTestVoucher(s.T(), s.DB, dbtest.VoucherFixture{
			Code: "MUG5", Scope: "shop", DiscountType: "fixed", ShopID: &s.shopA, AmountOffCents: 5000,
		})
		systemVoucherID := dbtest.CreateTestVoucher(s.T(), s.DB, dbtest.VoucherFixture{
			Code: "SYS10", Scope: "system", DiscountType: "percent", PercentOff: 10,
		})

		s.addToCart(s.variantA, 2)
		s.addToCart(s.variantB, 1)

		req := s.placeOrdersRequest(s.variantA, s.variantB)
		req.ShopVoucherCodes = map[string]string{s.shopA.String(): "MUG5"}
		code := "SYS10"
		req.SystemVoucherCode = &code

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL, req, s.buyerToken)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp resdto.PlaceOrdersResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		require.Len(s.T(), resp.Orders, 2)
		require.Empty(s.T(), resp.Warnings)

		// Shop A: 20000 - 5000 voucher + 3000 shipping = 18000 payable.
		// Shop B: 30000 + 3000 = 33000 payable. 10% of 51000 = 5100,
		// split 1800/3300 by largest remainder.
		byShop := map[uuid.UUID]*resdto.PlacedOrderResponse{}
		for _, o := range resp.Orders {
			byShop[o.ShopID] = o
		}
		require.Equal(s.T(), int64(20000), byShop[s.shopA].SubtotalCents)
		require.Equal(s.T(), int64(5000), byShop[s.shopA].ShopDiscountCents)
		require.Equal(s.T(), int64(1800), byShop[s.shopA].SystemDiscountCents)
		require.Equal(s.T(), int64(16200), byShop[s.shopA].TotalCents)
		require.Equal(s.T(), int64(30000), byShop[s.shopB].SubtotalCents)
		require.Equal(s.T(), int64(3300), byShop[s.shopB].SystemDiscountCents)
		require.Equal(s.T(), int64(29700), byShop[s.shopB].TotalCents)
		require.Equal(s.T(), int64(45900), resp.GrandTotalCents)
		require.Equal(s.T(), int64(5100), resp.SystemDiscountCents)

		require.Equal(s.T(), int32(8), dbtest.VariantStock(s.T(), s.DB, s.variantA))
		require.Equal(s.T(), int32(4), dbtest.VariantStock(s.T(), s.DB, s.variantB))
		require.Equal(s.T(), int32(1), dbtest.VoucherUsedCount(s.T(), s.DB, shopVoucherID))
		require.Equal(s.T(), int32(1), dbtest.VoucherUsedCount(s.T(), s.DB, systemVoucherID))

		var remaining int
		err := s.DB.QueryRow(s.T().Context(), "SELECT count(*) FROM cart_items").Scan(&remaining)
		require.NoError(s.T(), err)
		require.Zero(s.T(), remaining, "cart should be emptied after checkout")
	})

	s.Run("rejects checkout with empty cart", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL, s.placeOrdersRequest(s.variantA), s.buyerToken)
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code, w.Body.String())
		require.Contains(s.T(), w.Body.String(), "CART_EMPTY")
	})

	s.Run("checks out only the requested cart lines", func() {
		s.addToCart(s.variantA, 1)
		s.addToCart(s.variantB, 1)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL, s.placeOrdersRequest(s.variantA), s.buyerToken)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp resdto.PlaceOrdersResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		require.Len(s.T(), resp.Orders, 1)
		require.Equal(s.T(), s.shopA, resp.Orders[0].ShopID)
		require.Empty(s.T(), resp.Warnings)

		// The unrequested line stays in the cart.
		var remaining int
		err := s.DB.QueryRow(s.T().Context(), "SELECT count(*) FROM cart_items WHERE variant_id = $1", s.variantB).Scan(&remaining)
		require.NoError(s.T(), err)
		require.Equal(s.T(), 1, remaining)
		require.Equal(s.T(), int32(5), dbtest.VariantStock(s.T(), s.DB, s.variantB))
	})

	s.Run("warns about requested items missing from the cart", func() {
		s.addToCart(s.variantA, 1)
		ghost := uuid.New()

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL, s.placeOrdersRequest(s.variantA, ghost), s.buyerToken)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp resdto.PlaceOrdersResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		require.Len(s.T(), resp.Orders, 1)
		require.Len(s.T(), resp.Warnings, 1)
		require.Equal(s.T(), "NOT_IN_CART", resp.Warnings[0].Reason)
	})

	s.Run("rejects when no requested item is in the cart", func() {
		s.addToCart(s.variantA, 1)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL, s.placeOrdersRequest(uuid.New()), s.buyerToken)
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code, w.Body.String())
		require.Contains(s.T(), w.Body.String(), "ITEMS_NOT_IN_CART")
		require.Equal(s.T(), int32(10), dbtest.VariantStock(s.T(), s.DB, s.variantA))
	})

	s.Run("fails when all cart lines became invalid", func() {
		s.addToCart(s.variantA, 1)

		_, err := s.DB.Exec(s.T().Context(), "UPDATE inventories SET stock = 0 WHERE variant_id = $1", s.variantA)
		require.NoError(s.T(), err)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL, s.placeOrdersRequest(s.variantA), s.buyerToken)
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code, w.Body.String())
		require.Contains(s.T(), w.Body.String(), "NO_VALID_ITEMS")
		require.Contains(s.T(), w.Body.String(), "INSUFFICIENT_STOCK")
	})

	s.Run("ignores an expired voucher with a warning", func() {
		voucherID := dbtest.CreateTestVoucher(s.T(), s.DB, dbtest.VoucherFixture{
			Code: "OLD10", Scope: "system", DiscountType: "percent", PercentOff: 10,
		})
		_, err := s.DB.Exec(s.T().Context(),
			"UPDATE vouchers SET starts_at = now() - interval '2 days', ends_at = now() - interval '1 day' WHERE id = $1", voucherID)
		require.NoError(s.T(), err)

		s.addToCart(s.variantA, 1)

		req := s.placeOrdersRequest(s.variantA)
		code := "OLD10"
		req.SystemVoucherCode = &code

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL, req, s.buyerToken)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp resdto.PlaceOrdersResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		require.Len(s.T(), resp.Orders, 1)
		require.Equal(s.T(), int64(0), resp.SystemDiscountCents)
		require.Len(s.T(), resp.Warnings, 1)
		require.Equal(s.T(), "VOUCHER_EXPIRED", resp.Warnings[0].Reason)
		require.Equal(s.T(), int32(0), dbtest.VoucherUsedCount(s.T(), s.DB, voucherID))
	})

	s.Run("requires the buyer role", func() {
		_, sellerToken := s.auth.CreateAndLogin(s.T(), s.DB, s.Router, "another-seller@example.com", string(user.RoleSeller))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL, s.placeOrdersRequest(s.variantA), sellerToken)
		require.Equal(s.T(), http.StatusForbidden, w.Code, w.Body.String())
	})
}

func (s *checkoutSuite) TestCancelRestocksInventory() {
	s.Run("canceling a pending order restores stock", func() {
		s.addToCart(s.variantA, 3)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL, s.placeOrdersRequest(s.variantA), s.buyerToken)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var resp resdto.PlaceOrdersResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		require.Len(s.T(), resp.Orders, 1)
		require.Equal(s.T(), int32(7), dbtest.VariantStock(s.T(), s.DB, s.variantA))

		orderID := resp.Orders[0].OrderID
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+orderID.String()+"/cancel", nil, s.buyerToken)
		require.Equal(s.T(), http.StatusNoContent, w.Code, w.Body.String())

		require.Equal(s.T(), int32(10), dbtest.VariantStock(s.T(), s.DB, s.variantA))

		var status string
		err := s.DB.QueryRow(s.T().Context(), "SELECT status FROM orders WHERE id = $1", orderID).Scan(&status)
		require.NoError(s.T(), err)
		require.Equal(s.T(), "canceled", status)
	})
}

func (s *checkoutSuite) TestConcurrentCheckout() {
	s.Run("exactly one buyer gets the last unit", func() {
		scarce := dbtest.CreateTestVariant(s.T(), s.DB, s.shopA, "Limited Print", 50000, 1)

		_, tokenA := s.auth.CreateAndLogin(s.T(), s.DB, s.Router, "racer-a@example.com", string(user.RoleBuyer))
		_, tokenB := s.auth.CreateAndLogin(s.T(), s.DB, s.Router, "racer-b@example.com", string(user.RoleBuyer))
		for _, token := range []string{tokenA, tokenB} {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cartItemURL,
				reqdto.AddCartItemRequest{VariantID: scarce, Quantity: 1}, token)
			require.Equal(s.T(), http.StatusNoContent, w.Code, w.Body.String())
		}

		type outcome struct {
			code int
			body string
		}
		results := make(chan outcome, 2)
		start := make(chan struct{})
		var wg sync.WaitGroup
		for _, token := range []string{tokenA, tokenB} {
			wg.Add(1)
			go func(token string) {
				defer wg.Done()
				<-start
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, checkoutURL,
					s.placeOrdersRequest(scarce), token)
				results <- outcome{code: w.Code, body: w.Body.String()}
			}(token)
		}
		close(start)
		wg.Wait()
		close(results)

		byCode := map[int]string{}
		for r := range results {
			byCode[r.code] = r.body
		}
		require.Contains(s.T(), byCode, http.StatusCreated, "one checkout should win")
		require.Contains(s.T(), byCode, http.StatusConflict, "the other should lose the stock race")
		require.Contains(s.T(), byCode[http.StatusConflict], "OUT_OF_STOCK_RACE")
		require.Equal(s.T(), int32(0), dbtest.VariantStock(s.T(), s.DB, scarce))
	})
}
