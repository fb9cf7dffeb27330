//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"marketplace-api/internal/domain/checkout"
	"marketplace-api/internal/handler/api"
	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/tests/common/builder"
	"marketplace-api/tests/common/httptest"
	commandsmock "marketplace-api/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	handler      *api.CheckoutHandler
	userID       uuid.UUID
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands)
	s.userID = uuid.New()

	s.router.POST("/checkout", func(c *gin.Context) {
		// Mock middleware behavior
		c.Set("user_id", s.userID)
		s.handler.PlaceOrders(c)
	})
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) TestPlaceOrders_Success() {
	reqBody := builder.NewCheckoutBuilder().BuildDTO()
	result := builder.NewCheckoutBuilder().BuildResult()

	s.mockCommands.EXPECT().
		PlaceOrders(gomock.Any(), s.userID, reqBody).
		Return(result, nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout", reqBody, "")

	s.Equal(http.StatusCreated, w.Code)

	var resp resdto.PlaceOrdersResponse
	_ = httptest.DecodeResponseBody(s.T(), w.Body, &resp)
	s.Len(resp.Orders, 1)
	s.Equal(result.GrandTotalCents, resp.GrandTotalCents)
	s.Empty(resp.Warnings)
}

func (s *CheckoutHandlerTestSuite) TestPlaceOrders_PartialCartSurfacesWarnings() {
	reqBody := builder.NewCheckoutBuilder().BuildDTO()
	result := builder.NewCheckoutBuilder().BuildResult()
	droppedVariant := uuid.New()
	result.Warnings = []checkout.Issue{
		checkout.ItemIssue(droppedVariant, checkout.ReasonInsufficientStock),
	}

	s.mockCommands.EXPECT().
		PlaceOrders(gomock.Any(), s.userID, reqBody).
		Return(result, nil)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout", reqBody, "")

	s.Equal(http.StatusCreated, w.Code)

	var resp resdto.PlaceOrdersResponse
	_ = httptest.DecodeResponseBody(s.T(), w.Body, &resp)
	s.Require().Len(resp.Warnings, 1)
	s.Equal(checkout.ReasonInsufficientStock, resp.Warnings[0].Reason)
}

func (s *CheckoutHandlerTestSuite) TestPlaceOrders_ErrorMapping() {
	tests := []struct {
		name       string
		result     *commands.PlaceOrdersResult
		err        error
		expectCode int
		expectErr  string
	}{
		{
			name:       "empty cart",
			err:        commands.ErrCartEmpty,
			expectCode: http.StatusUnprocessableEntity,
			expectErr:  "CART_EMPTY",
		},
		{
			name: "requested items not in cart",
			result: &commands.PlaceOrdersResult{
				Warnings: []checkout.Issue{
					checkout.ItemIssue(uuid.New(), checkout.ReasonNotInCart),
				},
			},
			err:        commands.ErrItemsNotInCart,
			expectCode: http.StatusUnprocessableEntity,
			expectErr:  "ITEMS_NOT_IN_CART",
		},
		{
			name: "no valid items carries warnings",
			result: &commands.PlaceOrdersResult{
				Warnings: []checkout.Issue{
					checkout.ItemIssue(uuid.New(), checkout.ReasonVariantInactive),
				},
			},
			err:        commands.ErrNoValidItems,
			expectCode: http.StatusUnprocessableEntity,
			expectErr:  "NO_VALID_ITEMS",
		},
		{
			name:       "out of stock race",
			err:        commands.ErrOutOfStock,
			expectCode: http.StatusConflict,
			expectErr:  "OUT_OF_STOCK_RACE",
		},
		{
			name:       "voucher cap race",
			err:        commands.ErrVoucherCapExceeded,
			expectCode: http.StatusConflict,
			expectErr:  "VOUCHER_USAGE_CAP",
		},
		{
			name:       "unexpected failure",
			err:        errors.New("boom"),
			expectCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			reqBody := builder.NewCheckoutBuilder().BuildDTO()

			s.mockCommands.EXPECT().
				PlaceOrders(gomock.Any(), s.userID, reqBody).
				Return(tt.result, tt.err)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout", reqBody, "")

			s.Equal(tt.expectCode, w.Code)
			if tt.expectErr != "" {
				s.Contains(w.Body.String(), tt.expectErr)
			}
		})
	}
}

func (s *CheckoutHandlerTestSuite) TestPlaceOrders_InvalidRequest() {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{
			name:   "missing variant ids",
			mutate: func(m map[string]any) { delete(m, "variant_ids") },
		},
		{
			name:   "empty variant ids",
			mutate: func(m map[string]any) { m["variant_ids"] = []string{} },
		},
		{
			name:   "missing payment method",
			mutate: func(m map[string]any) { delete(m, "payment_method") },
		},
		{
			name:   "unsupported payment method",
			mutate: func(m map[string]any) { m["payment_method"] = "crypto" },
		},
		{
			name:   "missing delivery address",
			mutate: func(m map[string]any) { delete(m, "delivery_address") },
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			body := map[string]any{
				"variant_ids":    []string{uuid.NewString()},
				"payment_method": "cod",
				"delivery_address": map[string]any{
					"name":     "Jane Buyer",
					"phone":    "0901234567",
					"street":   "12 Rose St",
					"district": "District 1",
					"city":     "Metropolis",
				},
			}
			tt.mutate(body)

			w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/checkout", body, "")
			s.Equal(http.StatusBadRequest, w.Code)
		})
	}
}
