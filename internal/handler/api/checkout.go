package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "marketplace-api/internal/handler/dto/request"
	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/internal/handler/httperr"
	"marketplace-api/internal/handler/middleware"
	"marketplace-api/internal/usecase/commands"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Place orders
// @Description Convert the cart into one order per shop, applying vouchers
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PlaceOrdersRequest true "Place orders request"
// @Success 201 {object} resdto.PlaceOrdersResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) PlaceOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	var req reqdto.PlaceOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.PlaceOrders(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCartEmpty):
			httperr.AbortWithCode(c, http.StatusUnprocessableEntity, err, "CART_EMPTY", "Cart is empty", nil)
		case errors.Is(err, commands.ErrItemsNotInCart):
			var detail any
			if result != nil {
				detail = result.Warnings
			}
			httperr.AbortWithCode(c, http.StatusUnprocessableEntity, err, "ITEMS_NOT_IN_CART", "None of the requested items are in the cart", detail)
		case errors.Is(err, commands.ErrNoValidItems):
			var detail any
			if result != nil {
				detail = result.Warnings
			}
			httperr.AbortWithCode(c, http.StatusUnprocessableEntity, err, "NO_VALID_ITEMS", "No valid items in cart", detail)
		case errors.Is(err, commands.ErrOutOfStock):
			httperr.AbortWithCode(c, http.StatusConflict, err, "OUT_OF_STOCK_RACE", "An item sold out during checkout", nil)
		case errors.Is(err, commands.ErrVoucherCapExceeded):
			httperr.AbortWithCode(c, http.StatusConflict, err, "VOUCHER_USAGE_CAP", "Voucher usage cap reached during checkout", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Checkout failed", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPlaceOrdersResult(result))
}
