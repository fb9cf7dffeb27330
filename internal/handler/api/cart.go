package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "marketplace-api/internal/handler/dto/request"
	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/internal/handler/httperr"
	"marketplace-api/internal/handler/middleware"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"
)

type CartHandler struct {
	cmds commands.CartCommands
	q    queries.CartQueries
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{cmds: cmds, q: q}
}

// @Summary Get cart
// @Description Get the authenticated buyer's cart
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 401 {object} map[string]string
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	view, err := h.q.GetCart(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cart", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Add cart item
// @Description Add a variant to the cart, replacing any existing quantity
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddCartItemRequest true "Add cart item request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.cmds.AddItem(c.Request.Context(), userID, req); err != nil {
		h.abortCartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Update cart item
// @Description Change the quantity of a cart line
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param variantId path string true "Variant ID"
// @Param request body reqdto.UpdateCartItemRequest true "Update cart item request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items/{variantId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid variant id", nil)
		return
	}

	var req reqdto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.cmds.UpdateItem(c.Request.Context(), userID, variantID, req); err != nil {
		h.abortCartError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove cart item
// @Description Remove a variant from the cart
// @Tags cart
// @Security BearerAuth
// @Param variantId path string true "Variant ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Router /cart/items/{variantId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid variant id", nil)
		return
	}

	if err := h.cmds.RemoveItem(c.Request.Context(), userID, variantID); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to remove cart item", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) abortCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrVariantNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Variant not found", nil)
	case errors.Is(err, commands.ErrVariantUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Variant is not available", nil)
	case errors.Is(err, commands.ErrQuantityTooLarge):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Quantity too large", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Cart update failed", nil)
	}
}
