package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/internal/handler/httperr"
	"marketplace-api/internal/usecase/queries"
)

type CatalogHandler struct {
	catalogQ queries.CatalogQueries
	shopQ    queries.ShopQueries
}

func NewCatalogHandler(catalogQ queries.CatalogQueries, shopQ queries.ShopQueries) *CatalogHandler {
	return &CatalogHandler{catalogQ: catalogQ, shopQ: shopQ}
}

// @Summary List products
// @Description Browse active products, optionally filtered by shop or keyword
// @Tags catalog
// @Produce json
// @Param shop_id query string false "Shop ID"
// @Param q query string false "Name keyword"
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ProductPageResponse
// @Failure 400 {object} map[string]string
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter queries.ProductFilter
	if raw := c.Query("shop_id"); raw != "" {
		shopID, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid shop id", nil)
			return
		}
		filter.ShopID = &shopID
	}
	filter.Keyword = c.Query("q")

	var after *queries.Cursor
	if raw := c.Query("after"); raw != "" {
		after = &queries.Cursor{After: raw}
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, next, err := h.catalogQ.ListProducts(c.Request.Context(), filter, after, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to list products", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductListItems(items, next))
}

// @Summary Get product
// @Description Get a product with its variants
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product id", nil)
		return
	}

	view, err := h.catalogQ.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrProductNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load product", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

// @Summary Get shop
// @Description Get a shop's public profile
// @Tags catalog
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} resdto.ShopResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shops/{id} [get]
func (h *CatalogHandler) GetShop(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid shop id", nil)
		return
	}

	view, err := h.shopQ.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrShopNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Shop not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load shop", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromShopView(view))
}
