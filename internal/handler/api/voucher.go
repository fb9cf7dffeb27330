package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-api/internal/domain/user"
	reqdto "marketplace-api/internal/handler/dto/request"
	resdto "marketplace-api/internal/handler/dto/response"
	"marketplace-api/internal/handler/httperr"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"
	"marketplace-api/internal/usecase/shared"
)

type VoucherHandler struct {
	cmds commands.VoucherCommands
	q    queries.VoucherQueries
	uow  shared.UnitOfWork
}

func NewVoucherHandler(cmds commands.VoucherCommands, q queries.VoucherQueries, uow shared.UnitOfWork) *VoucherHandler {
	return &VoucherHandler{cmds: cmds, q: q, uow: uow}
}

// @Summary Create voucher
// @Description Create a shop voucher (seller) or any voucher (admin)
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateVoucherRequest true "Create voucher request"
// @Success 201 {object} resdto.CreateVoucherResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /vouchers [post]
func (h *VoucherHandler) Create(c *gin.Context) {
	actorID, actorRole, ok := actor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	var req reqdto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	voucherID, err := h.cmds.Create(c.Request.Context(), actorID, actorRole, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVoucherAccessDenied):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		case errors.Is(err, commands.ErrDuplicateVoucher):
			httperr.AbortWithError(c, http.StatusConflict, err, "Voucher code already exists", nil)
		case errors.Is(err, commands.ErrVoucherValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid voucher data", nil)
		case errors.Is(err, commands.ErrShopNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Shop not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Voucher creation failed", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateVoucherResponse{VoucherID: voucherID})
}

// @Summary Deactivate voucher
// @Description Deactivate a voucher (owner seller or admin)
// @Tags vouchers
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vouchers/{id} [delete]
func (h *VoucherHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid voucher id", nil)
		return
	}

	actorID, actorRole, ok := actor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	if err := h.cmds.Deactivate(c.Request.Context(), actorID, actorRole, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrVoucherNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Voucher not found", nil)
		case errors.Is(err, commands.ErrVoucherAccessDenied):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Voucher deactivation failed", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get voucher
// @Description Get a voucher by ID (owner seller or admin)
// @Tags vouchers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Voucher ID"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vouchers/{id} [get]
func (h *VoucherHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid voucher id", nil)
		return
	}

	actorID, actorRole, ok := actor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrVoucherNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Voucher not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load voucher", nil)
		return
	}

	if actorRole != user.RoleAdmin {
		shop, err := h.uow.CommandReads().ShopByOwner(c.Request.Context(), actorID)
		if err != nil || view.ShopID == nil || *view.ShopID != shop.ID {
			httperr.AbortWithError(c, http.StatusForbidden, errors.New("voucher belongs to another shop"), "Access denied", nil)
			return
		}
	}

	c.JSON(http.StatusOK, resdto.FromVoucherView(view))
}

// @Summary List vouchers
// @Description List own shop vouchers (seller) or system vouchers (admin)
// @Tags vouchers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.VoucherResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vouchers [get]
func (h *VoucherHandler) List(c *gin.Context) {
	actorID, actorRole, ok := actor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	if actorRole == user.RoleAdmin {
		views, err := h.q.ListSystem(c.Request.Context())
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list vouchers", nil)
			return
		}
		c.JSON(http.StatusOK, resdto.FromVoucherViews(views))
		return
	}

	shop, err := h.uow.CommandReads().ShopByOwner(c.Request.Context(), actorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Shop not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load shop", nil)
		return
	}

	views, err := h.q.ListByShop(c.Request.Context(), shop.ID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list vouchers", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVoucherViews(views))
}
