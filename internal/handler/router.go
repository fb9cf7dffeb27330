package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/handler/api"
	"marketplace-api/internal/handler/middleware"
	"marketplace-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Catalog  *api.CatalogHandler
	Cart     *api.CartHandler
	Checkout *api.CheckoutHandler
	Order    *api.OrderHandler
	Voucher  *api.VoucherHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, hs Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, hs, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, hs Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: hs.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: hs.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: hs.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: hs.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: hs.Auth.Me},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/products", Handler: hs.Catalog.ListProducts},
			{Method: http.MethodGet, Path: "/products/:id", Handler: hs.Catalog.GetProduct},
			{Method: http.MethodGet, Path: "/shops/:id", Handler: hs.Catalog.GetShop},
		})

		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoles(user.RoleBuyer))
		{
			addRoutes(cart, []route{
				{Method: http.MethodGet, Path: "", Handler: hs.Cart.Get},
				{Method: http.MethodPost, Path: "/items", Handler: hs.Cart.AddItem},
				{Method: http.MethodPut, Path: "/items/:variantId", Handler: hs.Cart.UpdateItem},
				{Method: http.MethodDelete, Path: "/items/:variantId", Handler: hs.Cart.RemoveItem},
			})
		}

		checkout := apiGroup.Group("/checkout")
		checkout.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoles(user.RoleBuyer))
		{
			addRoutes(checkout, []route{
				{Method: http.MethodPost, Path: "", Handler: hs.Checkout.PlaceOrders},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: hs.Order.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: hs.Order.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: hs.Order.Cancel,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoles(user.RoleBuyer)}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: hs.Order.UpdateStatus,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoles(user.RoleSeller, user.RoleAdmin)}},
			})
		}

		shopOrders := apiGroup.Group("/shop/orders")
		shopOrders.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoles(user.RoleSeller))
		{
			addRoutes(shopOrders, []route{
				{Method: http.MethodGet, Path: "", Handler: hs.Order.ListForShop},
			})
		}

		vouchers := apiGroup.Group("/vouchers")
		vouchers.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoles(user.RoleSeller, user.RoleAdmin))
		{
			addRoutes(vouchers, []route{
				{Method: http.MethodGet, Path: "", Handler: hs.Voucher.List},
				{Method: http.MethodPost, Path: "", Handler: hs.Voucher.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: hs.Voucher.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: hs.Voucher.Deactivate},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
