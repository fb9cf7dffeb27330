package components

import (
	"marketplace-api/internal/handler"
	"marketplace-api/internal/handler/api"
	"marketplace-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCatalogHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewOrderHandler,
		api.NewVoucherHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	catalog *api.CatalogHandler,
	cart *api.CartHandler,
	checkout *api.CheckoutHandler,
	order *api.OrderHandler,
	voucher *api.VoucherHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Catalog:  catalog,
		Cart:     cart,
		Checkout: checkout,
		Order:    order,
		Voucher:  voucher,
	}
}
