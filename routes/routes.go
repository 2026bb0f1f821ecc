package routes

import (
	"cafe-pos/handlers"
	"cafe-pos/middleware"
	"cafe-pos/session"

	"github.com/gin-gonic/gin"
)

// Deps carries the wired handlers and session manager.
type Deps struct {
	Catalog  *handlers.CatalogHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Orders   *handlers.OrderHandler
	Sessions *session.Manager
}

func SetupRoutes(r *gin.Engine, d Deps) {
	// ── Catalog (no session needed) ────────────────────────────────
	api := r.Group("/api")
	{
		api.GET("/catalog", d.Catalog.GetCatalog)
		api.GET("/menu", d.Catalog.GetMenu)

		// Order lifecycle info (great for docs/Postman)
		api.GET("/state-machine", d.Orders.GetStateMachineInfo)

		// Back-office order views
		api.GET("/orders", d.Orders.ListOrders)
		api.GET("/orders/:id", d.Orders.GetOrder)
		api.PUT("/orders/:id/status", d.Orders.UpdateOrderStatus)
	}

	// ── Cart (session-scoped) ──────────────────────────────────────
	cart := r.Group("/api/cart")
	cart.Use(middleware.WithSession(d.Sessions))
	{
		cart.GET("", d.Cart.GetCart)
		cart.PUT("/items", d.Cart.SetItemQuantity)
		cart.PUT("/lines/:lineId", d.Cart.SetLineQuantity)
		cart.DELETE("/lines/:lineId", d.Cart.RemoveLine)
		cart.PUT("/order-type", d.Cart.SetOrderType)
		cart.PUT("/discount", d.Cart.SetDiscount)
		cart.POST("/checkout", d.Checkout.Checkout)
		cart.GET("/notifications", d.Cart.GetNotifications)
	}
}
