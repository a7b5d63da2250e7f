package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/electro_shop/internal/db"
	"github.com/Skotchmaster/electro_shop/internal/handlers"
	"github.com/Skotchmaster/electro_shop/internal/logging"
	authmw "github.com/Skotchmaster/electro_shop/internal/middleware/auth"
	"github.com/Skotchmaster/electro_shop/internal/middleware/csrf"
)

type Deps struct {
	DB   *gorm.DB
	Auth *authmw.AutoRefresh
	// CSRF is nil when the check is disabled.
	CSRF *csrf.Config

	AuthHandler      *handlers.AuthHandler
	ProductHandler   *handlers.ProductHandler
	CartHandler      *handlers.CartHandler
	WishlistHandler  *handlers.WishlistHandler
	OrderHandler     *handlers.OrderHandler
	RepairHandler    *handlers.RepairHandler
	BillingHandler   *handlers.BillingHandler
	DashboardHandler *handlers.DashboardHandler
}

const apiPrefix = "/api/v1"

// CSRFSkipPaths lists the endpoints that establish a session.
var CSRFSkipPaths = []string{
	apiPrefix + "/auth/register",
	apiPrefix + "/auth/login",
	apiPrefix + "/auth/refresh",
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Warn("ready_error", "status", http.StatusServiceUnavailable, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	v1 := e.Group(apiPrefix)
	if d.CSRF != nil {
		cfg := *d.CSRF
		cfg.SkipPaths = append(cfg.SkipPaths, CSRFSkipPaths...)
		v1.Use(csrf.Middleware(cfg))
	}
	user := d.Auth.RequireAuth
	admin := d.Auth.RequireAdmin

	auth := v1.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.Logout)

	me := v1.Group("/users/me", user)
	me.GET("", d.AuthHandler.Me)
	me.PATCH("", d.AuthHandler.UpdateMe)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.Search)
	products.GET("/categories", d.ProductHandler.Categories)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/:id/reviews", d.ProductHandler.GetReviews)
	products.POST("/:id/reviews", d.ProductHandler.AddReview, user)

	cart := v1.Group("/cart", user)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.DELETE("/items/:productId", d.CartHandler.DeleteOneFromCart)
	cart.POST("/checkout", d.CartHandler.Checkout)

	wishlist := v1.Group("/wishlist", user)
	wishlist.GET("", d.WishlistHandler.GetWishlist)
	wishlist.POST("", d.WishlistHandler.Toggle)

	orders := v1.Group("/orders", user)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/mine", d.OrderHandler.MyOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/:id/cancel", d.OrderHandler.CancelOrder)

	adm := v1.Group("/admin", admin)
	adm.POST("/products", d.ProductHandler.CreateProduct)
	adm.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	adm.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	adm.GET("/products/stock", d.ProductHandler.TotalStock)
	adm.POST("/products/reindex", d.ProductHandler.Reindex)

	adm.GET("/orders", d.OrderHandler.ListOrders)
	adm.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)

	adm.GET("/repairs", d.RepairHandler.ListRepairs)
	adm.POST("/repairs", d.RepairHandler.CreateRepair)
	adm.GET("/repairs/:id", d.RepairHandler.GetRepair)
	adm.PATCH("/repairs/:id", d.RepairHandler.PatchRepair)
	adm.DELETE("/repairs/:id", d.RepairHandler.DeleteRepair)
	adm.POST("/repairs/:id/billed", d.RepairHandler.MarkBilled)

	adm.POST("/billing", d.BillingHandler.Checkout)
	adm.GET("/billing/history", d.BillingHandler.History)
	adm.GET("/billing/repairs", d.BillingHandler.UnbilledRepairs)

	adm.GET("/dashboard", d.DashboardHandler.Stats)
}
