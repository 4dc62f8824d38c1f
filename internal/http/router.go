package httpx

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/urmu/storefront/internal/http/handlers"
	"github.com/urmu/storefront/internal/http/middleware"
)

// Handlers groups the route handlers mounted by BuildRouter
type Handlers struct {
	Auth     *handlers.AuthHandlers
	Catalog  *handlers.CatalogHandlers
	Commerce *handlers.CommerceHandlers
	Account  *handlers.AccountHandlers
}

// BuildRouter mounts every route behind the optional auth middleware and
// casbin. Which routes need a session is decided by policy, not by grouping.
func BuildRouter(logger *zap.Logger, h Handlers, authMW *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), authMW.Optional(), cb.Enforce())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/flows", h.Auth.Start)
	auth.GET("/flows/:id", h.Auth.Status)
	auth.POST("/flows/:id/phone", h.Auth.SubmitPhone)
	auth.POST("/flows/:id/resend", h.Auth.Resend)
	auth.POST("/flows/:id/verify", h.Auth.Verify)
	auth.POST("/flows/:id/signup", h.Auth.Signup)
	auth.POST("/flows/:id/back", h.Auth.Back)
	auth.POST("/flows/:id/reset", h.Auth.Reset)
	auth.POST("/logout", h.Auth.Logout)

	r.GET("/products", h.Catalog.Search)
	r.GET("/products/:id", h.Catalog.Product)
	r.GET("/categories", h.Catalog.Categories)
	r.GET("/brands", h.Catalog.Brands)
	r.GET("/banners", h.Catalog.Banners)

	r.GET("/cart", h.Commerce.Cart)
	r.POST("/cart/items", h.Commerce.AddItem)
	r.PATCH("/cart/items/:id", h.Commerce.UpdateItem)
	r.DELETE("/cart/items/:id", h.Commerce.RemoveItem)
	r.POST("/checkout", h.Commerce.Checkout)
	r.GET("/orders", h.Commerce.Orders)
	r.GET("/orders/export", h.Commerce.ExportOrders)
	r.GET("/orders/:id", h.Commerce.Order)

	r.GET("/addresses", h.Account.Addresses)
	r.POST("/addresses", h.Account.CreateAddress)
	r.DELETE("/addresses/:id", h.Account.DeleteAddress)
	r.GET("/wholesale/application", h.Account.WholesaleStatus)
	r.POST("/wholesale/application", h.Account.ApplyWholesale)

	return r
}
