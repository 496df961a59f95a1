package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopper/internal/authz"
)

type Deps struct {
	Gate           *authz.Gate
	AuthHandler    *AuthHandler
	CartHandler    *CartHandler
	ProductHandler *ProductHandler
	UserHandler    *UserHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := &AuthMiddleware{Gate: d.Gate}

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/refresh", d.AuthHandler.Refresh)
	v1.POST("/logout", d.AuthHandler.Logout)

	v1.GET("/products", d.ProductHandler.ListProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)

	v1.GET("/me", d.AuthHandler.Me, authMW.RequireAuth)

	users := v1.Group("/users", authMW.RequireOwner)
	users.GET("/:id", d.UserHandler.GetUser)
	users.PATCH("/:id", d.UserHandler.UpdateProfile)
	users.DELETE("/:id", d.UserHandler.DeleteAccount)

	users.GET("/:id/cart", d.CartHandler.GetCart)
	users.POST("/:id/cart/items", d.CartHandler.AddItem)
	users.PUT("/:id/cart/items/:productID", d.CartHandler.SetQuantity)
	users.DELETE("/:id/cart/items/:productID", d.CartHandler.RemoveItem)

	admin := v1.Group("/admin", authMW.RequireAdmin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.GET("/users", d.UserHandler.ListUsers)
}
