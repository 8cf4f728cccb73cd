package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/techhub-shop/techhub/internal/handlers"
	authmw "github.com/techhub-shop/techhub/internal/middleware/auth"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Cart      *handlers.CartHandler
	Reviews   *handlers.ReviewHandler
	Products  *handlers.ProductHandler
	Pages     *handlers.PageHandler
	Search    *handlers.SearchHandler
	AuthMW    *authmw.Middleware
	SessionMW echo.MiddlewareFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.POST("/register", d.Auth.Register)
	e.POST("/token", d.Auth.Token)
	e.GET("/user/me", d.Auth.Me, d.AuthMW.RequireAuth)

	admin := e.Group("/admin", d.AuthMW.RequireAuth, d.AuthMW.RequireAdmin)
	admin.GET("/dashboard", d.Auth.Dashboard)
	admin.POST("/products", d.Products.CreateProduct)
	admin.PATCH("/products/:id", d.Products.PatchProduct)
	admin.DELETE("/products/:id", d.Products.DeleteProduct)

	e.GET("/products", d.Products.GetProducts)
	e.GET("/products/:id", d.Products.GetProduct)

	if d.Search != nil {
		e.GET("/search", d.Search.Handler)
	}

	e.POST("/reviews", d.Reviews.Create)
	e.GET("/reviews/:tovar_id", d.Reviews.ListByProduct)

	// страницы и корзина живут в анонимной cookie-сессии
	pages := e.Group("", d.SessionMW)
	pages.GET("/", d.Pages.Home)
	pages.GET("/cart", d.Cart.Cart)
	pages.POST("/add_to_cart", d.Cart.AddToCart)
	pages.POST("/remove_from_cart", d.Cart.RemoveFromCart)
	pages.GET("/:page_name", d.Pages.Page)
}
