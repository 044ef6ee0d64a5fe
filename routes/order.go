package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/order"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
)

// SetupOrderRoutes registers checkout and order/invoice reads.
func SetupOrderRoutes(r *gin.Engine, d Deps) {
	orderGroup := r.Group("/order")
	orderGroup.Use(middleware.RequireAuth(d.DB, d.JWTer, d.Cookie.Name))
	{
		orderGroup.POST("", orderControllers.CreateOrder(d.DB, d.Renderer, d.Mailer, d.Logger))
		orderGroup.GET("", orderControllers.GetOrders(d.DB))
		orderGroup.GET("/:id", orderControllers.GetOrder(d.DB))
		orderGroup.GET("/:id/invoice", orderControllers.DownloadInvoice(d.DB, d.Renderer))
	}
}
