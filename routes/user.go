package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/cart"
	companyControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/company"
	favoriteControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/favorites"
	feedbackControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/feedback"
	settingsControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/settings"
	userControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/user"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
)

// SetupUserRoutes registers the token-protected per-user resources:
// profile, settings, cart, favorites, feedback and the company token
// endpoint.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(d.DB, d.JWTer, d.Cookie.Name))
	{
		userGroup := authed.Group("/user")
		{
			userGroup.GET("/:id", userControllers.GetUser(d.DB))
			userGroup.PUT("/:id", userControllers.UpdateUser(d.DB))
			userGroup.DELETE("/:id", userControllers.DeleteUser(d.DB))
			userGroup.PUT("/:id/picture", userControllers.SetProfilePicture(d.DB))
		}

		settingsGroup := authed.Group("/settings")
		{
			settingsGroup.GET("/:user_id", settingsControllers.GetSettings(d.DB))
			settingsGroup.PUT("/:user_id", settingsControllers.UpdateSettings(d.DB))
		}

		cartGroup := authed.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(d.DB))
			cartGroup.POST("", cartControllers.AddItems(d.DB, d.Logger))
			cartGroup.DELETE("/:color_id", cartControllers.RemoveItem(d.DB))
		}

		favGroup := authed.Group("/favorites")
		{
			favGroup.GET("/furniture", favoriteControllers.ListFurnitureFavorites(d.DB))
			favGroup.POST("/furniture/:furniture_id", favoriteControllers.AddFurnitureFavorite(d.DB))
			favGroup.DELETE("/furniture/:furniture_id", favoriteControllers.RemoveFurnitureFavorite(d.DB))
			favGroup.GET("/gallery", favoriteControllers.ListGalleryFavorites(d.DB))
			favGroup.POST("/gallery/:gallery_id", favoriteControllers.AddGalleryFavorite(d.DB))
			favGroup.DELETE("/gallery/:gallery_id", favoriteControllers.RemoveGalleryFavorite(d.DB))
		}

		authed.POST("/feedbacks", feedbackControllers.CreateFeedback(d.DB))

		companyGroup := authed.Group("/company")
		{
			companyGroup.POST("/request_token", companyControllers.RequestToken(d.DB))
			companyGroup.GET("/furniture", companyControllers.OwnFurniture(d.DB))
		}
	}
}
