package routes

import (
	"github.com/gin-gonic/gin"

	changelogControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/changelog"
	galleryControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/gallery"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
)

// SetupGalleryRoutes registers the gallery resource with its likes,
// comments and reports, plus the public changelog reads.
func SetupGalleryRoutes(r *gin.Engine, d Deps) {
	r.GET("/changelog", changelogControllers.ListChangelogs(d.DB))
	r.GET("/changelog/:id", changelogControllers.GetChangelog(d.DB))

	gallery := r.Group("/gallery")
	gallery.Use(middleware.RequireAuth(d.DB, d.JWTer, d.Cookie.Name))
	{
		gallery.GET("", galleryControllers.ListGallery(d.DB))
		gallery.GET("/:id", galleryControllers.GetGallery(d.DB))
		gallery.POST("", galleryControllers.CreateGallery(d.DB))
		gallery.PUT("/:id", galleryControllers.UpdateGallery(d.DB))
		gallery.DELETE("/:id", galleryControllers.DeleteGallery(d.DB))

		gallery.POST("/:id/like", galleryControllers.LikeGallery(d.DB))
		gallery.DELETE("/:id/like", galleryControllers.UnlikeGallery(d.DB))

		gallery.GET("/:id/comments", galleryControllers.ListComments(d.DB))
		gallery.POST("/:id/comments", galleryControllers.CreateComment(d.DB))

		gallery.POST("/:id/report", galleryControllers.ReportGallery(d.DB))
	}

	comments := r.Group("/comments")
	comments.Use(middleware.RequireAuth(d.DB, d.JWTer, d.Cookie.Name))
	{
		comments.PUT("/:comment_id", galleryControllers.EditComment(d.DB))
		comments.DELETE("/:comment_id", galleryControllers.DeleteComment(d.DB))
	}
}
