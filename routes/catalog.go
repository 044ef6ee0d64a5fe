package routes

import (
	"github.com/gin-gonic/gin"

	catalogControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/catalog"
	companyControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/company"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
)

// SetupCatalogRoutes registers the public browse endpoints, the
// company/admin write endpoints, and the X-API-KEY ingest group used by
// company tooling.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	browse := middleware.OptionalAuth(d.DB, d.JWTer, d.Cookie.Name)
	r.GET("/catalog", browse, catalogControllers.ListFurniture(d.DB, d.Cache))
	r.GET("/catalog/:id", browse, catalogControllers.GetFurniture(d.DB))

	authed := r.Group("/catalog")
	authed.Use(middleware.RequireAuth(d.DB, d.JWTer, d.Cookie.Name))
	{
		authed.POST("", catalogControllers.CreateFurniture(d.DB, d.Cache))
		authed.PUT("/:id", catalogControllers.UpdateFurniture(d.DB, d.Cache))
		authed.DELETE("/:id", catalogControllers.ArchiveFurniture(d.DB, d.Cache))
	}

	ingest := r.Group("/ingest")
	ingest.Use(middleware.ValidateAPIKey(d.DB))
	{
		ingest.POST("/furniture", catalogControllers.CreateFurniture(d.DB, d.Cache))
		ingest.GET("/furniture", companyControllers.OwnFurniture(d.DB))
	}
}
