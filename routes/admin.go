package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/cart"
	catalogControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/catalog"
	changelogControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/changelog"
	companyControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/company"
	feedbackControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/feedback"
	galleryControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/gallery"
	orderControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/order"
	userControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/user"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
)

// SetupAdminRoutes registers every admin-gated endpoint behind the
// token middleware plus the admin role check.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(d.DB, d.JWTer, d.Cookie.Name), middleware.RequireAdmin())
	{
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB))
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetUserCartAdmin(d.DB))

		adminGroup.GET("/companies", companyControllers.ListCompanies(d.DB))
		adminGroup.PUT("/companies/promote/:user_id", companyControllers.PromoteToCompany(d.DB))

		adminGroup.GET("/catalog/export-excel", catalogControllers.ExportCatalogToExcel(d.DB))

		adminGroup.GET("/orders/ws", orderControllers.OrderFeedHandler)

		adminGroup.GET("/reports", galleryControllers.ListReports(d.DB))
		adminGroup.DELETE("/reports/:report_id", galleryControllers.DismissReport(d.DB))

		adminGroup.GET("/feedbacks", feedbackControllers.ListFeedbacks(d.DB))
		adminGroup.PUT("/feedbacks/:id/process", feedbackControllers.ProcessFeedback(d.DB))
		adminGroup.DELETE("/feedbacks/:id", feedbackControllers.DeleteFeedback(d.DB))

		changelogGroup := adminGroup.Group("/changelog")
		{
			changelogGroup.POST("", changelogControllers.CreateChangelog(d.DB))
			changelogGroup.PUT("/:id", changelogControllers.UpdateChangelog(d.DB))
			changelogGroup.DELETE("/:id", changelogControllers.DeleteChangelog(d.DB))
		}
	}
}
