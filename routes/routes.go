package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/auth"
	authControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/auth"
	"github.com/LemonieOff/ARDeco-server-sub001/cache"
	"github.com/LemonieOff/ARDeco-server-sub001/invoice"
	"github.com/LemonieOff/ARDeco-server-sub001/mail"
)

// Deps carries everything the route groups need to build handlers.
type Deps struct {
	DB       *gorm.DB
	JWTer    *auth.JWTer
	Cookie   authControllers.CookieOptions
	Mailer   mail.Mailer
	Renderer *invoice.Renderer
	Verifier auth.GoogleVerifier
	Cache    *cache.Cache
	Logger   *zap.Logger
}

// SetupRoutes is the single entry point wiring every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	SetupAuthRoutes(r, d)
	SetupUserRoutes(r, d)
	SetupCatalogRoutes(r, d)
	SetupOrderRoutes(r, d)
	SetupGalleryRoutes(r, d)
	SetupAdminRoutes(r, d)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
