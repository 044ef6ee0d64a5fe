package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/auth"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
)

// SetupAuthRoutes registers the public auth endpoints plus the
// token-protected profile/close pair.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	r.POST("/register", authControllers.Register(d.DB, d.JWTer, d.Mailer, d.Cookie, d.Logger))
	r.POST("/login", authControllers.Login(d.DB, d.JWTer, d.Cookie))
	r.POST("/login/google", authControllers.GoogleLogin(d.DB, d.JWTer, d.Verifier, d.Cookie))
	r.GET("/logout", authControllers.Logout(d.Cookie))
	r.GET("/verify/:token", authControllers.VerifyEmail(d.DB))

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(d.DB, d.JWTer, d.Cookie.Name))
	{
		authed.GET("/profile", authControllers.Profile())
		authed.DELETE("/close", authControllers.CloseAccount(d.DB, d.Cookie))
	}
}
