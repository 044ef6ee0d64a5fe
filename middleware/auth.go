package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/auth"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

const (
	ctxUserKey   = "user"
	ctxUserIDKey = "user_id"
)

// RequireAuth reads the signed token from the session cookie, verifies
// it and loads the acting user. Missing or invalid token is 401; a token
// whose subject no longer resolves to a live user is 403.
func RequireAuth(db *gorm.DB, jwter *auth.JWTer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cookieName)
		if err != nil || tokenStr == "" {
			response.AbortKO(c, 401, response.DescNotConnected)
			return
		}
		claims, err := jwter.Parse(tokenStr)
		if err != nil {
			response.AbortKO(c, 401, response.DescNotConnected)
			return
		}
		var user models.User
		if err := db.First(&user, "id = ? AND deleted = ?", claims.UserID, false).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.AbortKO(c, 403, response.DescNotAllowed)
				return
			}
			response.AbortKO(c, 500, response.DescServerError)
			return
		}
		c.Set(ctxUserKey, &user)
		c.Set(ctxUserIDKey, user.ID)
		c.Next()
	}
}

// OptionalAuth loads the acting user when a valid session cookie is
// present and otherwise lets the request through anonymously. Public
// endpoints that show more to the owner or an admin sit behind it.
func OptionalAuth(db *gorm.DB, jwter *auth.JWTer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cookieName)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}
		claims, err := jwter.Parse(tokenStr)
		if err != nil {
			c.Next()
			return
		}
		var user models.User
		if err := db.First(&user, "id = ? AND deleted = ?", claims.UserID, false).Error; err != nil {
			c.Next()
			return
		}
		c.Set(ctxUserKey, &user)
		c.Set(ctxUserIDKey, user.ID)
		c.Next()
	}
}

// RequireAdmin sits behind RequireAuth and rejects non-admin callers.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			response.AbortKO(c, 403, response.DescNotAllowed)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by RequireAuth or OptionalAuth,
// nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// OwnerOrAdmin is the ownership predicate every resource controller
// applies: the owner may act, anyone else must be an admin.
func OwnerOrAdmin(user *models.User, ownerID uint) bool {
	if user == nil {
		return false
	}
	return user.ID == ownerID || user.IsAdmin()
}
