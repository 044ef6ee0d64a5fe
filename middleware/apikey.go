package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

// ValidateAPIKey guards company ingest endpoints. The key is resolved
// against the company account it was issued to, and that account is
// exposed to the handler as the acting user.
func ValidateAPIKey(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey == "" {
			response.AbortKO(c, 401, "Invalid or missing API key")
			return
		}
		var company models.User
		err := db.First(&company, "company_api_key = ? AND role = ? AND deleted = ?",
			apiKey, models.RoleCompany, false).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.AbortKO(c, 401, "Invalid or missing API key")
				return
			}
			response.AbortKO(c, 500, response.DescServerError)
			return
		}
		c.Set(ctxUserKey, &company)
		c.Set(ctxUserIDKey, company.ID)
		c.Next()
	}
}
