package companyControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

// POST /company/request_token: company accounts only. Issues a fresh
// API key, rotating any previous one.
func RequestToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		if !user.IsCompany() {
			response.NotAllowed(c)
			return
		}
		key := uuid.NewString()
		if err := db.Model(user).Update("company_api_key", key).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "API key issued", gin.H{"api_key": key})
	}
}

// GET /admin/companies
func ListCompanies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var companies []models.User
		if err := db.Where("role = ? AND deleted = ?", models.RoleCompany, false).
			Order("created_at desc").Find(&companies).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Companies", companies)
	}
}

// PUT /admin/companies/promote/:user_id: promotes a client account to
// the company tier.
func PromoteToCompany(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		var user models.User
		if err := db.First(&user, "id = ? AND deleted = ?", uint(userID), false).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "User not found")
				return
			}
			response.InternalError(c)
			return
		}
		if user.Role == models.RoleCompany {
			response.KO(c, http.StatusConflict, "Already a company account")
			return
		}
		if err := db.Model(&user).Update("role", models.RoleCompany).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Promoted to company", user)
	}
}

// GET /company/furniture: the company's own catalog rows, active or
// not. Also reachable through the X-API-KEY gate for ingest tooling.
func OwnFurniture(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		if !user.IsCompany() && !user.IsAdmin() {
			response.NotAllowed(c)
			return
		}
		var items []models.Furniture
		if err := db.Preload("Colors").Where("company_id = ?", user.ID).
			Order("created_at desc").Find(&items).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Company furniture", items)
	}
}
