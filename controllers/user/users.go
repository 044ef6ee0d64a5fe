package userControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/auth"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

type UpdateUserInput struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Phone           *string `json:"phone"`
	City            *string `json:"city"`
	Role            *string `json:"role"`
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"password_confirm"`
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.KO(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func loadUser(c *gin.Context, db *gorm.DB, id uint) (*models.User, bool) {
	var user models.User
	if err := db.First(&user, "id = ? AND deleted = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.KO(c, http.StatusNotFound, "User not found")
		} else {
			response.InternalError(c)
		}
		return nil, false
	}
	return &user, true
}

// GET /user/:id
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		actor := middleware.CurrentUser(c)
		target, ok := loadUser(c, db, id)
		if !ok {
			return
		}
		if !middleware.OwnerOrAdmin(actor, target.ID) {
			response.NotAllowed(c)
			return
		}
		response.OK(c, http.StatusOK, "User", target)
	}
}

// GET /user (admin only, wired behind RequireAdmin)
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Where("deleted = ?", false).Order("created_at desc").Find(&users).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Users", users)
	}
}

// PUT /user/:id
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		actor := middleware.CurrentUser(c)
		target, ok := loadUser(c, db, id)
		if !ok {
			return
		}
		if !middleware.OwnerOrAdmin(actor, target.ID) {
			response.NotAllowed(c)
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		updates := make(map[string]interface{})
		if input.FirstName != nil {
			updates["first_name"] = *input.FirstName
		}
		if input.LastName != nil {
			updates["last_name"] = *input.LastName
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.City != nil {
			updates["city"] = *input.City
		}
		if input.Role != nil {
			// Role transitions are admin-gated.
			if !actor.IsAdmin() {
				response.NotAllowed(c)
				return
			}
			if !models.ValidRole(*input.Role) {
				response.KO(c, http.StatusBadRequest, "Invalid role")
				return
			}
			updates["role"] = *input.Role
		}
		if input.Password != nil {
			if input.PasswordConfirm == nil || *input.Password != *input.PasswordConfirm {
				response.KO(c, http.StatusBadRequest, "Passwords do not match")
				return
			}
			hash, err := auth.HashPassword(*input.Password)
			if err != nil {
				response.InternalError(c)
				return
			}
			updates["password_hash"] = hash
		}

		if len(updates) > 0 {
			if err := db.Model(target).Updates(updates).Error; err != nil {
				response.InternalError(c)
				return
			}
		}
		response.OK(c, http.StatusOK, "User updated", target)
	}
}

// DELETE /user/:id (soft delete)
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		actor := middleware.CurrentUser(c)
		target, ok := loadUser(c, db, id)
		if !ok {
			return
		}
		if !middleware.OwnerOrAdmin(actor, target.ID) {
			response.NotAllowed(c)
			return
		}
		if err := db.Model(target).Update("deleted", true).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "User deleted", nil)
	}
}

// PUT /user/:id/picture: profile pictures are a fixed enumeration.
func SetProfilePicture(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		actor := middleware.CurrentUser(c)
		target, ok := loadUser(c, db, id)
		if !ok {
			return
		}
		if !middleware.OwnerOrAdmin(actor, target.ID) {
			response.NotAllowed(c)
			return
		}

		var input struct {
			PictureID *int `json:"picture_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		if *input.PictureID < 0 || *input.PictureID > 4 {
			response.KO(c, http.StatusBadRequest, "Picture id must be between 0 and 4")
			return
		}
		if err := db.Model(target).Update("profile_picture_id", *input.PictureID).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Profile picture updated", target)
	}
}
