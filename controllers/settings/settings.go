package settingsControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

type UpdateSettingsInput struct {
	Language                 *string `json:"language"`
	DisplayLastnameOnPublic  *bool   `json:"display_lastname_on_public"`
	DisplayEmailOnPublic     *bool   `json:"display_email_on_public"`
	AutomaticNewGalleryShare *bool   `json:"automatic_new_gallery_share"`
	NotificationsEnabled     *bool   `json:"notifications_enabled"`
}

// GET /settings/:user_id
func GetSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		actor := middleware.CurrentUser(c)
		if !middleware.OwnerOrAdmin(actor, uint(userID)) {
			response.NotAllowed(c)
			return
		}

		var settings models.UserSettings
		if err := db.First(&settings, "user_id = ?", uint(userID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Settings not found")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Settings", settings)
	}
}

// PUT /settings/:user_id
func UpdateSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		actor := middleware.CurrentUser(c)
		if !middleware.OwnerOrAdmin(actor, uint(userID)) {
			response.NotAllowed(c)
			return
		}

		var settings models.UserSettings
		if err := db.First(&settings, "user_id = ?", uint(userID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Settings not found")
				return
			}
			response.InternalError(c)
			return
		}

		var input UpdateSettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		updates := make(map[string]interface{})
		if input.Language != nil {
			updates["language"] = *input.Language
		}
		if input.DisplayLastnameOnPublic != nil {
			updates["display_lastname_on_public"] = *input.DisplayLastnameOnPublic
		}
		if input.DisplayEmailOnPublic != nil {
			updates["display_email_on_public"] = *input.DisplayEmailOnPublic
		}
		if input.AutomaticNewGalleryShare != nil {
			updates["automatic_new_gallery_share"] = *input.AutomaticNewGalleryShare
		}
		if input.NotificationsEnabled != nil {
			updates["notifications_enabled"] = *input.NotificationsEnabled
		}
		if len(updates) > 0 {
			if err := db.Model(&settings).Updates(updates).Error; err != nil {
				response.InternalError(c)
				return
			}
		}
		response.OK(c, http.StatusOK, "Settings updated", settings)
	}
}
