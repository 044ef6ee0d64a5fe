package galleryControllers

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

type CreateGalleryInput struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Visibility   bool   `json:"visibility"`
	Room         string `json:"room"`
	Style        string `json:"style"`
	ModelData    string `json:"model_data"`
	FurnitureIDs string `json:"furniture_ids"`
}

type UpdateGalleryInput struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Visibility   *bool   `json:"visibility"`
	Room         *string `json:"room"`
	Style        *string `json:"style"`
	ModelData    *string `json:"model_data"`
	FurnitureIDs *string `json:"furniture_ids"`
}

func galleryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.KO(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func loadGallery(c *gin.Context, db *gorm.DB, id uint) (*models.GalleryItem, bool) {
	var item models.GalleryItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.KO(c, http.StatusNotFound, "Gallery item not found")
		} else {
			response.InternalError(c)
		}
		return nil, false
	}
	return &item, true
}

// GET /gallery: public items, plus the caller's own hidden ones.
func ListGallery(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		var items []models.GalleryItem
		q := db.Order("created_at desc")
		if !user.IsAdmin() {
			q = q.Where("visibility = ? OR user_id = ?", true, user.ID)
		}
		if err := q.Find(&items).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Gallery", items)
	}
}

// GET /gallery/:id: visibility gates reads to owner/admin.
func GetGallery(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := galleryID(c)
		if !ok {
			return
		}
		user := middleware.CurrentUser(c)
		item, ok := loadGallery(c, db, id)
		if !ok {
			return
		}
		if !item.Visibility && !middleware.OwnerOrAdmin(user, item.UserID) {
			response.NotAllowed(c)
			return
		}
		response.OK(c, http.StatusOK, "Gallery item", item)
	}
}

// POST /gallery
func CreateGallery(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		var input CreateGalleryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		item := models.GalleryItem{
			UserID:       user.ID,
			Name:         input.Name,
			Description:  input.Description,
			Visibility:   input.Visibility,
			Room:         input.Room,
			Style:        input.Style,
			ModelData:    input.ModelData,
			FurnitureIDs: input.FurnitureIDs,
		}
		if err := db.Create(&item).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusCreated, "Gallery item created", item)
	}
}

// PUT /gallery/:id
func UpdateGallery(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := galleryID(c)
		if !ok {
			return
		}
		user := middleware.CurrentUser(c)
		item, ok := loadGallery(c, db, id)
		if !ok {
			return
		}
		if !middleware.OwnerOrAdmin(user, item.UserID) {
			response.NotAllowed(c)
			return
		}

		var input UpdateGalleryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Visibility != nil {
			updates["visibility"] = *input.Visibility
		}
		if input.Room != nil {
			updates["room"] = *input.Room
		}
		if input.Style != nil {
			updates["style"] = *input.Style
		}
		if input.ModelData != nil {
			updates["model_data"] = *input.ModelData
		}
		if input.FurnitureIDs != nil {
			updates["furniture_ids"] = *input.FurnitureIDs
		}
		if len(updates) > 0 {
			if err := db.Model(item).Updates(updates).Error; err != nil {
				response.InternalError(c)
				return
			}
		}
		response.OK(c, http.StatusOK, "Gallery item updated", item)
	}
}

// DELETE /gallery/:id: also drops likes, comments and reports.
func DeleteGallery(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := galleryID(c)
		if !ok {
			return
		}
		user := middleware.CurrentUser(c)
		item, ok := loadGallery(c, db, id)
		if !ok {
			return
		}
		if !middleware.OwnerOrAdmin(user, item.UserID) {
			response.NotAllowed(c)
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("gallery_id = ?", item.ID).Delete(&models.GalleryLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("gallery_id = ?", item.ID).Delete(&models.GalleryComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("gallery_id = ?", item.ID).Delete(&models.GalleryReport{}).Error; err != nil {
				return err
			}
			if err := tx.Where("gallery_id = ?", item.ID).Delete(&models.FavoriteGallery{}).Error; err != nil {
				return err
			}
			return tx.Delete(item).Error
		})
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Gallery item deleted", nil)
	}
}
