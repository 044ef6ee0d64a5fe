package favoriteControllers

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

// Favorites are strictly per-caller resources; there is no admin
// listing of someone else's favorites outside the generic owner gate.

// GET /favorites/furniture
func ListFurnitureFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		var favs []models.FavoriteFurniture
		if err := db.Where("user_id = ?", user.ID).Order("created_at desc").Find(&favs).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Furniture favorites", favs)
	}
}

// POST /favorites/furniture/:furniture_id
func AddFurnitureFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		furnitureID, err := strconv.ParseUint(c.Param("furniture_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		var furniture models.Furniture
		if err := db.First(&furniture, "id = ?", uint(furnitureID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Furniture not found")
				return
			}
			response.InternalError(c)
			return
		}
		fav := models.FavoriteFurniture{UserID: user.ID, FurnitureID: furniture.ID}
		if err := db.Create(&fav).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.KO(c, http.StatusConflict, "Already in favorites")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusCreated, "Added to favorites", fav)
	}
}

// DELETE /favorites/furniture/:furniture_id
func RemoveFurnitureFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		furnitureID, err := strconv.ParseUint(c.Param("furniture_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		result := db.Where("user_id = ? AND furniture_id = ?", user.ID, uint(furnitureID)).
			Delete(&models.FavoriteFurniture{})
		if result.Error != nil {
			response.InternalError(c)
			return
		}
		if result.RowsAffected == 0 {
			response.KO(c, http.StatusNotFound, "Favorite not found")
			return
		}
		response.OK(c, http.StatusOK, "Removed from favorites", nil)
	}
}

// GET /favorites/gallery
func ListGalleryFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		var favs []models.FavoriteGallery
		if err := db.Where("user_id = ?", user.ID).Order("created_at desc").Find(&favs).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Gallery favorites", favs)
	}
}

// POST /favorites/gallery/:gallery_id
func AddGalleryFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		galleryID, err := strconv.ParseUint(c.Param("gallery_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		var item models.GalleryItem
		if err := db.First(&item, "id = ?", uint(galleryID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Gallery item not found")
				return
			}
			response.InternalError(c)
			return
		}
		if !item.Visibility && !middleware.OwnerOrAdmin(user, item.UserID) {
			response.NotAllowed(c)
			return
		}
		fav := models.FavoriteGallery{UserID: user.ID, GalleryID: item.ID}
		if err := db.Create(&fav).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.KO(c, http.StatusConflict, "Already in favorites")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusCreated, "Added to favorites", fav)
	}
}

// DELETE /favorites/gallery/:gallery_id
func RemoveGalleryFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		galleryID, err := strconv.ParseUint(c.Param("gallery_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		result := db.Where("user_id = ? AND gallery_id = ?", user.ID, uint(galleryID)).
			Delete(&models.FavoriteGallery{})
		if result.Error != nil {
			response.InternalError(c)
			return
		}
		if result.RowsAffected == 0 {
			response.KO(c, http.StatusNotFound, "Favorite not found")
			return
		}
		response.OK(c, http.StatusOK, "Removed from favorites", nil)
	}
}
