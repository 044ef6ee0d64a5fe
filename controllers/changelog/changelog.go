package changelogControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

type ChangelogInput struct {
	Version   string `json:"version" binding:"required"`
	Name      string `json:"name"`
	Changelog string `json:"changelog"`
	Date      string `json:"date"` // "2006-01-02", defaults to today
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// GET /changelog: public.
func ListChangelogs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []models.Changelog
		if err := db.Order("date desc").Find(&entries).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Changelog", entries)
	}
}

// GET /changelog/:id: public.
func GetChangelog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		var entry models.Changelog
		if err := db.First(&entry, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Changelog entry not found")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Changelog entry", entry)
	}
}

// POST /admin/changelog
func CreateChangelog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ChangelogInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		date, err := parseDate(input.Date)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Date must be YYYY-MM-DD")
			return
		}
		entry := models.Changelog{
			Version:   input.Version,
			Name:      input.Name,
			Changelog: input.Changelog,
			Date:      date,
		}
		if err := db.Create(&entry).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusCreated, "Changelog entry created", entry)
	}
}

// PUT /admin/changelog/:id
func UpdateChangelog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		var entry models.Changelog
		if err := db.First(&entry, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Changelog entry not found")
				return
			}
			response.InternalError(c)
			return
		}
		var input ChangelogInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		date, err := parseDate(input.Date)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Date must be YYYY-MM-DD")
			return
		}
		updates := map[string]interface{}{
			"version":   input.Version,
			"name":      input.Name,
			"changelog": input.Changelog,
			"date":      date,
		}
		if err := db.Model(&entry).Updates(updates).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Changelog entry updated", entry)
	}
}

// DELETE /admin/changelog/:id
func DeleteChangelog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		result := db.Delete(&models.Changelog{}, uint(id))
		if result.Error != nil {
			response.InternalError(c)
			return
		}
		if result.RowsAffected == 0 {
			response.KO(c, http.StatusNotFound, "Changelog entry not found")
			return
		}
		response.OK(c, http.StatusOK, "Changelog entry deleted", nil)
	}
}
