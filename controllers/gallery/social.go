package galleryControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

// Likes, comments and reports hang off a gallery item. Duplicate
// likes/reports are stopped by the paired unique index and mapped to
// 409 here (requires TranslateError on the gorm config).

// POST /gallery/:id/like
func LikeGallery(db *gorm.DB) gin.HandlerFunc {
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
		like := models.GalleryLike{UserID: user.ID, GalleryID: item.ID}
		if err := db.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.KO(c, http.StatusConflict, "Already liked")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusCreated, "Liked", like)
	}
}

// DELETE /gallery/:id/like
func UnlikeGallery(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := galleryID(c)
		if !ok {
			return
		}
		user := middleware.CurrentUser(c)
		result := db.Where("user_id = ? AND gallery_id = ?", user.ID, id).Delete(&models.GalleryLike{})
		if result.Error != nil {
			response.InternalError(c)
			return
		}
		if result.RowsAffected == 0 {
			response.KO(c, http.StatusNotFound, "Like not found")
			return
		}
		response.OK(c, http.StatusOK, "Unliked", nil)
	}
}

type CommentInput struct {
	Comment string `json:"comment" binding:"required"`
}

// GET /gallery/:id/comments
func ListComments(db *gorm.DB) gin.HandlerFunc {
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
		var comments []models.GalleryComment
		if err := db.Where("gallery_id = ?", id).Order("created_at asc").Find(&comments).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Comments", comments)
	}
}

// POST /gallery/:id/comments
func CreateComment(db *gorm.DB) gin.HandlerFunc {
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
		var input CommentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		comment := models.GalleryComment{
			UserID:    user.ID,
			GalleryID: item.ID,
			Comment:   input.Comment,
		}
		if err := db.Create(&comment).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusCreated, "Comment created", comment)
	}
}

// PUT /gallery/comments/:comment_id: editing stamps edited/edit_date.
func EditComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		user := middleware.CurrentUser(c)
		var comment models.GalleryComment
		if err := db.First(&comment, "id = ?", uint(commentID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Comment not found")
				return
			}
			response.InternalError(c)
			return
		}
		if !middleware.OwnerOrAdmin(user, comment.UserID) {
			response.NotAllowed(c)
			return
		}
		var input CommentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		now := time.Now()
		updates := map[string]interface{}{
			"comment":   input.Comment,
			"edited":    true,
			"edit_date": &now,
		}
		if err := db.Model(&comment).Updates(updates).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Comment updated", comment)
	}
}

// DELETE /gallery/comments/:comment_id
func DeleteComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		user := middleware.CurrentUser(c)
		var comment models.GalleryComment
		if err := db.First(&comment, "id = ?", uint(commentID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Comment not found")
				return
			}
			response.InternalError(c)
			return
		}
		if !middleware.OwnerOrAdmin(user, comment.UserID) {
			response.NotAllowed(c)
			return
		}
		if err := db.Delete(&comment).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Comment deleted", nil)
	}
}

type ReportInput struct {
	Reason string `json:"reason"`
}

// POST /gallery/:id/report: once per user per item.
func ReportGallery(db *gorm.DB) gin.HandlerFunc {
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
		var input ReportInput
		if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		report := models.GalleryReport{
			UserID:    user.ID,
			GalleryID: item.ID,
			Reason:    input.Reason,
		}
		if err := db.Create(&report).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.KO(c, http.StatusConflict, "Already reported")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusCreated, "Reported", report)
	}
}

// GET /admin/reports
func ListReports(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reports []models.GalleryReport
		if err := db.Order("created_at desc").Find(&reports).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Reports", reports)
	}
}

// DELETE /admin/reports/:report_id
func DismissReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID, err := strconv.ParseUint(c.Param("report_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		result := db.Delete(&models.GalleryReport{}, uint(reportID))
		if result.Error != nil {
			response.InternalError(c)
			return
		}
		if result.RowsAffected == 0 {
			response.KO(c, http.StatusNotFound, "Report not found")
			return
		}
		response.OK(c, http.StatusOK, "Report dismissed", nil)
	}
}
