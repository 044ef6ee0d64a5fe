package feedbackControllers

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

type CreateFeedbackInput struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// POST /feedbacks
func CreateFeedback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		var input CreateFeedbackInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		if !models.ValidFeedbackType(input.Type) {
			response.KO(c, http.StatusBadRequest, "Type must be one of feedback, suggestion, bug")
			return
		}
		feedback := models.Feedback{
			UserID:      user.ID,
			Type:        models.FeedbackType(input.Type),
			Description: input.Description,
		}
		if err := db.Create(&feedback).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusCreated, "Feedback created", feedback)
	}
}

// GET /admin/feedbacks: optionally filtered by processed state.
func ListFeedbacks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Order("created_at desc")
		if v := c.Query("processed"); v != "" {
			processed, err := strconv.ParseBool(v)
			if err != nil {
				response.KO(c, http.StatusBadRequest, "Invalid processed filter")
				return
			}
			q = q.Where("processed = ?", processed)
		}
		var feedbacks []models.Feedback
		if err := q.Find(&feedbacks).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Feedbacks", feedbacks)
	}
}

// PUT /admin/feedbacks/:id/process
func ProcessFeedback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		var feedback models.Feedback
		if err := db.First(&feedback, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Feedback not found")
				return
			}
			response.InternalError(c)
			return
		}
		if feedback.Processed {
			response.KO(c, http.StatusConflict, "Feedback already processed")
			return
		}
		now := time.Now()
		updates := map[string]interface{}{
			"processed":      true,
			"processed_date": &now,
		}
		if err := db.Model(&feedback).Updates(updates).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Feedback processed", feedback)
	}
}

// DELETE /admin/feedbacks/:id
func DeleteFeedback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		result := db.Delete(&models.Feedback{}, uint(id))
		if result.Error != nil {
			response.InternalError(c)
			return
		}
		if result.RowsAffected == 0 {
			response.KO(c, http.StatusNotFound, "Feedback not found")
			return
		}
		response.OK(c, http.StatusOK, "Feedback deleted", nil)
	}
}
