package catalogControllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/cache"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

const (
	listCacheKey = "catalog:list"
	listCacheTTL = 5 * time.Minute
)

type ColorInput struct {
	Color   string `json:"color" binding:"required"`
	ModelID int    `json:"model_id"`
}

type CreateFurnitureInput struct {
	Name   string       `json:"name" binding:"required"`
	Price  int          `json:"price" binding:"required,min=1"`
	Height int          `json:"height"`
	Width  int          `json:"width"`
	Depth  int          `json:"depth"`
	Style  string       `json:"style"`
	Room   string       `json:"room"`
	Colors []ColorInput `json:"colors" binding:"required,min=1"`
}

type UpdateFurnitureInput struct {
	Name   *string `json:"name"`
	Price  *int    `json:"price"`
	Height *int    `json:"height"`
	Width  *int    `json:"width"`
	Depth  *int    `json:"depth"`
	Style  *string `json:"style"`
	Room   *string `json:"room"`
	Active *bool   `json:"active"`
}

func queryActive(db *gorm.DB, style, room string) ([]models.Furniture, error) {
	var items []models.Furniture
	q := db.Preload("Colors").Where("active = ?", true)
	if style != "" {
		q = q.Where("style = ?", style)
	}
	if room != "" {
		q = q.Where("room = ?", room)
	}
	err := q.Order("created_at desc").Find(&items).Error
	return items, err
}

// GET /catalog: public. The unfiltered listing runs through the
// read-through cache since the catalog is read-mostly; filtered queries
// go straight to the store.
func ListFurniture(db *gorm.DB, ch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		style := c.Query("style")
		room := c.Query("room")

		if style == "" && room == "" && ch != nil {
			b, err := ch.GetOrLoad(c.Request.Context(), listCacheKey, listCacheTTL,
				func(ctx context.Context) ([]byte, error) {
					items, err := queryActive(db, "", "")
					if err != nil {
						return nil, err
					}
					return json.Marshal(items)
				})
			if err != nil {
				response.InternalError(c)
				return
			}
			var items []models.Furniture
			if err := json.Unmarshal(b, &items); err != nil {
				response.InternalError(c)
				return
			}
			response.OK(c, http.StatusOK, "Catalog", items)
			return
		}

		items, err := queryActive(db, style, room)
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Catalog", items)
	}
}

// GET /catalog/:id: public for active rows; inactive rows are visible
// to the owning company and admins only.
func GetFurniture(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		var item models.Furniture
		if err := db.Preload("Colors").First(&item, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Furniture not found")
				return
			}
			response.InternalError(c)
			return
		}
		if !item.Active {
			actor := middleware.CurrentUser(c)
			if !middleware.OwnerOrAdmin(actor, item.CompanyID) {
				response.KO(c, http.StatusNotFound, "Furniture not found")
				return
			}
		}
		response.OK(c, http.StatusOK, "Furniture", item)
	}
}

// POST /catalog: company accounts create rows they own; admins may
// create on behalf of any company via company_id.
func CreateFurniture(db *gorm.DB, ch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.CurrentUser(c)
		if actor == nil {
			response.NotConnected(c)
			return
		}
		if !actor.IsCompany() && !actor.IsAdmin() {
			response.NotAllowed(c)
			return
		}

		var input CreateFurnitureInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		companyID := actor.ID
		if actor.IsAdmin() {
			if v := c.Query("company_id"); v != "" {
				id, err := strconv.ParseUint(v, 10, 32)
				if err != nil {
					response.KO(c, http.StatusBadRequest, "Invalid company_id")
					return
				}
				companyID = uint(id)
			}
		}

		item := models.Furniture{
			Name:      input.Name,
			Price:     input.Price,
			Height:    input.Height,
			Width:     input.Width,
			Depth:     input.Depth,
			Style:     input.Style,
			Room:      input.Room,
			CompanyID: companyID,
			Active:    true,
		}
		for _, col := range input.Colors {
			item.Colors = append(item.Colors, models.FurnitureColor{
				Color:   col.Color,
				ModelID: col.ModelID,
			})
		}
		if err := db.Create(&item).Error; err != nil {
			response.InternalError(c)
			return
		}
		ch.Invalidate(c.Request.Context(), listCacheKey)
		response.OK(c, http.StatusCreated, "Furniture created", item)
	}
}

// PUT /catalog/:id
func UpdateFurniture(db *gorm.DB, ch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		actor := middleware.CurrentUser(c)
		var item models.Furniture
		if err := db.First(&item, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Furniture not found")
				return
			}
			response.InternalError(c)
			return
		}
		if !middleware.OwnerOrAdmin(actor, item.CompanyID) {
			response.NotAllowed(c)
			return
		}

		var input UpdateFurnitureInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Price != nil {
			if *input.Price < 1 {
				response.KO(c, http.StatusBadRequest, "Price must be positive")
				return
			}
			updates["price"] = *input.Price
		}
		if input.Height != nil {
			updates["height"] = *input.Height
		}
		if input.Width != nil {
			updates["width"] = *input.Width
		}
		if input.Depth != nil {
			updates["depth"] = *input.Depth
		}
		if input.Style != nil {
			updates["style"] = *input.Style
		}
		if input.Room != nil {
			updates["room"] = *input.Room
		}
		if input.Active != nil {
			updates["active"] = *input.Active
		}
		if len(updates) > 0 {
			if err := db.Model(&item).Updates(updates).Error; err != nil {
				response.InternalError(c)
				return
			}
		}
		ch.Invalidate(c.Request.Context(), listCacheKey)
		response.OK(c, http.StatusOK, "Furniture updated", item)
	}
}

// DELETE /catalog/:id: archives the row instead of destroying it so
// existing order snapshots keep a valid reference.
func ArchiveFurniture(db *gorm.DB, ch *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid id")
			return
		}
		actor := middleware.CurrentUser(c)
		var item models.Furniture
		if err := db.First(&item, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Furniture not found")
				return
			}
			response.InternalError(c)
			return
		}
		if !middleware.OwnerOrAdmin(actor, item.CompanyID) {
			response.NotAllowed(c)
			return
		}
		if err := db.Model(&item).Update("active", false).Error; err != nil {
			response.InternalError(c)
			return
		}
		ch.Invalidate(c.Request.Context(), listCacheKey)
		response.OK(c, http.StatusOK, "Furniture archived", nil)
	}
}
