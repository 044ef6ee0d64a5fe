package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

type AddItemsInput struct {
	ColorIDs []uint `json:"color_ids" binding:"required,min=1"`
}

// CartLine is the read shape: a cart item joined with its catalog data.
type CartLine struct {
	ColorID       uint   `json:"color_id"`
	FurnitureID   uint   `json:"furniture_id"`
	FurnitureName string `json:"furniture_name"`
	Color         string `json:"color"`
	Price         int    `json:"price"`
	Quantity      int    `json:"quantity"`
	Amount        int    `json:"amount"`
}

type CartView struct {
	CartID uint       `json:"cart_id"`
	Lines  []CartLine `json:"lines"`
	Total  int        `json:"total"`
}

// AddItems resolves each requested color id and merges it into the
// user's single cart: present lines get quantity+1, new lines start at
// 1. Unresolvable ids are dropped (logged, not reported per-item). The
// cart row is created under its user_id unique index inside the same
// transaction, so concurrent first adds converge on one cart.
func AddItems(db *gorm.DB, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}

		var input AddItemsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			cart := models.Cart{UserID: user.ID}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoNothing: true,
			}).Create(&cart).Error; err != nil {
				return err
			}
			if err := tx.First(&cart, "user_id = ?", user.ID).Error; err != nil {
				return err
			}

			for _, colorID := range input.ColorIDs {
				var color models.FurnitureColor
				if err := tx.First(&color, "id = ?", colorID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						l.Warn("cart add: unknown color id dropped",
							zap.Uint("user_id", user.ID), zap.Uint("color_id", colorID))
						continue
					}
					return err
				}

				var item models.CartItem
				err := tx.First(&item, "cart_id = ? AND color_id = ?", cart.ID, colorID).Error
				switch {
				case errors.Is(err, gorm.ErrRecordNotFound):
					item = models.CartItem{
						CartID:   cart.ID,
						ColorID:  colorID,
						Quantity: 1,
						AddedAt:  time.Now(),
					}
					if err := tx.Create(&item).Error; err != nil {
						return err
					}
				case err != nil:
					return err
				default:
					if err := tx.Model(&item).Update("quantity", item.Quantity+1).Error; err != nil {
						return err
					}
				}
			}

			// All requested ids unresolvable and nothing else in the
			// cart: do not keep an empty cart row around.
			var count int64
			if err := tx.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return tx.Delete(&models.Cart{}, cart.ID).Error
			}
			return nil
		})
		if err != nil {
			response.InternalError(c)
			return
		}

		view, err := loadCartView(db, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.OK(c, http.StatusOK, "Cart is empty", nil)
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Cart updated", view)
	}
}

// RemoveItem decrements the line's quantity. Zero deletes the line, and
// an emptied cart is deleted entirely.
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		colorID, err := strconv.ParseUint(c.Param("color_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid color id")
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var cart models.Cart
			if err := tx.First(&cart, "user_id = ?", user.ID).Error; err != nil {
				return err
			}
			var item models.CartItem
			if err := tx.First(&item, "cart_id = ? AND color_id = ?", cart.ID, uint(colorID)).Error; err != nil {
				return err
			}

			if item.Quantity > 1 {
				return tx.Model(&item).Update("quantity", item.Quantity-1).Error
			}
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
			var count int64
			if err := tx.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return tx.Delete(&cart).Error
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Cart item not found")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Cart item removed", nil)
	}
}

// GetCart returns the cart joined through color to furniture, with the
// per-line price and a computed total.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		view, err := loadCartView(db, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Cart not found")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Cart", view)
	}
}

// GET /admin/user-cart/:user_id
func GetUserCartAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
		if err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid user id")
			return
		}
		view, err := loadCartView(db, uint(userID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Cart not found")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Cart", view)
	}
}

func loadCartView(db *gorm.DB, userID uint) (*CartView, error) {
	var cart models.Cart
	if err := db.Preload("Items").First(&cart, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	view := &CartView{CartID: cart.ID}
	for _, item := range cart.Items {
		var color models.FurnitureColor
		if err := db.First(&color, "id = ?", item.ColorID).Error; err != nil {
			return nil, err
		}
		var furniture models.Furniture
		if err := db.First(&furniture, "id = ?", color.FurnitureID).Error; err != nil {
			return nil, err
		}
		line := CartLine{
			ColorID:       item.ColorID,
			FurnitureID:   furniture.ID,
			FurnitureName: furniture.Name,
			Color:         color.Color,
			Price:         furniture.Price,
			Quantity:      item.Quantity,
			Amount:        furniture.Price * item.Quantity,
		}
		view.Lines = append(view.Lines, line)
		view.Total += line.Amount
	}
	return view, nil
}
