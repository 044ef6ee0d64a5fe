package orderControllers

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/invoice"
	"github.com/LemonieOff/ARDeco-server-sub001/mail"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

type CreateOrderInput struct {
	DeliveryCountry string `json:"delivery_country"`
	DeliveryCity    string `json:"delivery_city"`
	DeliveryStreet  string `json:"delivery_street"`
	DeliveryPostal  string `json:"delivery_postal_code"`
}

// CreateOrder snapshots the caller's cart into an immutable order. The
// cart lines are joined to the catalog one last time to freeze
// name/price/color, then the cart is deleted in the same transaction.
// The invoice PDF is written synchronously before responding; mailing
// it is best-effort and never fails the request.
func CreateOrder(db *gorm.DB, renderer *invoice.Renderer, mailer mail.Mailer, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			var cart models.Cart
			if err := tx.Preload("Items").First(&cart, "user_id = ?", user.ID).Error; err != nil {
				return err
			}
			if len(cart.Items) == 0 {
				return gorm.ErrRecordNotFound
			}

			order = models.Order{
				UserID:         user.ID,
				DeliveryCity:   input.DeliveryCity,
				DeliveryStreet: input.DeliveryStreet,
				DeliveryPostal: input.DeliveryPostal,
			}
			if input.DeliveryCountry != "" {
				order.DeliveryCountry = input.DeliveryCountry
			}

			for _, item := range cart.Items {
				var color models.FurnitureColor
				if err := tx.First(&color, "id = ?", item.ColorID).Error; err != nil {
					return err
				}
				var furniture models.Furniture
				if err := tx.First(&furniture, "id = ?", color.FurnitureID).Error; err != nil {
					return err
				}
				line := models.OrderItem{
					FurnitureID:   furniture.ID,
					ColorID:       color.ID,
					FurnitureName: furniture.Name,
					Color:         color.Color,
					Price:         furniture.Price,
					Quantity:      item.Quantity,
					Amount:        furniture.Price * item.Quantity,
				}
				order.Items = append(order.Items, line)
				order.TotalAmount += line.Amount
			}

			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			// The order is the durable copy; the cart is consumed.
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cart).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusNotFound, "Cart is empty")
				return
			}
			response.InternalError(c)
			return
		}

		pdfPath, err := renderer.Render(&order, user)
		if err != nil {
			// The order row is already durable; surface the render
			// failure without rolling anything back.
			l.Error("invoice render failed", zap.Uint("order_id", order.ID), zap.Error(err))
			response.KO(c, http.StatusInternalServerError, "Order created but invoice rendering failed")
			return
		}
		if err := mailer.SendInvoice(user.Email, order.ID, pdfPath); err != nil {
			l.Warn("invoice mail not sent", zap.Uint("order_id", order.ID), zap.Error(err))
		}

		broadcastNewOrder(order)
		response.OK(c, http.StatusCreated, "Order created", order)
	}
}

// GET /order: own orders; admins can pass user_id to inspect others.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		targetID := user.ID
		if v := c.Query("user_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				response.KO(c, http.StatusBadRequest, "Invalid user id")
				return
			}
			if !middleware.OwnerOrAdmin(user, uint(id)) {
				response.NotAllowed(c)
				return
			}
			targetID = uint(id)
		}

		var orders []models.Order
		if err := db.Preload("Items").Where("user_id = ?", targetID).
			Order("created_at desc").Find(&orders).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "Orders", orders)
	}
}

// GET /order/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		order, ok := loadOwnedOrder(c, db, user)
		if !ok {
			return
		}
		response.OK(c, http.StatusOK, "Order", order)
	}
}

// GET /order/:id/invoice: streams the previously written PDF. Invoices
// are never regenerated; a missing file is a 404.
func DownloadInvoice(db *gorm.DB, renderer *invoice.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		order, ok := loadOwnedOrder(c, db, user)
		if !ok {
			return
		}
		path := renderer.Path(order.ID)
		if _, err := os.Stat(path); err != nil {
			response.KO(c, http.StatusNotFound, "Invoice not found")
			return
		}
		c.FileAttachment(path, "invoice.pdf")
	}
}

func loadOwnedOrder(c *gin.Context, db *gorm.DB, user *models.User) (*models.Order, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.KO(c, http.StatusBadRequest, "Invalid id")
		return nil, false
	}
	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.KO(c, http.StatusNotFound, "Order not found")
			return nil, false
		}
		response.InternalError(c)
		return nil, false
	}
	if !middleware.OwnerOrAdmin(user, order.UserID) {
		response.NotAllowed(c)
		return nil, false
	}
	return &order, true
}
