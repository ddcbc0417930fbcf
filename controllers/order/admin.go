package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

func parseOrderStatus(s string) (models.OrderStatus, error) {
	switch models.OrderStatus(s) {
	case models.OrderStatusPending, models.OrderStatusCompleted, models.OrderStatusCancelled:
		return models.OrderStatus(s), nil
	}
	return "", errors.New("invalid order status")
}

func parsePaymentStatus(s string) (models.PaymentStatus, error) {
	switch models.PaymentStatus(s) {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
		return models.PaymentStatus(s), nil
	}
	return "", errors.New("invalid payment status")
}

// GetAllOrdersHandler is the admin order listing, unscoped by user.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// UpdateOrderStatusHandler moves an order along the directed transition set.
// Anything outside pending -> completed/cancelled is rejected.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := parseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order"})
			return
		}

		if !models.CanTransitionOrderStatus(order.Status, newStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "invalid status transition from " + string(order.Status) + " to " + string(newStatus),
			})
			return
		}

		if err := db.Model(&order).Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// UpdatePaymentStatusHandler moves an order's payment status along its own
// directed set (pending -> paid/failed).
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := parsePaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order"})
			return
		}

		if !models.CanTransitionPaymentStatus(order.PaymentStatus, newStatus) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "invalid payment status transition from " + string(order.PaymentStatus) + " to " + string(newStatus),
			})
			return
		}

		if err := db.Model(&order).Updates(map[string]interface{}{
			"payment_status": newStatus,
			"updated_at":     time.Now().UTC(),
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
