package paymentControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

type CreatePaymentRequest struct {
	OrderID string           `json:"order_id" binding:"required"`
	Method  string           `json:"method" binding:"required"`
	Amount  *decimal.Decimal `json:"amount"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreatePayment records a payment attempt against an order. The amount
// defaults to the order total when omitted.
func CreatePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Order does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to validate order"})
			return
		}

		amount := order.TotalAmount
		if req.Amount != nil {
			if req.Amount.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"message": "amount must not be negative"})
				return
			}
			amount = *req.Amount
		}

		payment := models.Payment{
			ID:      uuid.NewString(),
			OrderID: order.ID,
			Amount:  amount,
			Method:  req.Method,
			Status:  models.PaymentRecordPending,
		}
		if err := db.Create(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create payment"})
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

// GetPayment returns one payment record. Payments against another user's
// order read as not found.
func GetPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		id := c.Param("id")

		var payment models.Payment
		if err := db.First(&payment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payment"})
			return
		}

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", payment.OrderID, userID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payment"})
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}

// GetOrderPayments lists every payment recorded against one of the
// caller's orders.
func GetOrderPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		orderID := c.Param("orderID")

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order"})
			return
		}

		var payments []models.Payment
		if err := db.Where("order_id = ?", order.ID).
			Order("created_at DESC").
			Find(&payments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payments"})
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}

// UpdatePaymentStatus sets a payment record's status within the ledger's
// vocabulary.
func UpdatePaymentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}
		if !models.ValidPaymentRecordStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payment status"})
			return
		}

		var payment models.Payment
		if err := db.First(&payment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch payment"})
			return
		}

		if err := db.Model(&payment).Updates(map[string]interface{}{
			"status":     req.Status,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DeletePayment removes a payment record. Admin only.
func DeletePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.Payment{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete payment"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
