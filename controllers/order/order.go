package orderControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
	ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
	Items           []OrderItemInput       `json:"items" binding:"required,min=1,dive"`
}

// ErrUnknownUser marks an order attempt by a caller whose account no longer
// resolves; handlers map it to 401 rather than 400.
var ErrUnknownUser = errors.New("unknown user")

func validateShippingAddress(a models.ShippingAddress) error {
	switch {
	case a.FullName == "":
		return errors.New("shipping_address.full_name is required")
	case a.Phone == "":
		return errors.New("shipping_address.phone is required")
	case a.AddressLine1 == "":
		return errors.New("shipping_address.address_line1 is required")
	case a.City == "":
		return errors.New("shipping_address.city is required")
	case a.State == "":
		return errors.New("shipping_address.state is required")
	case a.PostalCode == "":
		return errors.New("shipping_address.postal_code is required")
	}
	return nil
}

// -------- Core Logic --------

// CreateOrder validates the requested items against the live catalog,
// snapshots current unit prices, and writes the order header plus all line
// items as one transaction. Any failure leaves zero rows behind. Stock is
// neither checked nor decremented here.
func CreateOrder(db *gorm.DB, userID string, req CreateOrderRequest) (*models.Order, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	if len(req.Items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}
	if err := validateShippingAddress(req.ShippingAddress); err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for product %s must be positive", item.ProductID)
		}
		productIDs = append(productIDs, item.ProductID)
	}

	var products []models.Product
	if err := db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	productsByID := make(map[string]models.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}
	for _, item := range req.Items {
		if _, ok := productsByID[item.ProductID]; !ok {
			return nil, fmt.Errorf("product %s not found", item.ProductID)
		}
	}

	address := req.ShippingAddress
	if address.Country == "" {
		address.Country = "US"
	}

	order := models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: address,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		product := productsByID[item.ProductID]
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		order.Items = append(order.Items, models.OrderItem{
			ID:          uuid.NewString(),
			OrderID:     order.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		})
	}
	order.TotalAmount = total

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		order, err := CreateOrder(db, userID, req)
		if err != nil {
			if errors.Is(err, ErrUnknownUser) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		broadcastNewOrder(order)
		c.JSON(http.StatusCreated, gin.H{"id": order.ID})
	}
}

// GetUserOrdersHandler returns the caller's orders, newest first, with
// embedded line items.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderByIDHandler fetches one order scoped to the caller. Orders owned
// by other users read as not found so their existence is not leaked.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		orderID := c.Param("orderID")

		var order models.Order
		if err := db.
			Preload("Items").
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
