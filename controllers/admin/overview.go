package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

type productUnits struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalQuantity int    `json:"total_quantity"`
}

// GetOverview returns headline totals plus the five best selling
// products by units across all orders.
func GetOverview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalUsers, totalProducts, totalOrders int64
		if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate users"})
			return
		}
		if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate products"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate orders"})
			return
		}

		var totalRevenue decimal.Decimal
		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusCompleted).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate revenue"})
			return
		}

		var topProducts []productUnits
		if err := db.Model(&models.OrderItem{}).
			Select("order_items.product_id AS product_id, SUM(order_items.quantity) AS total_quantity").
			Group("order_items.product_id").
			Order("total_quantity DESC").
			Limit(5).
			Scan(&topProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate order items"})
			return
		}

		ids := make([]string, 0, len(topProducts))
		for _, p := range topProducts {
			ids = append(ids, p.ProductID)
		}
		names := make(map[string]string, len(ids))
		if len(ids) > 0 {
			var products []models.Product
			if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load products"})
				return
			}
			for _, p := range products {
				names[p.ID] = p.Name
			}
		}
		for i := range topProducts {
			// deleted products keep their sales under a placeholder name
			name, ok := names[topProducts[i].ProductID]
			if !ok {
				name = "Unknown"
			}
			topProducts[i].ProductName = name
		}

		c.JSON(http.StatusOK, gin.H{
			"total_users":    totalUsers,
			"total_products": totalProducts,
			"total_orders":   totalOrders,
			"total_revenue":  totalRevenue,
			"top_products":   topProducts,
		})
	}
}
