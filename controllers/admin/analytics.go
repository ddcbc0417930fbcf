package adminControllers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

type categoryUnits struct {
	CategoryID    string `json:"category_id"`
	CategoryName  string `json:"category_name"`
	TotalQuantity int    `json:"total_quantity"`
}

func countOrders(db *gorm.DB, since *time.Time) (int64, error) {
	q := db.Model(&models.Order{})
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	var n int64
	return n, q.Count(&n).Error
}

// completedRevenue sums total_amount over completed orders, optionally
// windowed by creation time.
func completedRevenue(db *gorm.DB, since *time.Time) (decimal.Decimal, error) {
	q := db.Model(&models.Order{}).Where("status = ?", models.OrderStatusCompleted)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	var total decimal.Decimal
	err := q.Select("COALESCE(SUM(total_amount), 0)").Scan(&total).Error
	return total, err
}

// topCategoriesByUnits ranks categories by units sold across all order
// items, top five.
func topCategoriesByUnits(db *gorm.DB) ([]categoryUnits, error) {
	var rows []categoryUnits
	err := db.Model(&models.OrderItem{}).
		Select("COALESCE(products.category_id, '') AS category_id, SUM(order_items.quantity) AS total_quantity").
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("products.category_id").
		Order("total_quantity DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.CategoryID != "" {
			ids = append(ids, r.CategoryID)
		}
	}
	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		var categories []models.Category
		if err := db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
			return nil, err
		}
		for _, cat := range categories {
			names[cat.ID] = cat.Name
		}
	}
	for i := range rows {
		name, ok := names[rows[i].CategoryID]
		if !ok {
			name = "Unknown"
		}
		rows[i].CategoryName = name
	}
	return rows, nil
}

// GetAnalytics computes point-in-time store metrics by scanning current
// state at request time. Nothing is cached or incrementally maintained.
func GetAnalytics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now().UTC()
		last30Days := now.AddDate(0, 0, -30)
		last7Days := now.AddDate(0, 0, -7)

		totalOrders, err := countOrders(db, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate orders"})
			return
		}
		orders30d, err := countOrders(db, &last30Days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate orders"})
			return
		}
		orders7d, err := countOrders(db, &last7Days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate orders"})
			return
		}

		totalRevenue, err := completedRevenue(db, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate revenue"})
			return
		}
		revenue30d, err := completedRevenue(db, &last30Days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate revenue"})
			return
		}
		revenue7d, err := completedRevenue(db, &last7Days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate revenue"})
			return
		}

		var totalUsers, users30d int64
		if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate users"})
			return
		}
		if err := db.Model(&models.User{}).Where("created_at >= ?", last30Days).Count(&users30d).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate users"})
			return
		}

		var totalProducts, featuredProducts, outOfStock int64
		if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate products"})
			return
		}
		if err := db.Model(&models.Product{}).Where("is_featured = ?", true).Count(&featuredProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate products"})
			return
		}
		if err := db.Model(&models.Product{}).Where("stock_quantity <= ?", 0).Count(&outOfStock).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate products"})
			return
		}

		// total_orders / total_users * 100; zero users means zero rate
		conversionRate := 0.0
		if totalUsers > 0 {
			conversionRate = math.Round(float64(totalOrders)/float64(totalUsers)*100*100) / 100
		}

		topCategories, err := topCategoriesByUnits(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate categories"})
			return
		}

		var abandonedCarts int64
		if err := db.Model(&models.Order{}).
			Where("status = ? AND created_at < ?", models.OrderStatusPending, now.Add(-24*time.Hour)).
			Count(&abandonedCarts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate pending orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": gin.H{
				"total":    totalOrders,
				"last_30d": orders30d,
				"last_7d":  orders7d,
			},
			"revenue": gin.H{
				"total":    totalRevenue,
				"last_30d": revenue30d,
				"last_7d":  revenue7d,
			},
			"users": gin.H{
				"total":    totalUsers,
				"last_30d": users30d,
			},
			"products": gin.H{
				"total":        totalProducts,
				"featured":     featuredProducts,
				"out_of_stock": outOfStock,
			},
			"conversion_rate": conversionRate,
			"top_categories":  topCategories,
			"abandoned_carts": abandonedCarts,
		})
	}
}
