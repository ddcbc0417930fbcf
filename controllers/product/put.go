package productController

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	CategoryID    *string          `json:"category_id"`
	Images        []string         `json:"images"`
	Stock         *int             `json:"stock"`
	Featured      *bool            `json:"featured"`
	Active        *bool            `json:"active"`
}

// UpdateProduct applies a partial update to a product. Admin only.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch product"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}
		if req.Price != nil && req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "price must not be negative"})
			return
		}
		if req.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Category does not exist"})
				return
			}
		}

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.OriginalPrice != nil {
			product.OriginalPrice = req.OriginalPrice
		}
		if req.CategoryID != nil {
			product.CategoryID = req.CategoryID
		}
		if req.Images != nil {
			product.Images = req.Images
		}
		if req.Stock != nil {
			product.StockQuantity = *req.Stock
		}
		if req.Featured != nil {
			product.IsFeatured = *req.Featured
		}
		if req.Active != nil {
			product.IsActive = *req.Active
		}
		product.UpdatedAt = time.Now().UTC()

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
