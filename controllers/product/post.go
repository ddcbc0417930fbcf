package productController

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	CategoryID    *string          `json:"category_id"`
	Images        []string         `json:"images"`
	Stock         int              `json:"stock"`
	Featured      bool             `json:"featured"`
}

var slugStripper = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a display name when none is supplied.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStripper.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CreateProduct adds a catalog product. Admin only.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "price must not be negative"})
			return
		}

		slug := req.Slug
		if slug == "" {
			slug = slugify(req.Name)
		}
		var count int64
		if err := db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check slug"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "Product slug already exists"})
			return
		}

		if req.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Category does not exist"})
				return
			}
		}

		now := time.Now().UTC()
		product := models.Product{
			ID:            uuid.NewString(),
			Name:          req.Name,
			Slug:          slug,
			Description:   req.Description,
			Price:         req.Price,
			OriginalPrice: req.OriginalPrice,
			StockQuantity: req.Stock,
			IsActive:      true,
			IsFeatured:    req.Featured,
			Images:        req.Images,
			CategoryID:    req.CategoryID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
