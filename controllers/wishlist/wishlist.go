package wishlistControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

type AddWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetWishlist lists the caller's wishlist, newest first, with the current
// product attached to each entry.
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var entries []models.WishlistEntry
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist"})
			return
		}

		products, err := productsForEntries(db, func() []string {
			ids := make([]string, len(entries))
			for i, e := range entries {
				ids[i] = e.ProductID
			}
			return ids
		}())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}

		result := make([]gin.H, 0, len(entries))
		for _, e := range entries {
			product, ok := products[e.ProductID]
			if !ok {
				// product has since been deleted from the catalog
				continue
			}
			result = append(result, gin.H{
				"id":         e.ID,
				"product_id": e.ProductID,
				"created_at": e.CreatedAt,
				"product":    product,
			})
		}
		c.JSON(http.StatusOK, result)
	}
}

func productsForEntries(db *gorm.DB, ids []string) (map[string]models.Product, error) {
	byID := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// AddToWishlist adds a product to the caller's wishlist. Re-adding an
// already-saved product is a conflict.
func AddToWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req AddWishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to validate product"})
			return
		}

		var count int64
		if err := db.Model(&models.WishlistEntry{}).
			Where("user_id = ? AND product_id = ?", userID, req.ProductID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check wishlist"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "Product already in wishlist"})
			return
		}

		entry := models.WishlistEntry{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProductID: req.ProductID,
		}
		if err := db.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add to wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// RemoveFromWishlist deletes one saved product.
func RemoveFromWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID := c.Param("productID")

		result := db.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.WishlistEntry{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove from wishlist"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Wishlist entry not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ClearWishlist removes every saved product for the caller.
func ClearWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if err := db.Where("user_id = ?", userID).Delete(&models.WishlistEntry{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to clear wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
