package viewedControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

// viewedHistoryLimit caps how many entries a history read returns. Storage
// is not trimmed; older rows simply fall off the returned list.
const viewedHistoryLimit = 50

type TrackViewRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetViewedHistory returns the caller's most recently viewed products,
// newest first, capped at 50 entries.
func GetViewedHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var entries []models.ViewedEntry
		if err := db.Where("user_id = ?", userID).
			Order("viewed_at DESC").
			Limit(viewedHistoryLimit).
			Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch viewed history"})
			return
		}

		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ProductID
		}
		byID := make(map[string]models.Product, len(ids))
		if len(ids) > 0 {
			var products []models.Product
			if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
				return
			}
			for _, p := range products {
				byID[p.ID] = p
			}
		}

		result := make([]gin.H, 0, len(entries))
		for _, e := range entries {
			product, ok := byID[e.ProductID]
			if !ok {
				continue
			}
			result = append(result, gin.H{
				"id":         e.ID,
				"product_id": e.ProductID,
				"viewed_at":  e.ViewedAt,
				"product":    product,
			})
		}
		c.JSON(http.StatusOK, result)
	}
}

// TrackView upserts a view: a repeat view moves the existing row's
// timestamp forward instead of inserting a duplicate.
func TrackView(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req TrackViewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var entry models.ViewedEntry
		err := db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = models.ViewedEntry{
				ID:        uuid.NewString(),
				UserID:    userID,
				ProductID: req.ProductID,
				ViewedAt:  time.Now().UTC(),
			}
			if err := db.Create(&entry).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to track view"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch viewed entry"})
			return
		}

		if err := db.Model(&entry).Update("viewed_at", time.Now().UTC()).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to track view"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// RemoveViewedEntry drops one product from the caller's history.
func RemoveViewedEntry(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID := c.Param("productID")

		result := db.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.ViewedEntry{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove viewed entry"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Viewed entry not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// ClearViewedHistory wipes the caller's entire history.
func ClearViewedHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if err := db.Where("user_id = ?", userID).Delete(&models.ViewedEntry{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to clear viewed history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
