package userControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

// GetMe returns the caller's account, profile, and roles.
func GetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var profile *models.Profile
		var p models.Profile
		err := db.Where("user_id = ?", userID).First(&p).Error
		if err == nil {
			profile = &p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load profile"})
			return
		}

		roles, err := models.RolesForUser(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load roles"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":    gin.H{"id": user.ID, "email": user.Email},
			"profile": profile,
			"roles":   roles,
		})
	}
}

// UpdateProfile applies a partial update to the caller's profile.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var profile models.Profile
		if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Profile not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load profile"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		if req.FullName != nil {
			profile.FullName = *req.FullName
		}
		if req.Phone != nil {
			profile.Phone = *req.Phone
		}
		if req.AvatarURL != nil {
			profile.AvatarURL = *req.AvatarURL
		}
		profile.UpdatedAt = time.Now().UTC()

		if err := db.Save(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": profile})
	}
}
