package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/models"
)

type SetAdminRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

// GetAllUsers lists every profile with its roles, newest first. Admin only.
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profiles []models.Profile
		if err := db.Order("created_at DESC").Find(&profiles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users"})
			return
		}

		result := make([]gin.H, 0, len(profiles))
		for _, p := range profiles {
			roles, err := models.RolesForUser(db, p.UserID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load roles"})
				return
			}
			result = append(result, gin.H{
				"id":         p.ID,
				"user_id":    p.UserID,
				"email":      p.Email,
				"username":   p.Username,
				"full_name":  p.FullName,
				"created_at": p.CreatedAt,
				"roles":      roles,
			})
		}
		c.JSON(http.StatusOK, result)
	}
}

// SetAdminRole grants or revokes the admin role on a user. Admins cannot
// change their own admin role.
func SetAdminRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetString("user_id")
		targetID := c.Param("userID")

		if actorID == targetID {
			c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot change your own admin role"})
			return
		}

		var req SetAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user"})
			return
		}

		var err error
		if *req.IsAdmin {
			err = models.GrantRole(db, targetID, models.RoleAdmin)
		} else {
			err = models.RevokeRole(db, targetID, models.RoleAdmin)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update role"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
