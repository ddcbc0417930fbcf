package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/neongadget/store-api/auth"
)

// SetupAuthRoutes registers the public signup/signin endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", auth.SignUpHandler(db))
		authGroup.POST("/signin", auth.SignInHandler(db))
	}
}
