package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productControllers "github.com/neongadget/store-api/controllers/product"
)

// SetupCatalogRoutes registers the unauthenticated product and category
// browsing endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/api/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))
	}

	categories := r.Group("/api/categories")
	{
		categories.GET("", productControllers.GetAllCategories(db))
		categories.GET("/:id", productControllers.GetCategoryByID(db))
	}
}
