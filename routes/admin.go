package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/neongadget/store-api/controllers/admin"
	orderControllers "github.com/neongadget/store-api/controllers/order"
	paymentControllers "github.com/neongadget/store-api/controllers/payment"
	productControllers "github.com/neongadget/store-api/controllers/product"
	userControllers "github.com/neongadget/store-api/controllers/user"
	"github.com/neongadget/store-api/middleware"
	"github.com/neongadget/store-api/models"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Every route
// requires a valid JWT whose user holds the admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireRole(db, models.RoleAdmin))
	{
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productControllers.GetProducts(db))
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.GET("", productControllers.GetAllCategories(db))
			categoryAdmin.POST("", productControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", productControllers.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderFeedHandler)
		}

		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", userControllers.GetAllUsers(db))
			userAdmin.PUT("/:userID/admin", userControllers.SetAdminRole(db))
		}

		paymentAdmin := adminGroup.Group("/payments")
		{
			paymentAdmin.PUT("/:id/status", paymentControllers.UpdatePaymentStatus(db))
			paymentAdmin.DELETE("/:id", paymentControllers.DeletePayment(db))
		}

		adminGroup.GET("/analytics", adminControllers.GetAnalytics(db))
		adminGroup.GET("/overview", adminControllers.GetOverview(db))
	}
}
