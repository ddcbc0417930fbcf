package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/neongadget/store-api/controllers/cart"
	orderControllers "github.com/neongadget/store-api/controllers/order"
	paymentControllers "github.com/neongadget/store-api/controllers/payment"
	userControllers "github.com/neongadget/store-api/controllers/user"
	viewedControllers "github.com/neongadget/store-api/controllers/viewed"
	wishlistControllers "github.com/neongadget/store-api/controllers/wishlist"
	"github.com/neongadget/store-api/middleware"
)

// SetupUserRoutes registers every endpoint that acts on behalf of the
// signed-in user. All of them resolve the user from the JWT, never from
// the request body.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	api.Use(middleware.ValidateToken)
	{
		api.GET("/me", userControllers.GetMe(db))
		api.PUT("/me/profile", userControllers.UpdateProfile(db))

		orders := api.Group("/orders")
		{
			orders.POST("", orderControllers.CreateOrderHandler(db))
			orders.GET("", orderControllers.GetUserOrdersHandler(db))
			orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orders.GET("/:orderID/payments", paymentControllers.GetOrderPayments(db))
		}

		payments := api.Group("/payments")
		{
			payments.POST("", paymentControllers.CreatePayment(db))
			payments.GET("/:id", paymentControllers.GetPayment(db))
		}

		cart := api.Group("/cart")
		{
			cart.GET("", cartControllers.GetCart(db))
			cart.POST("/items", cartControllers.AddCartItem(db))
			cart.PUT("/items/:product_id", cartControllers.UpdateCartItem(db))
			cart.DELETE("/items/:product_id", cartControllers.DeleteCartItem(db))
			cart.DELETE("", cartControllers.ClearCart(db))
		}

		wishlist := api.Group("/wishlist")
		{
			wishlist.GET("", wishlistControllers.GetWishlist(db))
			wishlist.POST("", wishlistControllers.AddToWishlist(db))
			wishlist.DELETE("/:productID", wishlistControllers.RemoveFromWishlist(db))
			wishlist.DELETE("", wishlistControllers.ClearWishlist(db))
		}

		viewed := api.Group("/viewed")
		{
			viewed.GET("", viewedControllers.GetViewedHistory(db))
			viewed.POST("", viewedControllers.TrackView(db))
			viewed.DELETE("/:productID", viewedControllers.RemoveViewedEntry(db))
			viewed.DELETE("", viewedControllers.ClearViewedHistory(db))
		}
	}
}
