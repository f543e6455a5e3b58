package routes

import (
	"voltkart_back_end/internal/handlers"
	"voltkart_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Auth
	api.POST("/login", middleware.LoginRateLimit(), handlers.Login)

	// Produits
	api.GET("/products", handlers.GetAllProducts)
	api.GET("/products/search", handlers.SearchProducts)
	api.POST("/products", middleware.AuthRequired("admin"), handlers.CreateProduct)

	// Panier
	api.GET("/cart", handlers.GetCart)
	api.POST("/cart", handlers.AddToCart)

	// Commandes
	api.POST("/orders", handlers.PlaceOrder)
	api.GET("/orders/user/:userId", handlers.GetUserOrders)

	// Paiement Razorpay
	api.POST("/create-razorpay-order", handlers.CreateRazorpayOrder)
	api.POST("/verify-payment", handlers.VerifyPayment)

	// Admin
	admin := api.Group("/admin")
	admin.POST("/login", handlers.AdminLogin)
	admin.POST("/products/:id/image", middleware.AuthRequired("admin"), handlers.UploadProductImage)
	admin.GET("/orders/stream", middleware.AuthRequired("admin"), handlers.OrderFeed)
}
