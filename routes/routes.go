package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"huduma/handlers"
	"huduma/middleware"
	"huduma/models"

	userRepo "huduma/database/repository/user"
)

// HandlerBundle groups the handlers and the repositories the middleware needs.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	User    *handlers.UserHandler
	Catalog *handlers.CatalogHandler
	Order   *handlers.OrderHandler
	Payment *handlers.PaymentHandler
	Review  *handlers.ReviewHandler
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/id/:id", hb.User.GetUserByIDHandler)
		api.PUT("/fcm-token", hb.User.UpdateFCMTokenHandler)
	}
}

// RegisterCatalogRoutes registers service listing endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("/:id", hb.Catalog.GetServiceHandler)
		api.GET("/:id/reviews", hb.Review.ListServiceReviewsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleProvider))
		protected.POST("", hb.Catalog.CreateServiceHandler)
		protected.PATCH("/:id", hb.Catalog.UpdateServiceHandler)
	}

	r.GET("/api/providers/:id/services", hb.Catalog.ListProviderServicesHandler)
}

// RegisterOrderRoutes registers the booking, settlement and review endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/orders")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.Order.ListOrdersHandler)
		api.GET("/:id", hb.Order.GetOrderHandler)
		api.PATCH("/:id/status", hb.Order.UpdateOrderStatusHandler)

		customer := api.Group("")
		customer.Use(middleware.RequireRole(models.RoleCustomer))
		customer.POST("", hb.Order.CreateOrderHandler)
		customer.POST("/:id/pay", hb.Payment.PayOrderHandler)
	}

	reviews := r.Group("/api/reviews")
	{
		reviews.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleCustomer))
		reviews.POST("", hb.Review.AddReviewHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Huduma"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterHealthRoute(r)
}
