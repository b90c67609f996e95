package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"autogram-api/config"
	"autogram-api/controllers"
	"autogram-api/middleware"
	"autogram-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, storage services.ObjectStorage, guestName services.NameGenerator, logger *zap.Logger) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, guestName, logger)
	postController := controllers.NewPostController(db, storage, logger)
	socialController := controllers.NewSocialController(db)
	carController := controllers.NewCarController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/anonymous", authController.Anonymous)
	}

	// The feed is presented to any viewer; no identity required.
	v1.GET("/posts/feed", postController.GetFeed)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.POST("/auth/sync", authController.SyncUser)
		protected.GET("/auth/me", authController.Me)
		protected.PATCH("/auth/me", authController.UpdateProfile)

		// Post routes
		posts := protected.Group("/posts")
		{
			posts.POST("/upload-url", postController.GenerateUploadURL)
			posts.POST("", postController.CreatePost)
			posts.POST("/:id/like", postController.ToggleLike)
			posts.POST("/:id/comments", postController.AddComment)
			posts.DELETE("/:id", postController.DeletePost)
		}

		// Social graph routes
		social := protected.Group("/social")
		{
			social.POST("/follow/:user_id", socialController.Follow)
			social.POST("/posts/:id/like", socialController.LikePost)
			social.POST("/posts/:id/react", socialController.ReactToPost)
			social.POST("/posts/:id/comments", socialController.Comment)
		}

		// Car routes
		cars := protected.Group("/cars")
		{
			cars.GET("", carController.ListCars)
			cars.POST("", carController.CreateCar)
		}
	}
}
