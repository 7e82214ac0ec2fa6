package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupReviewRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	me := v1.Group("/users/me", middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		me.GET("", c.UserHandler.GetMe)
		me.PUT("", c.UserHandler.UpdateMe)
		me.POST("/avatar", c.UserHandler.UploadAvatar)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		// detail varies per signed-in user (can_review), token optional
		books.GET("/:id", middleware.OptionalAuth(c.Config.JWT.Secret), c.BookHandler.GetByID)

		books.GET("/:id/reviews", c.ReviewHandler.ListForBook)
		books.POST("/:id/reviews", middleware.AuthMiddleware(c.Config.JWT.Secret), c.ReviewHandler.Create)

		admin := books.Group("", middleware.AuthMiddleware(c.Config.JWT.Secret), middleware.AdminMiddleware())
		{
			admin.POST("", c.BookHandler.Create)
			admin.PUT("/:id", c.BookHandler.Update)
			admin.DELETE("/:id", c.BookHandler.Delete)
			admin.POST("/:id/cover", c.BookHandler.UploadCover)
		}
	}
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.GetAll)
		authors.GET("/:id", c.AuthorHandler.GetByID)

		admin := authors.Group("", middleware.AuthMiddleware(c.Config.JWT.Secret), middleware.AdminMiddleware())
		{
			admin.POST("", c.AuthorHandler.Create)
			admin.PUT("/:id", c.AuthorHandler.Update)
			admin.DELETE("/:id", c.AuthorHandler.Delete)
		}
	}
}

func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.GetAll)
		categories.GET("/:slug", c.CategoryHandler.GetBySlug)

		admin := categories.Group("", middleware.AuthMiddleware(c.Config.JWT.Secret), middleware.AdminMiddleware())
		{
			admin.POST("", c.CategoryHandler.Create)
			admin.PUT("/:slug", c.CategoryHandler.Update)
			admin.DELETE("/:slug", c.CategoryHandler.Delete)
		}
	}
}

func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reviews := v1.Group("/reviews", middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		reviews.PUT("/:id", c.ReviewHandler.Update)
		reviews.DELETE("/:id", c.ReviewHandler.Delete)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin", middleware.AuthMiddleware(c.Config.JWT.Secret), middleware.AdminMiddleware())
	{
		admin.GET("/reviews", c.ReviewHandler.ListForModeration)
		admin.PUT("/reviews/:id/moderation", c.ReviewHandler.Moderate)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}
		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus != "up" {
			status = http.StatusServiceUnavailable
		}

		response.Success(ctx, status, gin.H{
			"status":    "ok",
			"version":   c.Config.App.Version,
			"database":  dbStatus,
			"cache":     cacheStatus,
			"timestamp": time.Now().UTC(),
		})
	}
}
