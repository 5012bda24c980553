package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"readerpeak-backend/internal/shared/middleware"
	"readerpeak-backend/pkg/container"
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
		setupAuthorRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupSearchRoutes(v1, c)
		setupSettingsRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.IdentityHandler.SignUp)
		auth.POST("/signin", c.IdentityHandler.SignIn)
		auth.POST("/signout", c.IdentityHandler.SignOut)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthRequired(c.JWTManager, c.TokenStore))
	{
		users.GET("/me", c.IdentityHandler.GetProfile)
	}
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		// Resolution depends on who is asking, so identity is optional
		// on the read paths.
		authors.GET("", c.AuthorHandler.ListAuthors)
		authors.GET("/me", middleware.AuthOptional(c.JWTManager, c.TokenStore), c.AuthorHandler.GetMyProfile)
		authors.GET("/:id", middleware.AuthOptional(c.JWTManager, c.TokenStore), c.AuthorHandler.GetProfile)
		authors.POST("", middleware.AuthRequired(c.JWTManager, c.TokenStore), c.AuthorHandler.UpsertAuthor)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("/:id", c.BookHandler.GetBook)
		books.POST("", middleware.AuthRequired(c.JWTManager, c.TokenStore), c.BookHandler.PublishBook)
	}
}

func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/home", c.CatalogHandler.GetHomeFeed)

	categories := v1.Group("/categories")
	{
		categories.GET("", c.CatalogHandler.ListCategories)
		categories.GET("/:slug/books", c.CatalogHandler.ListByCategory)
	}
}

func setupSearchRoutes(v1 *gin.RouterGroup, c *container.Container) {
	search := v1.Group("/search")
	{
		search.GET("", c.SearchHandler.Search)
		search.POST("", c.SearchHandler.Navigate)
		search.GET("/suggest", c.SearchHandler.Suggest)
	}
}

func setupSettingsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	settings := v1.Group("/settings")
	settings.Use(middleware.AuthRequired(c.JWTManager, c.TokenStore))
	{
		settings.GET("/theme", c.SettingsHandler.GetTheme)
		settings.PUT("/theme", c.SettingsHandler.SetTheme)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := c.HealthCheck(ctx.Request.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		ctx.JSON(code, gin.H{
			"status":    status,
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC(),
		})
	}
}
