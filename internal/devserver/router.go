package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
)

// NewRouter mounts the catalog contract under /api.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)
	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		setupBookRoutes(api, h)
		setupAuthorRoutes(api, h)
		setupGenreRoutes(api, h)
		setupUserRoutes(api, h)
	}

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, h *Handler) {
	books := api.Group("/Book")
	{
		books.GET("", h.ListBooks)
		books.GET("/filter", h.FilterBooks)
		books.GET("/by-genre/:id", h.BooksByGenre)
		books.GET("/:id", h.GetBook)
	}

	admin := api.Group("/Book")
	admin.Use(middleware.AuthMiddleware(h.tokens), middleware.AdminMiddleware())
	{
		admin.POST("", h.CreateBook)
		admin.PUT("/:id", h.UpdateBook)
		admin.DELETE("/:id", h.DeleteBook)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(api *gin.RouterGroup, h *Handler) {
	authors := api.Group("/Author")
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/with-book-count", h.ListAuthorsWithBookCount)
		authors.GET("/:id", h.GetAuthor)
		authors.GET("/:id/books", h.AuthorBooks)
	}

	admin := api.Group("/Author")
	admin.Use(middleware.AuthMiddleware(h.tokens), middleware.AdminMiddleware())
	{
		admin.POST("", h.CreateAuthor)
		admin.PUT("/:id", h.UpdateAuthor)
		admin.DELETE("/:id", h.DeleteAuthor)
	}
}

// ========================================
// GENRE ROUTES
// ========================================
func setupGenreRoutes(api *gin.RouterGroup, h *Handler) {
	genres := api.Group("/Genre")
	{
		genres.GET("", h.ListGenres)
		genres.GET("/:id", h.GetGenre)
	}

	admin := api.Group("/Genre")
	admin.Use(middleware.AuthMiddleware(h.tokens), middleware.AdminMiddleware())
	{
		admin.POST("", h.CreateGenre)
		admin.PUT("/:id", h.UpdateGenre)
		admin.DELETE("/:id", h.DeleteGenre)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(api *gin.RouterGroup, h *Handler) {
	users := api.Group("/User")
	{
		users.POST("/login", h.Login)
		users.POST("/register", h.Register)
	}

	authed := api.Group("/User")
	authed.Use(middleware.AuthMiddleware(h.tokens))
	{
		authed.GET("", middleware.AdminMiddleware(), h.ListUsers)
		authed.GET("/:id", middleware.SelfOrAdmin("id"), h.GetUser)
		authed.PUT("/:id", middleware.SelfOrAdmin("id"), h.UpdateUser)
		authed.DELETE("/:id", middleware.AdminMiddleware(), h.DeleteUser)

		authed.GET("/:id/saved-books", middleware.SelfOrAdmin("id"), h.ListSaved)
		authed.POST("/:id/saved-books/:bookId", middleware.SelfOrAdmin("id"), h.AddSaved)
		authed.DELETE("/:id/saved-books/:bookId", middleware.SelfOrAdmin("id"), h.RemoveSaved)
	}
}
