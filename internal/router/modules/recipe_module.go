package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/receipegram/backend/internal/container"
	handlers "github.com/receipegram/backend/internal/interface/http"
	"github.com/receipegram/backend/internal/interface/middleware"
	"github.com/receipegram/backend/pkg/helpers"
)

// RecipeModule wires the feed, recipe CRUD, likes, and comments.
// Reads take OptionalAuth so anonymous callers get the public feed while
// token holders get scoped visibility and isLiked; writes require auth.
type RecipeModule struct {
	Handler *handlers.RecipeHandler
	JWT     *helpers.JWTManager
}

func NewRecipeModule(h *handlers.RecipeHandler, jwt *helpers.JWTManager) *RecipeModule {
	return &RecipeModule{Handler: h, JWT: jwt}
}

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	uploadBody := middleware.MaxBodySize(container.GetConfig().MaxUploadSize)

	read := rg.Group("/")
	read.Use(middleware.OptionalAuth(m.JWT))
	{
		read.GET("/recipes", readLimiter, m.Handler.List)
		read.GET("/recipes/:id", readLimiter, m.Handler.Detail)
		read.GET("/recipes/:id/comments", readLimiter, m.Handler.Comments)
	}

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/recipes", uploadBody, m.Handler.Create)
		auth.PUT("/recipes/:id", uploadBody, m.Handler.Update)
		auth.DELETE("/recipes/:id", m.Handler.Delete)
		auth.POST("/recipes/:id/like", m.Handler.Like)
		auth.POST("/recipes/:id/comments", m.Handler.AddComment)
	}
}
