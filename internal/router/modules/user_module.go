package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/receipegram/backend/internal/container"
	handlers "github.com/receipegram/backend/internal/interface/http"
	"github.com/receipegram/backend/internal/interface/middleware"
	"github.com/receipegram/backend/pkg/helpers"
)

// UserModule wires public profiles, search, and the follower graph.
// Every /users/:user route shares the one param name Gin allows per
// segment; the profile route treats it as a username, the follow routes
// parse it as a numeric id.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/users/search/:query", searchLimiter, m.Handler.Search)
	rg.GET("/users/:user", publicLimiter, m.Handler.Profile)
	rg.GET("/users/:user/followers", publicLimiter, m.Handler.Followers)
	rg.GET("/users/:user/following", publicLimiter, m.Handler.Following)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/users/:user/follow", m.Handler.FollowToggle)
		auth.GET("/users/:user/following-status", m.Handler.FollowingStatus)
	}
}
