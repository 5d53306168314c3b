package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/receipegram/backend/internal/container"
	handlers "github.com/receipegram/backend/internal/interface/http"
	"github.com/receipegram/backend/internal/interface/middleware"
	"github.com/receipegram/backend/pkg/helpers"
)

// AuthModule wires registration, login, and the caller's own profile.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/profile, PUT /api/auth/profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/profile", m.Handler.GetProfile)
		auth.PUT("/auth/profile", m.Handler.UpdateProfile)
	}
}
