package router

import (
	"github.com/receipegram/backend/internal/application"
	"github.com/receipegram/backend/internal/container"
	pginfra "github.com/receipegram/backend/internal/infrastructure/postgres"
	handlers "github.com/receipegram/backend/internal/interface/http"
	"github.com/receipegram/backend/internal/router/modules"
)

// InitModules constructs the repository/service/handler chains from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	recipeRepo := pginfra.NewRecipeRepository(pool)
	followRepo := pginfra.NewFollowRepository(pool)

	userSvc := application.NewUserService(
		userRepo,
		jwt,
		logger,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		container.GetES(),
		cfg.ESUsersIndex,
	)
	recipeSvc := application.NewRecipeService(recipeRepo, container.GetMedia(), logger)
	followSvc := application.NewFollowService(followRepo, logger)

	authHandler := handlers.NewAuthHandler(userSvc, logger)
	userHandler := handlers.NewUserHandler(userSvc, followSvc, logger)
	recipeHandler := handlers.NewRecipeHandler(recipeSvc, container.GetMedia(), logger)

	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewUserModule(userHandler, jwt))
	r.Add(modules.NewRecipeModule(recipeHandler, jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
