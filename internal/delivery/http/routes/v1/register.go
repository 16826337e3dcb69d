package v1

import (
	"log"

	"loomconnect/internal/config"
	"loomconnect/internal/database"
	"loomconnect/internal/delivery/http/handler"
	"loomconnect/internal/delivery/http/middleware"
	"loomconnect/internal/infrastructure/cache"
	"loomconnect/internal/infrastructure/persistence/postgres"
	"loomconnect/internal/pkg/jwt"
	"loomconnect/internal/repository"
	"loomconnect/internal/usecase"
	"loomconnect/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, rdb *cache.Redis, hub *ws.Hub, logger *log.Logger) error {
	if r == nil {
		return nil
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo, err := postgres.NewUserRepository(db.SQLDB())
	if err != nil {
		return err
	}
	profileRepo := repository.NewPostgresProfileRepository(db)
	profileSkillRepo := repository.NewPostgresProfileSkillRepository(db)
	profileNeedRepo := repository.NewPostgresProfileNeedRepository(db)
	connectionRepo := repository.NewPostgresConnectionRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, profileRepo, jwtSvc)
	profileUC := usecase.NewProfileUsecase(profileRepo, rdb)
	profileSkillUC := usecase.NewProfileSkillUsecase(profileRepo, profileSkillRepo, skillRepo, rdb)
	profileNeedUC := usecase.NewProfileNeedUsecase(profileRepo, profileNeedRepo, skillRepo, rdb)
	connectionUC := usecase.NewConnectionUsecase(profileRepo, connectionRepo, rdb)
	skillUC := usecase.NewSkillUsecase(skillRepo)
	matchUC := usecase.NewMatchUsecase(profileRepo, profileSkillRepo, profileNeedRepo, connectionRepo, rdb, cfg.Matching.CacheTTL)

	authGroup := r.Group("/auth")
	handler.NewAuthHandler(authUC).RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	profilesGroup := protected.Group("/profiles")
	handler.NewProfileHandler(profileUC).RegisterRoutes(profilesGroup)
	handler.NewProfileSkillHandler(profileSkillUC).RegisterRoutes(profilesGroup)
	handler.NewProfileNeedHandler(profileNeedUC).RegisterRoutes(profilesGroup)

	skillsGroup := protected.Group("/skills")
	handler.NewSkillHandler(skillUC).RegisterRoutes(skillsGroup)

	matchesGroup := protected.Group("/matches")
	handler.NewMatchHandler(matchUC, profileUC, cfg.Matching).RegisterRoutes(matchesGroup)

	connectionsGroup := protected.Group("/connections")
	handler.NewConnectionHandler(connectionUC).RegisterRoutes(connectionsGroup)

	wsHandler := ws.NewHandler(hub, profileRepo, logger)
	protected.Get("/ws/matches", wsHandler.HandleMatchesWS)

	return nil
}
