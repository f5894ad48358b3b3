package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/database"
	"github.com/plateshare/backend/internal/logger"
	"github.com/plateshare/backend/internal/router"
	"github.com/plateshare/backend/internal/server"
	"github.com/plateshare/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		boot := logger.L()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log := logger.L()

	if config.GetEnvironment() == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// The denylist is optional outside production; logout degrades
		// to a no-op without it.
		if config.IsProduction() {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		log.Warn().Err(err).Msg("redis unavailable, token revocation disabled")
		redisClient = nil
	}

	var imageService *service.ImageService
	if s3Cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Warn().Err(err).Msg("s3 unavailable, image upload disabled")
	} else {
		imageService = service.NewImageService(s3Cfg)
	}

	svcs := router.Services{
		Auth:        service.NewAuthService(db, redisClient, cfg.JWTSecret),
		Recipes:     service.NewRecipeService(db),
		Relations:   service.NewRelationService(db),
		Shopping:    service.NewShoppingListService(db),
		Images:      imageService,
		Ingredients: service.NewIngredientService(db),
		Tags:        service.NewTagService(db),
	}

	srv := server.New(router.New(svcs, log), cfg.ServerPort, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}
