package main

import (
	"errors"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/database"
	"github.com/plateshare/backend/internal/logger"
	"github.com/plateshare/backend/internal/models"
	"gorm.io/gorm"
)

// defaultTags is the initial tag reference data. Colors come from the
// fixed palette in models.TagColors.
var defaultTags = []models.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		boot := logger.L()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log := logger.L()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("schema migrated")

	for _, tag := range defaultTags {
		err := db.Where("slug = ?", tag.Slug).First(&models.Tag{}).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&tag).Error; err != nil {
				log.Fatal().Err(err).Str("slug", tag.Slug).Msg("failed to seed tag")
			}
			log.Info().Str("slug", tag.Slug).Msg("seeded tag")
		} else if err != nil {
			log.Fatal().Err(err).Msg("failed to check tags")
		}
	}
}
