package database

import (
	"github.com/plateshare/backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date for every entity.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCartEntry{},
	)
}
