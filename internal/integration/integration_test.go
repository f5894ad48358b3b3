package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/testhelpers"
	"github.com/plateshare/backend/internal/types"
)

// Exercises the full stack against a real PostgreSQL container,
// covering behavior the in-memory tests cannot: database-level unique
// indexes and check constraints.
func TestRecipeLifecyclePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	recipes := service.NewRecipeService(db)
	relations := service.NewRelationService(db)
	shopping := service.NewShoppingListService(db)

	author := models.User{
		Email: "author@example.com", Username: "author",
		FirstName: "A", LastName: "B", PasswordHash: "x",
	}
	require.NoError(t, db.Create(&author).Error)
	shopper := models.User{
		Email: "shopper@example.com", Username: "shopper",
		FirstName: "C", LastName: "D", PasswordHash: "x",
	}
	require.NoError(t, db.Create(&shopper).Error)

	flour := models.Ingredient{Name: "flour", MeasurementUnit: "g"}
	require.NoError(t, db.Create(&flour).Error)
	tag := models.Tag{Name: "Dinner", Color: "#8775D2", Slug: "dinner"}
	require.NoError(t, db.Create(&tag).Error)

	recipe, err := recipes.CreateRecipe(ctx, author.ID, &types.CreateRecipeRequest{
		Name:        "Bread",
		Text:        "Bake it.",
		CookingTime: 90,
		Ingredients: []types.RecipeIngredientInput{{ID: flour.ID, Amount: 500}},
		Tags:        []uuid.UUID{tag.ID},
	})
	require.NoError(t, err)

	t.Run("duplicate ingredient name violates unique index", func(t *testing.T) {
		err := db.Create(&models.Ingredient{Name: "flour", MeasurementUnit: "kg"}).Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("duplicate favorite violates unique index", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Favorite{UserID: shopper.ID, RecipeID: recipe.ID}).Error)
		err := db.Create(&models.Favorite{UserID: shopper.ID, RecipeID: recipe.ID}).Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("shopping list aggregates over postgres", func(t *testing.T) {
		_, err := relations.Add(ctx, service.RelationCart, shopper.ID, recipe.ID)
		require.NoError(t, err)

		items, err := shopping.ComputeShoppingList(ctx, shopper.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "flour", items[0].Name)
		assert.EqualValues(t, 500, items[0].Amount)
	})

	t.Run("delete cleans join rows", func(t *testing.T) {
		require.NoError(t, recipes.DeleteRecipe(ctx, recipe.ID, author.ID))

		var count int64
		require.NoError(t, db.Model(&models.ShoppingCartEntry{}).
			Where("recipe_id = ?", recipe.ID).Count(&count).Error)
		assert.Zero(t, count)
	})
}
