package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/types"
)

func TestRelationToggle(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationService(db)
	recipes := NewRecipeService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	flour := createTestIngredient(t, db, "flour", "g")
	breakfast := createTestTag(t, db, "breakfast")

	recipe, err := recipes.CreateRecipe(ctx, author.ID, &types.CreateRecipeRequest{
		Name: "Bread", Text: "t", CookingTime: 90,
		Ingredients: ingredientInput(flour), Tags: tagIDs(breakfast),
	})
	require.NoError(t, err)

	for _, kind := range []RelationKind{RelationFavorite, RelationCart} {
		t.Run(string(kind), func(t *testing.T) {
			record, err := svc.Add(ctx, kind, fan.ID, recipe.ID)
			require.NoError(t, err)
			require.NotNil(t, record)

			exists, err := svc.Exists(ctx, kind, fan.ID, recipe.ID)
			require.NoError(t, err)
			assert.True(t, exists)

			// Adding twice is a client error, not a no-op.
			_, err = svc.Add(ctx, kind, fan.ID, recipe.ID)
			assert.ErrorIs(t, err, ErrAlreadyExists)

			require.NoError(t, svc.Remove(ctx, kind, fan.ID, recipe.ID))

			exists, err = svc.Exists(ctx, kind, fan.ID, recipe.ID)
			require.NoError(t, err)
			assert.False(t, exists)

			// Removing again fails, the pair is gone.
			err = svc.Remove(ctx, kind, fan.ID, recipe.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			// The pair can be re-added after removal.
			_, err = svc.Add(ctx, kind, fan.ID, recipe.ID)
			assert.NoError(t, err)
		})
	}

	t.Run("favorite returns the join record", func(t *testing.T) {
		other := createTestUser(t, db, "other")
		record, err := svc.Add(ctx, RelationFavorite, other.ID, recipe.ID)
		require.NoError(t, err)
		fav, ok := record.(*models.Favorite)
		require.True(t, ok)
		assert.Equal(t, other.ID, fav.UserID)
		assert.Equal(t, recipe.ID, fav.RecipeID)
	})
}

func TestFollowRelation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	t.Run("self follow is rejected", func(t *testing.T) {
		_, err := svc.Add(ctx, RelationFollow, alice.ID, alice.ID)
		assert.ErrorIs(t, err, ErrSelfReference)
	})

	t.Run("follow and list subscriptions", func(t *testing.T) {
		_, err := svc.Add(ctx, RelationFollow, alice.ID, bob.ID)
		require.NoError(t, err)
		_, err = svc.Add(ctx, RelationFollow, alice.ID, carol.ID)
		require.NoError(t, err)

		authors, err := svc.FollowedAuthors(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, authors, 2)
		assert.Equal(t, bob.ID, authors[0].ID)
		assert.Equal(t, carol.ID, authors[1].ID)
	})

	t.Run("duplicate follow", func(t *testing.T) {
		_, err := svc.Add(ctx, RelationFollow, alice.ID, bob.ID)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("unfollow missing pair", func(t *testing.T) {
		err := svc.Remove(ctx, RelationFollow, bob.ID, carol.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("follows are directional", func(t *testing.T) {
		// alice follows bob, not the other way around.
		exists, err := svc.Exists(ctx, RelationFollow, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestRelationUnknownKind(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "user")

	_, err := svc.Add(ctx, RelationKind("bogus"), user.ID, user.ID)
	assert.Error(t, err)
	err = svc.Remove(ctx, RelationKind("bogus"), user.ID, user.ID)
	assert.Error(t, err)
}
