package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
	"gorm.io/gorm"
)

// currentUserID returns the authenticated principal, if any.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

// mustUserID aborts with 401 when no principal is set. Routes behind
// the auth middleware always have one; this guards test routers too.
func mustUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
	}
	return id, ok
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyCollection),
		errors.Is(err, service.ErrDuplicateEntry),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUnknownReference),
		errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrSelfReference),
		errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pageParams reads page/limit pagination query parameters.
func pageParams(c *gin.Context) (limit, offset int) {
	limit = 10
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	page := 1
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v > 0 {
		page = v
	}
	return limit, (page - 1) * limit
}

type userView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type ingredientAmountView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type recipeView struct {
	ID               uuid.UUID              `json:"id"`
	Tags             []models.Tag           `json:"tags"`
	Author           *userView              `json:"author,omitempty"`
	Ingredients      []ingredientAmountView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image,omitempty"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

type shortRecipeView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image,omitempty"`
	CookingTime int       `json:"cooking_time"`
}

func newShortRecipeView(r *models.Recipe) shortRecipeView {
	return shortRecipeView{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

// newUserView fills is_subscribed for the requesting principal, false
// when anonymous.
func newUserView(ctx context.Context, relations *service.RelationService, user *models.User, principal uuid.UUID) *userView {
	view := &userView{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if principal != uuid.Nil && relations != nil {
		if ok, err := relations.Exists(ctx, service.RelationFollow, principal, user.ID); err == nil {
			view.IsSubscribed = ok
		}
	}
	return view
}

func newRecipeView(ctx context.Context, relations *service.RelationService, recipe *models.Recipe, principal uuid.UUID) recipeView {
	view := recipeView{
		ID:          recipe.ID,
		Tags:        recipe.Tags,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
	}
	if view.Tags == nil {
		view.Tags = []models.Tag{}
	}
	if recipe.Author != nil {
		view.Author = newUserView(ctx, relations, recipe.Author, principal)
	}
	view.Ingredients = make([]ingredientAmountView, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		item := ingredientAmountView{
			ID:     ri.IngredientID,
			Amount: ri.Amount,
		}
		if ri.Ingredient != nil {
			item.Name = ri.Ingredient.Name
			item.MeasurementUnit = ri.Ingredient.MeasurementUnit
		}
		view.Ingredients = append(view.Ingredients, item)
	}
	if principal != uuid.Nil && relations != nil {
		if ok, err := relations.Exists(ctx, service.RelationFavorite, principal, recipe.ID); err == nil {
			view.IsFavorited = ok
		}
		if ok, err := relations.Exists(ctx, service.RelationCart, principal, recipe.ID); err == nil {
			view.IsInShoppingCart = ok
		}
	}
	return view
}
