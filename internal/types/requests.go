package types

import (
	"github.com/google/uuid"
)

// RecipeIngredientInput is one (ingredient, amount) pair of a proposed
// recipe composition.
type RecipeIngredientInput struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name        string                  `json:"name" binding:"required,max=200"`
	Text        string                  `json:"text" binding:"required"`
	CookingTime int                     `json:"cooking_time" binding:"required,gt=0"`
	Image       string                  `json:"image"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
	Tags        []uuid.UUID             `json:"tags"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Tag set and composition are always replaced as a whole.
type UpdateRecipeRequest struct {
	Name        string                  `json:"name" binding:"required,max=200"`
	Text        string                  `json:"text" binding:"required"`
	CookingTime int                     `json:"cooking_time" binding:"required,gt=0"`
	Image       string                  `json:"image"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
	Tags        []uuid.UUID             `json:"tags"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
