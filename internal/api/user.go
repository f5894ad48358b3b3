package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/plateshare/backend/internal/service"
)

type UserHandler struct {
	authService     *service.AuthService
	recipeService   *service.RecipeService
	relationService *service.RelationService
}

func NewUserHandler(
	auth *service.AuthService,
	recipes *service.RecipeService,
	relations *service.RelationService,
) *UserHandler {
	return &UserHandler{
		authService:     auth,
		recipeService:   recipes,
		relationService: relations,
	}
}

// subscriptionView is a userView enriched with the author's recipes.
type subscriptionView struct {
	userView
	Recipes      []shortRecipeView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, offset := pageParams(c)
	users, err := h.authService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}

	principal, _ := currentUserID(c)
	views := make([]*userView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(c.Request.Context(), h.relationService, &users[i], principal))
	}
	c.JSON(http.StatusOK, gin.H{"users": views})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	principal, _ := currentUserID(c)
	c.JSON(http.StatusOK, newUserView(c.Request.Context(), h.relationService, user, principal))
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserView(c.Request.Context(), h.relationService, user, userID))
}

// Subscribe follows an author. Answers 201 with the author's profile
// and recipe preview, the same shape Subscriptions uses.
func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	author, err := h.authService.GetUser(c.Request.Context(), authorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if _, err := h.relationService.Add(c.Request.Context(), service.RelationFollow, userID, authorID); err != nil {
		writeServiceError(c, err)
		return
	}

	view, err := h.buildSubscriptionView(c, author.ID, recipesLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch subscription"})
		return
	}
	view.IsSubscribed = true
	c.JSON(http.StatusCreated, view)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.relationService.Remove(c.Request.Context(), service.RelationFollow, userID, authorID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscriptions lists the authors the user follows, each with a
// preview of their recipes capped by recipes_limit.
func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	authors, err := h.relationService.FollowedAuthors(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch subscriptions"})
		return
	}

	limit := recipesLimit(c)
	views := make([]*subscriptionView, 0, len(authors))
	for i := range authors {
		view, err := h.buildSubscriptionView(c, authors[i].ID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch subscriptions"})
			return
		}
		view.IsSubscribed = true
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": views})
}

func (h *UserHandler) buildSubscriptionView(c *gin.Context, authorID uuid.UUID, limit int) (*subscriptionView, error) {
	ctx := c.Request.Context()
	author, err := h.authService.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	recipes, err := h.recipeService.ListRecipes(ctx, service.RecipeFilter{
		Author: &authorID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	count, err := h.recipeService.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	view := &subscriptionView{
		userView:     *newUserView(ctx, nil, author, uuid.Nil),
		Recipes:      make([]shortRecipeView, 0, len(recipes)),
		RecipesCount: count,
	}
	for _, r := range recipes {
		view.Recipes = append(view.Recipes, newShortRecipeView(r))
	}
	return view, nil
}

func recipesLimit(c *gin.Context) int {
	limit := 3
	if v, err := strconv.Atoi(c.DefaultQuery("recipes_limit", "3")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return limit
}
