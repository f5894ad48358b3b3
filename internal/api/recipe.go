package api

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/types"
)

type RecipeHandler struct {
	recipeService   *service.RecipeService
	relationService *service.RelationService
	shoppingService *service.ShoppingListService
	imageService    *service.ImageService
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	relations *service.RelationService,
	shopping *service.ShoppingListService,
	images *service.ImageService,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipes,
		relationService: relations,
		shoppingService: shopping,
		imageService:    images,
	}
}

// ListRecipes serves the public feed, newest first. Filters: author,
// tags (repeatable slug), is_favorited and is_in_shopping_cart (the
// latter two need a principal and are ignored for anonymous requests).
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit, offset := pageParams(c)
	filter := service.RecipeFilter{
		TagSlugs: c.QueryArray("tags"),
		Limit:    limit,
		Offset:   offset,
	}

	if author := c.Query("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.Author = &id
	}

	principal, _ := currentUserID(c)
	if principal != uuid.Nil {
		if c.Query("is_favorited") == "1" {
			filter.FavoritedBy = &principal
		}
		if c.Query("is_in_shopping_cart") == "1" {
			filter.InShoppingCartOf = &principal
		}
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	views := make([]recipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, newRecipeView(c.Request.Context(), h.relationService, r, principal))
	}
	c.JSON(http.StatusOK, gin.H{"recipes": views})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	principal, _ := currentUserID(c)
	c.JSON(http.StatusOK, newRecipeView(c.Request.Context(), h.relationService, recipe, principal))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.resolveImage(c, req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Image = url

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecipeView(c.Request.Context(), h.relationService, recipe, userID))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.resolveImage(c, req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Image = url

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecipeView(c.Request.Context(), h.relationService, recipe, userID))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Favorite and Unfavorite toggle the favorite relation.
func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.addRelation(c, service.RelationFavorite)
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	h.removeRelation(c, service.RelationFavorite)
}

func (h *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	h.addRelation(c, service.RelationCart)
}

func (h *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeRelation(c, service.RelationCart)
}

// addRelation answers 201 with the short recipe card on success. The
// target recipe must exist; a missing one is a 400 per the validation
// contract, not a 404.
func (h *RecipeHandler) addRelation(c *gin.Context, kind service.RelationKind) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe not found"})
		return
	}

	if _, err := h.relationService.Add(c.Request.Context(), kind, userID, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newShortRecipeView(recipe))
}

func (h *RecipeHandler) removeRelation(c *gin.Context, kind service.RelationKind) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	if err := h.relationService.Remove(c.Request.Context(), kind, userID, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart renders the aggregated shopping list as a plain
// text attachment.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	items, err := h.shoppingService.ComputeShoppingList(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build shopping list"})
		return
	}
	fileName := fmt.Sprintf("shopping_list_%s.txt", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(service.RenderShoppingList(items)))
}

// resolveImage accepts either an already-hosted URL (returned as-is) or
// a base64 data URI, which is decoded and uploaded to object storage.
func (h *RecipeHandler) resolveImage(c *gin.Context, image string) (string, error) {
	if image == "" || !strings.HasPrefix(image, "data:") {
		return image, nil
	}
	meta, payload, found := strings.Cut(image, ",")
	if !found {
		return "", fmt.Errorf("malformed image data uri")
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("invalid image encoding: %w", err)
	}
	if h.imageService == nil {
		return "", fmt.Errorf("image storage is not configured")
	}
	return h.imageService.UploadRecipeImage(c.Request.Context(), data, contentType)
}
