package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/plateshare/backend/internal/api"
	"github.com/plateshare/backend/internal/logger"
	"github.com/plateshare/backend/internal/middleware"
	"github.com/plateshare/backend/internal/service"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth      *service.AuthService
	Recipes   *service.RecipeService
	Relations *service.RelationService
	Shopping  *service.ShoppingListService
	Images    *service.ImageService

	Ingredients *service.IngredientService
	Tags        *service.TagService
}

// New builds the gin engine with all routes registered.
//
// Read endpoints run behind the optional auth middleware so per-user
// fields (is_favorited, is_subscribed) are filled when a token is
// present; mutations require a valid token.
func New(svcs Services, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(log))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := api.NewAuthHandler(svcs.Auth)
	recipeHandler := api.NewRecipeHandler(svcs.Recipes, svcs.Relations, svcs.Shopping, svcs.Images)
	ingredientHandler := api.NewIngredientHandler(svcs.Ingredients)
	tagHandler := api.NewTagHandler(svcs.Tags)
	userHandler := api.NewUserHandler(svcs.Auth, svcs.Recipes, svcs.Relations)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", middleware.AuthMiddleware(svcs.Auth), authHandler.Logout)
	}

	public := v1.Group("")
	public.Use(middleware.OptionalAuthMiddleware(svcs.Auth))
	{
		public.GET("/tags", tagHandler.ListTags)
		public.GET("/tags/:id", tagHandler.GetTag)
		public.GET("/ingredients", ingredientHandler.ListIngredients)
		public.GET("/ingredients/:id", ingredientHandler.GetIngredient)
		public.GET("/recipes", recipeHandler.ListRecipes)
		public.GET("/recipes/:id", recipeHandler.GetRecipe)
		public.GET("/users", userHandler.ListUsers)
		public.GET("/users/:id", userHandler.GetUser)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(svcs.Auth))
	{
		protected.POST("/recipes", recipeHandler.CreateRecipe)
		protected.PUT("/recipes/:id", recipeHandler.UpdateRecipe)
		protected.DELETE("/recipes/:id", recipeHandler.DeleteRecipe)

		protected.POST("/recipes/:id/favorite", recipeHandler.Favorite)
		protected.DELETE("/recipes/:id/favorite", recipeHandler.Unfavorite)
		protected.POST("/recipes/:id/shopping_cart", recipeHandler.AddToShoppingCart)
		protected.DELETE("/recipes/:id/shopping_cart", recipeHandler.RemoveFromShoppingCart)
		protected.GET("/recipes/download_shopping_cart", recipeHandler.DownloadShoppingCart)

		protected.GET("/users/me", userHandler.Me)
		protected.POST("/users/:id/subscribe", userHandler.Subscribe)
		protected.DELETE("/users/:id/subscribe", userHandler.Unsubscribe)
		protected.GET("/users/subscriptions", userHandler.Subscriptions)
	}

	return router
}
