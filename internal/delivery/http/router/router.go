// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"sokoni/internal/delivery/http/middleware"
	"sokoni/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	SocialHandler   *handler.SocialHandler
	CheckoutHandler *handler.CheckoutHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	socialHandler   *handler.SocialHandler
	checkoutHandler *handler.CheckoutHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		socialHandler:   params.SocialHandler,
		checkoutHandler: params.CheckoutHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/session", r.authHandler.Session)
	}

	// Profile routes that require authentication
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.PATCH("", r.authHandler.UpdateProfile)
	}

	// Catalog routes (public, read-only)
	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("/products", r.catalogHandler.ListProducts)
		catalogGroup.GET("/products/:id", r.catalogHandler.GetProduct)
		catalogGroup.GET("/featured", r.catalogHandler.ListFeatured)
		catalogGroup.GET("/categories", r.catalogHandler.ListCategories)
		catalogGroup.DELETE("/filters", r.catalogHandler.ClearFilters)
	}

	// Cart routes (local state, no authentication required)
	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/items/:productID", r.cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:productID", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	// Social routes (local state, no authentication required)
	socialGroup := e.Group("/social")
	{
		socialGroup.POST("/follow/:id", r.socialHandler.Follow)
		socialGroup.DELETE("/follow/:id", r.socialHandler.Unfollow)
		socialGroup.GET("/follow/:id", r.socialHandler.FollowState)
		socialGroup.GET("/activities", r.socialHandler.ListActivities)
		socialGroup.GET("/achievements", r.socialHandler.ListAchievements)
		socialGroup.POST("/posts", r.socialHandler.CreatePost)
		socialGroup.GET("/posts", r.socialHandler.ListPosts)
		socialGroup.POST("/posts/:id/like", r.socialHandler.LikePost)
		socialGroup.POST("/posts/:id/share", r.socialHandler.SharePost)
		socialGroup.POST("/products/:id/like", r.socialHandler.TrackLike)
		socialGroup.POST("/products/:id/share", r.socialHandler.TrackShare)
		socialGroup.DELETE("", r.socialHandler.ClearSocialData)
	}

	// Checkout routes that require authentication
	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(r.authMiddleware.Authenticate)
	{
		checkoutGroup.POST("", r.checkoutHandler.StartCheckout)
		checkoutGroup.GET("/verify/:reference", r.checkoutHandler.VerifyPayment)
	}
}
