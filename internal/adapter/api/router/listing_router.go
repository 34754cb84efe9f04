package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()

	// Public routes
	e.GET("/v1/listings", listingHandler.Browse)
	e.GET("/v1/listings/:id", listingHandler.GetListing)

	// Protected routes
	listings := e.Group("/v1/listings")
	listings.Use(authMiddleware.Authenticate)
	listings.POST("", listingHandler.CreateListing)
	listings.DELETE("/:id", listingHandler.DeleteListing)
}
