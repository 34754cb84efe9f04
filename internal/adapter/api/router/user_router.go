package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
)

func SetupUserRouter(e *echo.Echo) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetProfile)
	users.GET("/:id/listings", userHandler.GetUserListings)
}
