package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	notificationHandler := handler.GetNotificationHandler()

	notifications := e.Group("/v1/notifications")
	notifications.Use(authMiddleware.Authenticate)

	notifications.GET("", notificationHandler.GetVisible)
	notifications.GET("/all", notificationHandler.GetAll)
	notifications.POST("/:id/click", notificationHandler.Click)
	notifications.DELETE("/:id", notificationHandler.Dismiss)
}
