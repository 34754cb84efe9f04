package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all thread routes (excluding WebSocket)
func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	threads := e.Group("/v1/threads")
	threads.Use(authMiddleware.Authenticate)

	threads.POST("", chatHandler.CreateThread)
	threads.GET("", chatHandler.ListThreads)
	threads.GET("/unread", chatHandler.UnreadTotal)
	threads.GET("/:id", chatHandler.GetThread)

	threads.GET("/:id/messages", chatHandler.GetMessages)
	threads.POST("/:id/messages", chatHandler.SendMessage)

	threads.PUT("/:id/read", chatHandler.MarkAsRead)
	threads.PUT("/:id/toggle", chatHandler.ToggleChat)
	threads.PUT("/:id/close", chatHandler.CloseChat)
	threads.PUT("/:id/typing", chatHandler.SetTyping)
}
