package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupHealthRouter(e)
	SetupListingRouter(e, authMiddleware)
	SetupUserRouter(e)
	SetupDraftRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
}
