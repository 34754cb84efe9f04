package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
)

func SetupDraftRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	draftHandler := handler.GetDraftHandler()

	drafts := e.Group("/v1/drafts")
	drafts.Use(authMiddleware.Authenticate)

	drafts.GET("/me", draftHandler.GetDraft)
	drafts.PUT("/me", draftHandler.SaveDraft)
	drafts.DELETE("/me", draftHandler.ClearDraft)
	drafts.PUT("/me/autosave", draftHandler.AutoSave)
}
