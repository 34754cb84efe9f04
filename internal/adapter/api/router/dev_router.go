package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/pkg/config"
)

func SetupDevRouter(e *echo.Echo, cfg *config.Config) {
	if !cfg.IsDevelopment() {
		return
	}

	devTokenHandler := handler.GetDevTokenHandler()
	e.POST("/_dev/token", devTokenHandler.GenerateToken)
}
