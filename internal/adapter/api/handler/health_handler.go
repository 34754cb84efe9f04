package handler

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	startedAt   time.Time
	environment string
}

var healthHandler *HealthHandler

func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{
		startedAt:   time.Now(),
		environment: environment,
	}
}

func SetupHealthHandler(environment string) {
	healthHandler = NewHealthHandler(environment)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "ok",
		"environment": h.environment,
		"started":     humanize.Time(h.startedAt),
		"time":        time.Now().Format(time.RFC3339),
	})
}
