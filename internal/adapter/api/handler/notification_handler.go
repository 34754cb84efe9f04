package handler

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/usecase"
	"campusmarket/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

// GetVisible returns what the notification tray shows right now.
func (h *NotificationHandler) GetVisible(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	notifications, err := h.notificationUseCase.Visible(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, notifications)
}

func (h *NotificationHandler) GetAll(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	notifications, err := h.notificationUseCase.All(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, notifications)
}

func (h *NotificationHandler) Click(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	notification, err := h.notificationUseCase.Click(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, notification)
}

func (h *NotificationHandler) Dismiss(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.notificationUseCase.Dismiss(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}
