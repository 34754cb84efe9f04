package handler

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
)

var (
	listingHandler      *ListingHandler
	userHandler         *UserHandler
	draftHandler        *DraftHandler
	chatHandler         *ChatHandler
	notificationHandler *NotificationHandler
)

func Setup(
	listingUseCase *usecase.ListingUseCase,
	browseUseCase *usecase.BrowseUseCase,
	userUseCase *usecase.UserUseCase,
	draftUseCase *usecase.DraftUseCase,
	chatUseCase *usecase.ChatUseCase,
	notificationUseCase *usecase.NotificationUseCase,
) {
	listingHandler = NewListingHandler(listingUseCase, browseUseCase)
	userHandler = NewUserHandler(userUseCase, listingUseCase)
	draftHandler = NewDraftHandler(draftUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetDraftHandler() *DraftHandler {
	return draftHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

// currentUser returns the uid the auth middleware stored on the context.
func currentUser(c echo.Context) (string, error) {
	uid, ok := c.Get("uid").(string)
	if !ok || uid == "" {
		return "", errors.Unauthorized("Authentication required", nil)
	}
	return uid, nil
}
