package handler

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"
	"campusmarket/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createThreadRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	ListingID   string `json:"listing_id"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,notblank,max=2000"`
}

type typingRequest struct {
	IsTyping bool `json:"is_typing"`
}

// CreateThread opens the caller's conversation with the recipient.
func (h *ChatHandler) CreateThread(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req createThreadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	thread, err := h.chatUseCase.CreateThread(c.Request().Context(), uid, usecase.CreateThreadInput{
		RecipientID: req.RecipientID,
		ListingID:   req.ListingID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, thread)
}

func (h *ChatHandler) ListThreads(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	threads, err := h.chatUseCase.ListThreads(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, threads)
}

func (h *ChatHandler) UnreadTotal(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	summary, err := h.chatUseCase.UnreadTotal(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, summary)
}

func (h *ChatHandler) GetThread(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	thread, err := h.chatUseCase.GetThread(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, thread)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParamsWithDefault(c, 50)
	messages, total, err := h.chatUseCase.Messages(c.Request().Context(), uid, c.Param("id"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, usecase.SendMessageInput{
		ThreadID: c.Param("id"),
		Text:     req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) MarkAsRead(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.chatUseCase.MarkAsRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}

func (h *ChatHandler) ToggleChat(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	open, err := h.chatUseCase.ToggleChat(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"is_open": open})
}

func (h *ChatHandler) CloseChat(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.chatUseCase.CloseChat(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}

func (h *ChatHandler) SetTyping(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req typingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := h.chatUseCase.SetTyping(c.Request().Context(), uid, c.Param("id"), req.IsTyping); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}
