package handler

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"
)

type DraftHandler struct {
	draftUseCase *usecase.DraftUseCase
}

func NewDraftHandler(draftUseCase *usecase.DraftUseCase) *DraftHandler {
	return &DraftHandler{
		draftUseCase: draftUseCase,
	}
}

func (h *DraftHandler) GetDraft(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	draft, err := h.draftUseCase.GetDraft(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, draft)
}

func (h *DraftHandler) SaveDraft(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var fields entity.ListingFields
	if err := c.Bind(&fields); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	draft, err := h.draftUseCase.SaveDraft(c.Request().Context(), uid, fields)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, draft)
}

// AutoSave queues a debounced save and answers 202 right away.
func (h *DraftHandler) AutoSave(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var fields entity.ListingFields
	if err := c.Bind(&fields); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	scheduled := h.draftUseCase.AutoSave(c.Request().Context(), uid, fields)
	return response.Accepted(c, map[string]bool{"scheduled": scheduled})
}

func (h *DraftHandler) ClearDraft(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.draftUseCase.ClearDraft(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}
