package handler

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/usecase"
	"campusmarket/pkg/response"
)

type UserHandler struct {
	userUseCase    *usecase.UserUseCase
	listingUseCase *usecase.ListingUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, listingUseCase *usecase.ListingUseCase) *UserHandler {
	return &UserHandler{
		userUseCase:    userUseCase,
		listingUseCase: listingUseCase,
	}
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUseCase.ListUsers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, users)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.userUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

func (h *UserHandler) GetUserListings(c echo.Context) error {
	listings, err := h.listingUseCase.ListBySeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listings)
}
