package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/domain/repository"
	"campusmarket/internal/infrastructure/auth"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"
)

// DevTokenHandler hands out session tokens for seeded users. It is only
// routed in development.
type DevTokenHandler struct {
	tokens   *auth.TokenIssuer
	userRepo repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(tokens *auth.TokenIssuer, userRepo repository.UserRepository) *DevTokenHandler {
	return &DevTokenHandler{
		tokens:   tokens,
		userRepo: userRepo,
	}
}

func SetupDevTokenHandler(tokens *auth.TokenIssuer, userRepo repository.UserRepository) {
	devTokenHandler = NewDevTokenHandler(tokens, userRepo)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

type devTokenRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// GenerateToken issues a token for an existing user.
func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	token, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to issue token", err))
	}

	return response.Success(c, map[string]interface{}{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"user":       user,
	})
}
