package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/infrastructure/auth"
)

type AuthMiddleware struct {
	tokens *auth.TokenIssuer
}

func NewAuthMiddleware(tokens *auth.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		uid, err := m.tokens.Verify(parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", uid)
		return next(c)
	}
}

// GetUIDFromToken verifies a raw token, for callers that cannot send headers.
func (m *AuthMiddleware) GetUIDFromToken(token string) (string, error) {
	return m.tokens.Verify(token)
}
