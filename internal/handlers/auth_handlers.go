package handlers

import (
	"net/http"

	"labdesk/internal/common"
	"labdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles HTTP requests for authentication
type AuthHandlers struct {
	authService services.AuthServiceInterface
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthServiceInterface) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	user, err := h.authService.Register(ctx, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	tokens, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if common.IsValidation(err) {
			return common.SendUnauthorizedError(c)
		}
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}
