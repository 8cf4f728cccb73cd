package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techhub-shop/techhub/internal/logging"
	authmw "github.com/techhub-shop/techhub/internal/middleware/auth"
	"github.com/techhub-shop/techhub/internal/models"
	"github.com/techhub-shop/techhub/internal/repo"
	"github.com/techhub-shop/techhub/internal/service"
)

type AuthHandler struct {
	Svc *service.AuthService
}

// UserView -- публичное представление пользователя, без id и хэша пароля.
type UserView struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

func publicUser(u *models.User) UserView {
	return UserView{Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"is_admin"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password, req.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrUserExists):
			return echo.NewHTTPError(http.StatusBadRequest, "Username already registered")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid username, email or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, publicUser(user))
}

// Token -- логин в стиле OAuth2: форма username/password, в ответе
// access_token и token_type.
func (h *AuthHandler) Token(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_token")

	username := c.FormValue("username")
	password := c.FormValue("password")

	accessToken, _, err := h.Svc.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 400)
			return echo.NewHTTPError(http.StatusBadRequest, "Incorrect username or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user := authmw.UserFromContext(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}
	return c.JSON(http.StatusOK, publicUser(user))
}

func (h *AuthHandler) Dashboard(c echo.Context) error {
	user := authmw.UserFromContext(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}
	return c.JSON(http.StatusOK, publicUser(user))
}
