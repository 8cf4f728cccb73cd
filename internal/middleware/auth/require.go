package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/techhub-shop/techhub/internal/logging"
	"github.com/techhub-shop/techhub/internal/models"
	"github.com/techhub-shop/techhub/internal/repo"
	"github.com/techhub-shop/techhub/internal/service"
	"github.com/techhub-shop/techhub/internal/token"
)

const userContextKey = "user"

type Middleware struct {
	Svc *service.AuthService
}

// RequireAuth проверяет bearer-токен и кладёт пользователя в контекст.
// Причина отказа различается в логах, но ответ всегда одинаковый 401:
// по нему нельзя понять, подпись это, срок или исчезнувший пользователь.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "require_auth")

		raw := bearerToken(c.Request())
		if raw == "" {
			l.Warn("auth_failed", "reason", "missing token")
			return unauthorized(c)
		}

		user, err := m.Svc.CurrentUser(ctx, raw)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrExpired):
				l.Warn("auth_failed", "reason", "token expired")
			case errors.Is(err, token.ErrInvalidToken):
				l.Warn("auth_failed", "reason", "invalid token")
			case errors.Is(err, repo.ErrNotFound):
				l.Warn("auth_failed", "reason", "subject no longer exists")
			default:
				l.Error("auth_failed", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
			}
			return unauthorized(c)
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireAdmin предполагает, что RequireAuth уже отработал.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := UserFromContext(c)
		if user == nil {
			return unauthorized(c)
		}
		if !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Not authorized as admin")
		}
		return next(c)
	}
}

func UserFromContext(c echo.Context) *models.User {
	if u, ok := c.Get(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
}
