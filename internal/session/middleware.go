package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techhub-shop/techhub/internal/logging"
)

const CookieName = "session_token"

const contextKey = "session_token"

// Middleware сопоставляет cookie с сессией. Значение из cookie не считается
// сессией без проверки в хранилище: отсутствующий или неизвестный токен
// прозрачно заменяется новым со свежей пустой корзиной.
func Middleware(store Store, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
				ok, serr := store.Exists(ctx, ck.Value)
				if serr != nil {
					logging.FromContext(ctx).Error("session_lookup_error", "error", serr)
					return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
				}
				if ok {
					c.Set(contextKey, ck.Value)
					return next(c)
				}
			}

			token, err := store.Create(ctx)
			if err != nil {
				logging.FromContext(ctx).Error("session_create_error", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
			}

			c.SetCookie(&http.Cookie{
				Name:     CookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(contextKey, token)
			return next(c)
		}
	}
}

// TokenFromContext возвращает токен текущей сессии, выставленный Middleware.
func TokenFromContext(c echo.Context) string {
	if v, ok := c.Get(contextKey).(string); ok {
		return v
	}
	return ""
}
