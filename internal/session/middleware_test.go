package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func setCookieValue(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			return ck.Value
		}
	}
	return ""
}

func TestMiddlewareCreatesSession(t *testing.T) {
	store := NewMemoryStore()
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, TokenFromContext(c))
	}, Middleware(store, false))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	token := setCookieValue(t, rec)
	require.NotEmpty(t, token)
	require.Equal(t, token, rec.Body.String())

	ok, err := store.Exists(req.Context(), token)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMiddlewareRejectsUnknownCookie(t *testing.T) {
	store := NewMemoryStore()
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, TokenFromContext(c))
	}, Middleware(store, false))

	// токен, которого нет в хранилище, не принимается на веру
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	fresh := setCookieValue(t, rec)
	require.NotEmpty(t, fresh)
	require.NotEqual(t, "forged-token", fresh)
}

func TestMiddlewareReusesKnownCookie(t *testing.T) {
	store := NewMemoryStore()
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, TokenFromContext(c))
	}, Middleware(store, false))

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	firstRec := httptest.NewRecorder()
	e.ServeHTTP(firstRec, first)
	token := setCookieValue(t, firstRec)

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	secondRec := httptest.NewRecorder()
	e.ServeHTTP(secondRec, second)

	require.Equal(t, token, secondRec.Body.String())
	require.Empty(t, setCookieValue(t, secondRec))
}
