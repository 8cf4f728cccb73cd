package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHomeListsProducts(t *testing.T) {
	env := newTestEnv(t)
	seedProduct(t, env, "Смартфон", 29990)

	rec := env.doJSON(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Смартфон")
	require.NotNil(t, sessionCookie(t, rec))
}

func TestKnownPageTitle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/about", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "О нас")
}

func TestUnknownPageUnderConstruction(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/some-future-page", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Страница в разработке")
}
