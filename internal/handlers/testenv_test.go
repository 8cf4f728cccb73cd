package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/techhub-shop/techhub/internal/handlers"
	authmw "github.com/techhub-shop/techhub/internal/middleware/auth"
	"github.com/techhub-shop/techhub/internal/models"
	"github.com/techhub-shop/techhub/internal/mykafka"
	"github.com/techhub-shop/techhub/internal/repo"
	"github.com/techhub-shop/techhub/internal/service"
	"github.com/techhub-shop/techhub/internal/session"
	"github.com/techhub-shop/techhub/internal/token"
	httpserver "github.com/techhub-shop/techhub/internal/transport/http"
	"github.com/techhub-shop/techhub/internal/view"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Repo     *repo.GormRepo
	Sessions session.Store
	Tokens   *token.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Review{}))

	gormRepo := repo.New(db)
	sessions := session.NewMemoryStore()
	tokens := &token.Service{Secret: []byte("test-secret")}

	authSvc := &service.AuthService{Repo: gormRepo, Tokens: tokens, Events: mykafka.NopPublisher{}}
	cartSvc := &service.CartService{Sessions: sessions, Repo: gormRepo}
	reviewSvc := &service.ReviewService{Repo: gormRepo, Events: mykafka.NopPublisher{}}

	e := echo.New()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer

	httpserver.Register(e, &httpserver.Deps{
		Auth:      &handlers.AuthHandler{Svc: authSvc},
		Cart:      &handlers.CartHandler{Svc: cartSvc},
		Reviews:   &handlers.ReviewHandler{Svc: reviewSvc},
		Products:  &handlers.ProductHandler{Repo: gormRepo, Producer: mykafka.NopPublisher{}},
		Pages:     &handlers.PageHandler{Repo: gormRepo},
		AuthMW:    &authmw.Middleware{Svc: authSvc},
		SessionMW: session.Middleware(sessions, false),
	})

	return &testEnv{T: t, E: e, DB: db, Repo: gormRepo, Sessions: sessions, Tokens: tokens}
}

func (env *testEnv) doJSON(method, path string, body interface{}, mods ...func(*http.Request)) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, mod := range mods {
		mod(req)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doForm(method, path string, form url.Values, mods ...func(*http.Request)) *httptest.ResponseRecorder {
	env.T.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, mod := range mods {
		mod(req)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
}

func withCookie(ck *http.Cookie) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(ck)
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	return nil
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func registerUser(t *testing.T, env *testEnv, username, email, password string, isAdmin bool) {
	t.Helper()
	rec := env.doJSON(http.MethodPost, "/register", map[string]interface{}{
		"username": username,
		"email":    email,
		"password": password,
		"is_admin": isAdmin,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func loginUser(t *testing.T, env *testEnv, username, password string) string {
	t.Helper()
	rec := env.doForm(http.MethodPost, "/token", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	decodeJSON(t, rec, &resp)
	require.Equal(t, "bearer", resp["token_type"])
	require.NotEmpty(t, resp["access_token"])
	return resp["access_token"]
}
