package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"flixnet/internal/cache"
	"flixnet/internal/config"
	"flixnet/internal/database"
	"flixnet/internal/model"
	"flixnet/internal/worker"
)

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{JWTSecret: "testsecret"}
	wp := worker.NewPool(1)
	defer wp.Stop()
	Setup(e, cfg, &database.FakeDB{}, &cache.FakeCache{}, wp)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/health",
		http.MethodPost + " /api/auth/register",
		http.MethodPost + " /api/auth/login",
		http.MethodGet + " /api/auth/me",
		http.MethodPost + " /api/auth/logout",
		http.MethodGet + " /api/media",
		http.MethodGet + " /api/favourites",
		http.MethodPost + " /api/favourites/:media_id",
		http.MethodDelete + " /api/favourites/:media_id",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

// usersDB keeps registered users in memory and answers the SQL the user
// store issues, including the unique violation on a duplicate insert.
func usersDB(t *testing.T) *database.FakeDB {
	t.Helper()
	users := map[string]*model.User{}
	nextID := 1
	return &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			switch {
			case strings.Contains(sql, "INSERT INTO users"):
				email := args[0].(string)
				if _, ok := users[email]; ok {
					return rowFunc(func(...any) error {
						return &pgconn.PgError{Code: "23505"}
					})
				}
				u := &model.User{
					ID:           nextID,
					Email:        email,
					PasswordHash: args[1].(string),
					CreatedAt:    time.Now(),
				}
				nextID++
				users[email] = u
				return rowFunc(func(dest ...any) error {
					*dest[0].(*int) = u.ID
					*dest[1].(*time.Time) = u.CreatedAt
					return nil
				})
			case strings.Contains(sql, "WHERE email"):
				u, ok := users[args[0].(string)]
				if !ok {
					return rowFunc(func(...any) error { return pgx.ErrNoRows })
				}
				return rowFunc(func(dest ...any) error {
					*dest[0].(*int) = u.ID
					*dest[1].(*string) = u.Email
					*dest[2].(*string) = u.PasswordHash
					*dest[3].(*time.Time) = u.CreatedAt
					return nil
				})
			default:
				t.Fatalf("unexpected query: %s", sql)
				return nil
			}
		},
	}
}

func doJSON(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := http.Response{Header: rec.Header()}
	for _, ck := range res.Cookies() {
		if ck.Name == "auth_token" {
			return ck
		}
	}
	t.Fatal("auth_token cookie not set")
	return nil
}

func TestRegisterLoginFlow(t *testing.T) {
	e := echo.New()
	e.Validator = testValidator{validator.New()}
	cfg := &config.Config{JWTSecret: "testsecret"}
	wp := worker.NewPool(1)
	defer wp.Stop()
	Setup(e, cfg, usersDB(t), &cache.FakeCache{}, wp)

	// register
	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"user":{"id":1,"email":"alice@example.com"}}`, rec.Body.String())
	ck := sessionCookie(t, rec)
	require.True(t, ck.HttpOnly)

	// the session cookie authenticates /auth/me
	rec = doJSON(e, http.MethodGet, "/api/auth/me", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "alice@example.com")

	// duplicate registration
	rec = doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"message":"Email already registered."}`, rec.Body.String())

	// wrong password and unknown email produce identical responses
	recWrong := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"not-the-password"}`)
	recUnknown := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"nobody@example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusUnauthorized, recWrong.Code)
	require.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	require.Equal(t, recWrong.Body.String(), recUnknown.Body.String())

	// login
	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	ck = sessionCookie(t, rec)

	// logout clears the cookie
	rec = doJSON(e, http.MethodPost, "/api/auth/logout", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(t, rec)
	require.Equal(t, -1, cleared.MaxAge)
	require.Empty(t, cleared.Value)

	// no cookie means no session
	rec = doJSON(e, http.MethodGet, "/api/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestFavouritesRequireAuth(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{JWTSecret: "testsecret"}
	wp := worker.NewPool(1)
	defer wp.Stop()
	Setup(e, cfg, &database.FakeDB{}, &cache.FakeCache{}, wp)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/favourites"},
		{http.MethodPost, "/api/favourites/1"},
		{http.MethodDelete, "/api/favourites/1"},
	} {
		rec := doJSON(e, route.method, route.path, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}
