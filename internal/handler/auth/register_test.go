package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"flixnet/internal/config"
	"flixnet/internal/database"
	"flixnet/internal/model"
	"flixnet/internal/service"
	"flixnet/internal/store"
	"flixnet/internal/worker"
)

func restoreGlobals() {
	hashPasswordOn = service.HashPasswordOn
	comparePasswordOn = service.ComparePasswordOn
	issueSessionToken = service.IssueSessionToken
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
}

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = testValidator{v: validator.New()}
	return e
}

func newJSONCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "testsecret"}
}

func TestRegisterHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	cfg := testConfig()

	// malformed body
	ctx, rec := newJSONCtx(newEcho(), "{not json")
	h := RegisterHandler(cfg, &database.FakeDB{}, nil)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Email and password required.")

	// missing password
	ctx, rec = newJSONCtx(newEcho(), `{"email":"a@x.com"}`)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Email and password required.")

	// password too short, even with a valid email
	ctx, rec = newJSONCtx(newEcho(), `{"email":"a@x.com","password":"short"}`)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Password must be at least 8 characters.")

	// email already registered
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return &model.User{ID: 1, Email: "a@x.com"}, nil
	}
	ctx, rec = newJSONCtx(newEcho(), `{"email":"a@x.com","password":"password1"}`)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Email already registered.")

	// lookup failure
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, errors.New("boom")
	}
	ctx, rec = newJSONCtx(newEcho(), `{"email":"a@x.com","password":"password1"}`)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Server error.")

	// hash failure
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, pgx.ErrNoRows
	}
	hashPasswordOn = func(worker.Pool, string) (string, error) {
		return "", errors.New("hash")
	}
	ctx, rec = newJSONCtx(newEcho(), `{"email":"a@x.com","password":"password1"}`)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// lost the check-then-act race: insert reports the duplicate
	hashPasswordOn = func(worker.Pool, string) (string, error) { return "hashed", nil }
	createUser = func(context.Context, database.DB, *model.User) (*model.User, error) {
		return nil, store.ErrEmailTaken
	}
	ctx, rec = newJSONCtx(newEcho(), `{"email":"a@x.com","password":"password1"}`)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Email already registered.")

	// insert failure
	createUser = func(context.Context, database.DB, *model.User) (*model.User, error) {
		return nil, errors.New("insert")
	}
	ctx, rec = newJSONCtx(newEcho(), `{"email":"a@x.com","password":"password1"}`)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// token failure
	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
		u.ID = 3
		u.CreatedAt = time.Now()
		return u, nil
	}
	issueSessionToken = func(model.User, string, time.Duration) (string, error) {
		return "", errors.New("sign")
	}
	ctx, rec = newJSONCtx(newEcho(), `{"email":"a@x.com","password":"password1"}`)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// success
	var storedHash string
	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
		storedHash = u.PasswordHash
		u.ID = 3
		u.CreatedAt = time.Now()
		return u, nil
	}
	issueSessionToken = service.IssueSessionToken
	ctx, rec = newJSONCtx(newEcho(), `{"email":"a@x.com","password":"password1"}`)
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "hashed", storedHash)
	require.JSONEq(t, `{"user":{"id":3,"email":"a@x.com"}}`, rec.Body.String())

	ck := findCookie(t, rec, "auth_token")
	require.NotEmpty(t, ck.Value)
	require.True(t, ck.HttpOnly)
	require.False(t, ck.Secure)
	require.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	require.Equal(t, "/", ck.Path)
	require.Equal(t, 604800, ck.MaxAge)

	claims, err := service.VerifySessionToken(ck.Value, cfg.JWTSecret)
	require.NoError(t, err)
	require.Equal(t, 3, claims.UserID)
	require.Equal(t, "a@x.com", claims.Email)
}
