package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/outdoor-rental/internal/config"
	"github.com/iliyamo/outdoor-rental/internal/model"
	"github.com/iliyamo/outdoor-rental/internal/repository"
	"github.com/iliyamo/outdoor-rental/internal/utils"
)

func authFixture() (*echo.Echo, *mockUsers, *mockTokens) {
	users, tokens := &mockUsers{}, &mockTokens{}
	cfg := config.Config{JWTSecret: "k", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: bcrypt.MinCost}
	h := NewAuthHandler(cfg, users, tokens)

	e := newEcho()
	e.POST("/v1/auth/register", h.Register)
	e.POST("/v1/auth/login", h.Login)
	e.POST("/v1/auth/refresh", h.Refresh)
	e.POST("/v1/auth/logout", h.Logout)
	return e, users, tokens
}

func TestRegister_CreatesOperator(t *testing.T) {
	e, users, tokens := authFixture()
	users.On("Create", mock.Anything, "ana@example.com", mock.AnythingOfType("string"), "Ana", model.RoleOperator).
		Return(uint64(9), nil)
	tokens.On("StoreRefresh", mock.Anything, uint64(9), mock.AnythingOfType("string"), mock.Anything).Return(nil)

	rec := do(e, http.MethodPost, "/v1/auth/register", `{"name":" Ana ","email":"Ana@Example.com","password":"secret1"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, model.RoleOperator, body["user"].(map[string]any)["role"])

	raw := body["access"].(map[string]any)["token"].(string)
	claims, err := utils.ParseAccessToken("k", raw)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOperator, claims.Role)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e, users, _ := authFixture()
	users.On("Create", mock.Anything, "ana@example.com", mock.Anything, "Ana", model.RoleOperator).
		Return(uint64(0), repository.ErrEmailExists)

	rec := do(e, http.MethodPost, "/v1/auth/register", `{"name":"Ana","email":"ana@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email already exists", decode(t, rec)["error"])
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)

	cases := []struct {
		name     string
		active   bool
		password string
		code     int
		msg      string
	}{
		{"ok", true, "admin123", http.StatusOK, ""},
		{"wrong password", true, "nope", http.StatusUnauthorized, "invalid credentials"},
		{"disabled", false, "admin123", http.StatusUnauthorized, "account disabled"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, users, tokens := authFixture()
			users.On("GetByEmail", mock.Anything, "admin@outdoors.com").Return(&model.User{
				ID: 1, Email: "admin@outdoors.com", PasswordHash: hash, Role: model.RoleAdmin, IsActive: tc.active,
			}, nil)
			tokens.On("StoreRefresh", mock.Anything, uint64(1), mock.Anything, mock.Anything).Return(nil)

			rec := do(e, http.MethodPost, "/v1/auth/login", `{"email":"admin@outdoors.com","password":"`+tc.password+`"}`)

			assert.Equal(t, tc.code, rec.Code)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, decode(t, rec)["error"])
			}
		})
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	e, users, _ := authFixture()
	users.On("GetByEmail", mock.Anything, "who@example.com").Return(nil, repository.ErrUserNotFound)

	rec := do(e, http.MethodPost, "/v1/auth/login", `{"email":"who@example.com","password":"x"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	e, users, tokens := authFixture()
	hash := utils.HashRefreshRaw("old-token")
	tokens.On("ValidateRefresh", mock.Anything, hash).Return(uint64(3), nil)
	users.On("GetByID", mock.Anything, uint64(3)).Return(&model.User{ID: 3, Role: model.RoleOperator, IsActive: true}, nil)
	tokens.On("RevokeByHash", mock.Anything, hash).Return(nil)
	tokens.On("StoreRefresh", mock.Anything, uint64(3), mock.MatchedBy(func(h string) bool { return h != hash }), mock.Anything).Return(nil)

	rec := do(e, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"old-token"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tokens.AssertExpectations(t)
}

func TestRefresh_MissingToken(t *testing.T) {
	e, _, _ := authFixture()

	rec := do(e, http.MethodPost, "/v1/auth/refresh", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_BearerRevokesAll(t *testing.T) {
	e, _, tokens := authFixture()
	tokens.On("RevokeAllForUser", mock.Anything, uint64(5)).Return(nil)
	access, err := utils.NewAccessToken("k", 5, model.RoleOperator, 15)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+access.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	tokens.AssertExpectations(t)
}
